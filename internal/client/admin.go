package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/your-org/frfront/pkg/dto"
)

const DefaultCleanupMaxAgeHours = 24

func (c *Client) GetSystemStats(ctx context.Context) (*dto.SystemStatsResponse, error) {
	var out dto.SystemStatsResponse
	if err := c.invoke(ctx, call{endpoint: EndpointSystemStats}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAdminHealth(ctx context.Context) (*dto.HealthCheckResponse, error) {
	var out dto.HealthCheckResponse
	if err := c.invoke(ctx, call{endpoint: EndpointAdminHealth}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckIntegrity(ctx context.Context) (*dto.IntegrityCheckResponse, error) {
	var out dto.IntegrityCheckResponse
	if err := c.invoke(ctx, call{endpoint: EndpointIntegrity}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cleanup asks the server to delete temporary files older than maxAgeHours.
// Non-positive values use the server default of 24 hours.
func (c *Client) Cleanup(ctx context.Context, maxAgeHours int) (*dto.CleanupResponse, error) {
	if maxAgeHours <= 0 {
		maxAgeHours = DefaultCleanupMaxAgeHours
	}
	var out dto.CleanupResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointCleanup,
		query:    url.Values{"max_age_hours": {strconv.Itoa(maxAgeHours)}},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSystemConfig(ctx context.Context) (*dto.SystemConfigResponse, error) {
	var out dto.SystemConfigResponse
	if err := c.invoke(ctx, call{endpoint: EndpointSystemConfig}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPerformance(ctx context.Context) (*dto.PerformanceMetricsResponse, error) {
	var out dto.PerformanceMetricsResponse
	if err := c.invoke(ctx, call{endpoint: EndpointPerformance}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
