package client

import (
	"context"

	"github.com/your-org/frfront/pkg/dto"
)

func (c *Client) GeneralHealth(ctx context.Context) (*dto.GeneralHealthResponse, error) {
	var out dto.GeneralHealthResponse
	if err := c.invoke(ctx, call{endpoint: EndpointGeneralHealth}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RootInfo(ctx context.Context) (*dto.RootInfoResponse, error) {
	var out dto.RootInfoResponse
	if err := c.invoke(ctx, call{endpoint: EndpointRootInfo}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SystemInfo(ctx context.Context) (*dto.SystemInfoResponse, error) {
	var out dto.SystemInfoResponse
	if err := c.invoke(ctx, call{endpoint: EndpointSystemInfo}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
