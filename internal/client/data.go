package client

import (
	"context"

	"github.com/your-org/frfront/pkg/dto"
)

// Download is a file fetched from the server's export directory.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (c *Client) ExportAll(ctx context.Context) (*dto.ExportResponse, error) {
	var out dto.ExportResponse
	if err := c.invoke(ctx, call{endpoint: EndpointExportAll}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExportPersonByEmail(ctx context.Context, email string) (*dto.ExportResponse, error) {
	var out dto.ExportResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointExportPersonByEmail,
		params:   map[string]string{"email": email},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportData uploads a JSON export produced by ExportAll.
func (c *Client) ImportData(ctx context.Context, file File) (*dto.ImportResponse, error) {
	var out dto.ImportResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointImportData,
		file:     &file,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DownloadFile(ctx context.Context, filename string) (*Download, error) {
	body, header, err := c.exchange(ctx, call{
		endpoint: EndpointDownloadFile,
		params:   map[string]string{"filename": filename},
	})
	if err != nil {
		return nil, err
	}
	contentType := header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Download{Filename: filename, ContentType: contentType, Data: body}, nil
}

func (c *Client) CreateBackup(ctx context.Context) (*dto.BackupResponse, error) {
	var out dto.BackupResponse
	if err := c.invoke(ctx, call{endpoint: EndpointCreateBackup}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckSync(ctx context.Context) (*dto.SyncCheckResponse, error) {
	var out dto.SyncCheckResponse
	if err := c.invoke(ctx, call{endpoint: EndpointSyncCheck}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
