package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/internal/storage"
)

// ArchiveReader is implemented by *storage.MinIOStore.
type ArchiveReader interface {
	ArchivedFile(ctx context.Context, rel string) ([]byte, error)
}

// ArchiveHandler serves files archived by the data screen's downloads.
type ArchiveHandler struct {
	store ArchiveReader
}

// NewArchiveHandler accepts a nil store; Get then answers 503.
func NewArchiveHandler(store ArchiveReader) *ArchiveHandler {
	return &ArchiveHandler{store: store}
}

// Get serves /archive/*key, where key is relative to the exports prefix,
// e.g. /v1/archive/2024/06/01/export.json.
func (h *ArchiveHandler) Get(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "archive is not configured"})
		return
	}

	rel := strings.TrimPrefix(c.Param("key"), "/")
	clean := path.Clean(rel)
	if rel == "" || clean != rel || strings.HasPrefix(clean, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid archive key"})
		return
	}

	data, err := h.store.ArchivedFile(c.Request.Context(), clean)
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "archived file not found"})
		return
	case err != nil:
		slog.Warn("read archived file", "key", clean, "request_id", c.GetString("request_id"), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "archive unavailable"})
		return
	}
	name := path.Base(clean)
	c.Header("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(name, `"`, "")+`"`)
	c.Data(http.StatusOK, client.MediaTypeFor(name), data)
}
