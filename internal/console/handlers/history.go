package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/frfront/internal/models"
	"github.com/your-org/frfront/internal/storage"
	"github.com/your-org/frfront/pkg/dto"
)

// ActivityLister is implemented by *storage.PostgresStore.
type ActivityLister interface {
	ListActivities(ctx context.Context, screen string, limit int) ([]models.Activity, int, error)
}

type HistoryHandler struct {
	store ActivityLister
}

// NewHistoryHandler accepts a nil store; History then answers 503.
func NewHistoryHandler(store ActivityLister) *HistoryHandler {
	return &HistoryHandler{store: store}
}

func (h *HistoryHandler) List(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "activity history is not configured"})
		return
	}

	limit := storage.DefaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	activities, total, err := h.store.ListActivities(c.Request.Context(), c.Query("screen"), storage.ClampLimit(limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.ActivityListResponse{
		Activities: make([]dto.ActivityResponse, 0, len(activities)),
		Total:      total,
	}
	for _, a := range activities {
		resp.Activities = append(resp.Activities, a.Response())
	}
	c.JSON(http.StatusOK, resp)
}
