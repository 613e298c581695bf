package screens

import (
	"context"
	"errors"

	"github.com/your-org/frfront/internal/client"
)

const (
	statusOperational = "System operational"
	statusProblems    = "System has problems"
	statusUnavailable = "System unavailable"
)

// Home reports the service status and lists the other screens.
func (s *Service) Home(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenHome, "load", "")
	v := newView(ScreenHome, title(ScreenHome))

	health, err := s.api.GeneralHealth(ctx)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			v.Error = "Connection error"
		} else {
			v.Error = "No connection"
		}
	} else {
		v.Notice = serviceStatus(health.Status)
	}

	lines := make([]string, 0, len(catalog))
	for _, e := range catalog {
		if e.Name == ScreenHome {
			continue
		}
		lines = append(lines, e.Name+": "+e.Title+" ("+e.Description+")")
	}
	v.Add("Screens", lines...)

	return s.finish(ctx, act, v, err)
}

func serviceStatus(status string) string {
	switch status {
	case "healthy":
		return statusOperational
	case "degraded":
		return statusProblems
	default:
		return statusUnavailable
	}
}
