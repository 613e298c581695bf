package dto

import "github.com/google/uuid"

// ActivityResponse is one recorded screen action as served by the console.
type ActivityResponse struct {
	ID         uuid.UUID      `json:"id"`
	Screen     string         `json:"screen"`
	Action     string         `json:"action"`
	Subject    string         `json:"subject,omitempty"`
	Outcome    string         `json:"outcome"`
	Message    string         `json:"message,omitempty"`
	ErrorKind  string         `json:"error_kind,omitempty"`
	RequestID  string         `json:"request_id"`
	Match      *ActivityMatch `json:"match,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	OccurredAt string         `json:"occurred_at"`
}

type ActivityMatch struct {
	PersonID   int     `json:"person_id"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
	IsMatch    bool    `json:"is_match"`
}

type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
}

// WSEvent is a WebSocket message of the console's live activity feed.
type WSEvent struct {
	Type   string           `json:"type"` // activity, match
	Screen string           `json:"screen"`
	Data   ActivityResponse `json:"data"`
}
