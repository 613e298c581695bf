package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/your-org/frfront/pkg/dto"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
	OutcomeInvalid Outcome = "invalid" // rejected before any upstream call
)

// Activity is one screen action: what the user asked for and how it ended.
type Activity struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	Screen     string        `json:"screen" db:"screen"`
	Action     string        `json:"action" db:"action"`
	Subject    string        `json:"subject,omitempty" db:"subject"` // email, student id, person id or file name
	Outcome    Outcome       `json:"outcome" db:"outcome"`
	Message    string        `json:"message,omitempty" db:"message"`
	ErrorKind  string        `json:"error_kind,omitempty" db:"error_kind"`
	RequestID  string        `json:"request_id" db:"request_id"`
	Match      *Match        `json:"match,omitempty" db:"-"`
	Duration   time.Duration `json:"duration" db:"duration_ms"`
	OccurredAt time.Time     `json:"occurred_at" db:"occurred_at"`
}

// Match summarises a recognition or identification result.
type Match struct {
	PersonID   int     `json:"person_id" db:"matched_person_id"`
	Name       string  `json:"name" db:"matched_name"`
	Similarity float64 `json:"similarity" db:"similarity"`
	IsMatch    bool    `json:"is_match" db:"is_match"`
}

func NewActivity(screen, action, subject, requestID string) Activity {
	return Activity{
		ID:         uuid.New(),
		Screen:     screen,
		Action:     action,
		Subject:    subject,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	}
}

// Response converts a to its console representation.
func (a Activity) Response() dto.ActivityResponse {
	r := dto.ActivityResponse{
		ID:         a.ID,
		Screen:     a.Screen,
		Action:     a.Action,
		Subject:    a.Subject,
		Outcome:    string(a.Outcome),
		Message:    a.Message,
		ErrorKind:  a.ErrorKind,
		RequestID:  a.RequestID,
		DurationMS: a.Duration.Milliseconds(),
		OccurredAt: a.OccurredAt.Format(time.RFC3339),
	}
	if m := a.Match; m != nil {
		r.Match = &dto.ActivityMatch{
			PersonID:   m.PersonID,
			Name:       m.Name,
			Similarity: m.Similarity,
			IsMatch:    m.IsMatch,
		}
	}
	return r
}
