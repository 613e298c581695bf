package models

import (
	"testing"
	"time"
)

func TestActivityResponse(t *testing.T) {
	a := NewActivity("recognition", "recognize_by_email", "ana@x.com", "req-1")
	a.Outcome = OutcomeSuccess
	a.Duration = 1500 * time.Millisecond
	a.OccurredAt = time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC)

	r := a.Response()
	if r.ID != a.ID || r.Outcome != "success" || r.RequestID != "req-1" {
		t.Fatalf("unexpected response: %+v", r)
	}
	if r.DurationMS != 1500 {
		t.Fatalf("duration = %d", r.DurationMS)
	}
	if r.OccurredAt != "2024-03-08T10:00:00Z" {
		t.Fatalf("occurred at = %q", r.OccurredAt)
	}
	if r.Match != nil {
		t.Fatal("match should be omitted")
	}

	a.Match = &Match{PersonID: 4, Name: "Eva Luna", Similarity: 0.9, IsMatch: true}
	if m := a.Response().Match; m == nil || m.PersonID != 4 || !m.IsMatch {
		t.Fatalf("match = %+v", m)
	}
}

func TestNewActivity(t *testing.T) {
	a := NewActivity("home", "load", "", "req-2")
	if a.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("id not generated")
	}
	if a.OccurredAt.Location() != time.UTC {
		t.Fatal("occurred at should be UTC")
	}
}
