package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// APIError is returned when the service answers with a non-2xx status.
type APIError struct {
	Operation  string
	StatusCode int
	Status     string // reason phrase, e.g. "Not Found"
	Detail     string // server supplied message, if any
	Body       []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %d %s", e.Operation, e.StatusCode, e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is lets callers match status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// TransportError covers everything that prevented a usable response:
// connection failures, timeouts, unreadable or undecodable bodies.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func newAPIError(operation string, resp *http.Response, body []byte) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     reasonPhrase(resp),
		Detail:     detailFromBody(body),
		Body:       body,
	}
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// detailFromBody extracts the message of FastAPI style {"detail": "..."}
// bodies and the common {"error"|"message": "..."} variants.
func detailFromBody(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "error", "message"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Describe turns a client error into the text shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := "error: " + apiErr.Status
		if apiErr.Detail != "" {
			msg += " (" + apiErr.Detail + ")"
		}
		return msg
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "connection error: " + transportErr.Err.Error()
	}

	return "error: " + err.Error()
}

// ErrorKind classifies err for metrics and activity records.
func ErrorKind(err error) string {
	var apiErr *APIError
	var transportErr *TransportError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return "status"
	case errors.As(err, &transportErr):
		return "transport"
	}
	return "other"
}
