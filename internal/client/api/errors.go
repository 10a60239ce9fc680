package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means no response arrived at all: connection refused,
	// timeout, or DNS failure. Offline fallbacks key off this error.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the backend rejected the presented token (401).
	// By the time a caller sees it the session has already been cleared.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a non-2xx backend response. Fields carries the 422 validation map
// exactly as the backend sent it ({"errors":{"field":["msg", ...]}}) so pages
// can render field-level messages; the pipeline never interprets it.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed (status %d)", e.Status)
}

// FieldErrors extracts the validation map from err, if it carries one.
func FieldErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
