package api

import (
	"errors"
	"fmt"
)

// Error covers the two non-transport failure modes of the backend: an HTTP
// error status, and a 2xx body carrying success:false. Transport failures
// are returned as plain wrapped errors.
type Error struct {
	// Status is the HTTP status code, or 0 for an application-level
	// failure inside a 2xx response.
	Status int
	// Message is the backend-provided message, verbatim. May be empty.
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	case e.Message != "":
		return "api: " + e.Message
	default:
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
}

// MessageFrom extracts the backend message from err when there is one, or
// returns fallback. Callers use it to surface the most specific message
// available in a notification.
func MessageFrom(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
