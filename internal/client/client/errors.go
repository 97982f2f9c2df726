package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrConfiguration = errors.New("api base url is not configured")
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Is lets callers match broad classes with errors.Is.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// ParseError is returned when a response body can't be decoded or fails
// validation. Shape names the expected payload ("json" for raw decoding).
type ParseError struct {
	Shape string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Shape, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
