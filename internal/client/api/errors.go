package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable: the request never produced a usable response
	// (connection refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized: the backend rejected the bearer token (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials: login was refused without field details.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnexpectedResponse: the body did not decode into the envelope
	// or the envelope was missing required data.
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// ValidationError carries the per-field messages the backend reports when
// a submitted form has one or more invalid fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RequestError is a non-auth failure reported by the backend envelope
// (success=false with a message but no field map).
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}
