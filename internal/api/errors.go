package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TransportError covers network failures and non-2xx responses without
// structured validation detail.
type TransportError struct {
	Status  int // 0 when the request never reached the backend
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("platform api: http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("platform api: %s", e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError reports a 404 for a specific entity.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("platform api: %s %d not found", e.Resource, e.ID)
}

// ValidationError carries the backend's 422 field→messages mapping.
type ValidationError struct {
	Messages map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "platform api: validation failed"
	}

	fields := make([]string, 0, len(e.Messages))
	for field := range e.Messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Messages[field], "; ")))
	}
	return "platform api: validation failed: " + strings.Join(parts, ", ")
}

// FlatMessages returns every validation message in field order, one entry
// per message, ready for per-message notification.
func (e *ValidationError) FlatMessages() []string {
	fields := make([]string, 0, len(e.Messages))
	for field := range e.Messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		out = append(out, e.Messages[field]...)
	}
	return out
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AsValidation extracts a ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
