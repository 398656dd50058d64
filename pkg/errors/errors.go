package errors

import (
	"fmt"
)

// MalformedRecordError represents a backend record that does not conform
// to the entity's required shape. Raised during deserialization.
type MalformedRecordError struct {
	Field   string
	Message string
}

// NewMalformedRecordError creates a new malformed record error
func NewMalformedRecordError(field, message string) *MalformedRecordError {
	return &MalformedRecordError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *MalformedRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed record: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("malformed record: %s", e.Message)
}

// FetchError represents a failed fetch against the backend store, either
// the fetch itself or deserialization of its result. It carries the
// underlying cause.
type FetchError struct {
	Message string
	Err     error
}

// NewFetchError creates a new fetch error wrapping the underlying cause
func NewFetchError(message string, err error) *FetchError {
	return &FetchError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a lookup for an identifier that is absent from
// the backend collection. Distinct from FetchError: the fetch itself
// succeeded, the entity simply does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: id=%d", e.Resource, e.ID)
}

// ChannelClosedError represents an operation attempted on a disposed
// update channel.
type ChannelClosedError struct {
	Op string
}

// NewChannelClosedError creates a new channel closed error
func NewChannelClosedError(op string) *ChannelClosedError {
	return &ChannelClosedError{Op: op}
}

// Error implements the error interface
func (e *ChannelClosedError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("update channel closed: cannot %s", e.Op)
	}
	return "update channel closed"
}
