package domain

import "fmt"

// ValidationError indicates a caller supplied missing or malformed data.
type ValidationError struct {
	Message string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError indicates a referenced entity id does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ConflictError indicates a state conflict, such as a duplicate unique field.
type ConflictError struct {
	Message string
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// UpstreamError indicates an external API returned a non-2xx response or was
// unreachable. Status and Body carry the origin service's response when known.
type UpstreamError struct {
	Message string
	Status  int
	Body    string
}

// NewUpstreamError creates a new UpstreamError with the origin status and body.
func NewUpstreamError(message string, status int, body string) *UpstreamError {
	return &UpstreamError{Message: message, Status: status, Body: body}
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (upstream status %d)", e.Message, e.Status)
	}
	return e.Message
}
