package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError so the transport layer can map it to a status code.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindValidation   ErrorKind = "VALIDATION"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindConflict     ErrorKind = "CONFLICT"
)

// DomainError is a typed, caller-recoverable error raised by domain and application code.
type DomainError struct {
	Kind    ErrorKind
	Message string

	// Entity and ID are kept for logging only and never rendered to clients.
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// NewNotFoundError reports that the entity with the given id does not exist
// (or is not visible to the caller).
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Entity:  entity,
		ID:      id,
	}
}

// NewNotFoundMessage creates a not-found error with a custom message.
func NewNotFoundMessage(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// NewValidationError creates a bad-request error.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// AsDomainError unwraps err looking for a DomainError.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err wraps a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == kind
}

// IsNotFound reports whether err wraps a not-found DomainError.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}
