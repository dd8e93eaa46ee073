// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrNegativeValue = errors.New("value cannot be negative")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrQuotaExhausted  = errors.New("quota exhausted")

	// External service errors
	ErrExternalService = errors.New("external service error")
	ErrTimeout         = errors.New("operation timeout")
	ErrPersistence     = errors.New("persistence failure")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "goal", "telegram"
	Op      string // Operation that failed, e.g., "Create", "Record"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Goal domain errors. Every user-facing command failure maps to one of these
// so handlers can translate them to reply texts with errors.Is().
var (
	ErrGoalAlreadyExists   = NewDomainError("goal", "Create", ErrAlreadyExists, "a goal already exists")
	ErrNoActiveGoal        = NewDomainError("goal", "Load", ErrNotFound, "no active goal")
	ErrAlreadyJoined       = NewDomainError("goal", "Join", ErrAlreadyExists, "participant already joined")
	ErrNotJoined           = NewDomainError("goal", "Lookup", ErrNotFound, "participant has not joined")
	ErrInvalidExerciseSpec = NewDomainError("goal", "Parse", ErrInvalidInput, "invalid exercise:amount specification")
	ErrInvalidWeeks        = NewDomainError("goal", "Create", ErrInvalidInput, "weeks must be at least 1")
	ErrInvalidAmount       = NewDomainError("goal", "Record", ErrNegativeValue, "amount must be non-negative")
	ErrUnknownExercise     = NewDomainError("goal", "Lookup", ErrNotFound, "exercise is not part of the goal")
	ErrAlreadyFull         = NewDomainError("goal", "GrantFull", ErrStateTransition, "full day already credited")
	ErrAlreadyHalf         = NewDomainError("goal", "GrantHalf", ErrStateTransition, "half day already credited")
	ErrRestExhausted       = NewDomainError("goal", "ClaimRest", ErrQuotaExhausted, "no rest days left")
	ErrNoValidChanges      = NewDomainError("goal", "Change", ErrInvalidInput, "no valid target changes")
	ErrPersistenceFailure  = NewDomainError("goal", "Persist", ErrPersistence, "failed to persist goal state")
)
