/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity or object is not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrPreconditionFailed is returned when an operation is attempted before
	// a required precondition is met (e.g. publishing without a topic)
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrTransient marks failures that may succeed if the call is repeated
	ErrTransient = errors.New("transient failure")

	// ErrPermanent marks failures that will not succeed on retry
	ErrPermanent = errors.New("permanent failure")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// PreconditionError represents an operation attempted before its precondition held
type PreconditionError struct {
	Operation string
	Message   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed for %s: %s", e.Operation, e.Message)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

// TransientError wraps a failure that may succeed if the call is repeated
type TransientError struct {
	Operation string
	Err       error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed (transient): %v", e.Operation, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

// PermanentError wraps a failure that will not succeed on retry
type PermanentError struct {
	Operation string
	Err       error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

func (e *PermanentError) Is(target error) bool {
	return target == ErrPermanent
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(operation, message string) error {
	return &PreconditionError{Operation: operation, Message: message}
}

// transientCodes lists provider error codes that indicate a retryable condition.
var transientCodes = map[string]bool{
	"ProvisionedThroughputExceededException": true,
	"RequestLimitExceeded":                   true,
	"ThrottlingException":                    true,
	"Throttling":                             true,
	"TooManyRequestsException":               true,
	"ServiceUnavailable":                     true,
	"ServiceUnavailableException":            true,
	"InternalServerError":                    true,
	"InternalFailure":                        true,
	"RequestTimeout":                         true,
	"SlowDown":                               true,
}

// Classify wraps an underlying service error as either transient or permanent.
// Server faults and throttling map to TransientError; everything else becomes
// a PermanentError. A nil error classifies to nil.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Operation: operation, Err: err}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if transientCodes[apiErr.ErrorCode()] || apiErr.ErrorFault() == smithy.FaultServer {
			return &TransientError{Operation: operation, Err: err}
		}
		return &PermanentError{Operation: operation, Err: err}
	}

	if r, ok := err.(interface{ IsRetryable() bool }); ok && r.IsRetryable() {
		return &TransientError{Operation: operation, Err: err}
	}

	return &PermanentError{Operation: operation, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPreconditionFailed checks if an error is a precondition error
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}

// IsTransient checks if an error is worth repeating
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsPermanent checks if an error is not worth repeating
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}
