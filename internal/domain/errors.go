package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of failure kinds the service reasons about.
// The retry wrapper classifies by code, never by message text.
type ErrorCode string

const (
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Generation service boundary.
	CodeServiceOverloaded ErrorCode = "SERVICE_OVERLOADED" // transient, retryable
	CodeInvalidCredential ErrorCode = "INVALID_CREDENTIAL" // fail fast, no retry
	CodeParseFailure      ErrorCode = "PARSE_FAILURE"      // malformed model output, fatal for the call
	CodeGenerationFailed  ErrorCode = "GENERATION_FAILED"

	CodeWorksheetNotFound ErrorCode = "WORKSHEET_NOT_FOUND"
)

// DomainError carries a code, a user-facing message and the underlying cause.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DomainError.
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewWorksheetNotFoundError(id string) *DomainError {
	return NewError(CodeWorksheetNotFound, fmt.Sprintf("Worksheet not found: %s", id), nil)
}

// NewOverloadedError marks an upstream overload/unavailability condition.
func NewOverloadedError(cause error) *DomainError {
	return NewError(CodeServiceOverloaded, "The generation service is overloaded, try again shortly", cause)
}

// NewCredentialError marks an invalid or missing upstream credential.
func NewCredentialError(cause error) *DomainError {
	return NewError(CodeInvalidCredential, "Generation service credentials are invalid or missing", cause)
}

// NewParseError marks unusable model output.
func NewParseError(cause error) *DomainError {
	return NewError(CodeParseFailure, "Failed to parse generation response", cause)
}

func NewGenerationError(message string, cause error) *DomainError {
	return NewError(CodeGenerationFailed, message, cause)
}

// CodeOf extracts the error code, or CodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsRetryable reports whether an operation that failed with err is worth
// retrying. Only upstream overload qualifies; everything else either cannot
// succeed on retry (credentials, parse failures) or is a programming error.
func IsRetryable(err error) bool {
	return CodeOf(err) == CodeServiceOverloaded
}

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache: key not found")
