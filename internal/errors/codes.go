// Package errors defines the coded error type carried from services to
// HTTP handlers, where codes map to statuses and user-safe messages.
package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for API operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates malformed input (shape or missing field).
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeWeakPassword indicates the password failed the policy check.
	ErrCodeWeakPassword ErrorCode = "WEAK_PASSWORD"
	// ErrCodeDuplicateEmail indicates the email is already registered.
	ErrCodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"
	// ErrCodeInvalidCredentials indicates a failed login. It covers both
	// unknown email and wrong password so registered emails never leak.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeCaptchaRequired indicates a missing captcha token or answer.
	ErrCodeCaptchaRequired ErrorCode = "CAPTCHA_REQUIRED"
	// ErrCodeCaptchaFailed indicates an invalid, expired or wrong captcha.
	ErrCodeCaptchaFailed ErrorCode = "CAPTCHA_FAILED"
	// ErrCodeNotFound indicates the requested resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeStorageUnavailable indicates the database failed a read or write.
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	// ErrCodeAgentNotFound indicates the requested agent tag does not exist.
	ErrCodeAgentNotFound ErrorCode = "AGENT_NOT_FOUND"
	// ErrCodeAgentUnavailable indicates the upstream LLM call failed.
	// The caller may retry; the service does not retry automatically.
	ErrCodeAgentUnavailable ErrorCode = "AGENT_UNAVAILABLE"
	// ErrCodeRateLimitExceeded indicates too many requests from one client.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// APIError represents a structured error for API operations.
type APIError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Convenience constructors for common error types.

func InvalidArgument(msg string) *APIError {
	return &APIError{Code: ErrCodeInvalidArgument, Message: msg}
}

func WeakPassword(msg string) *APIError {
	return &APIError{Code: ErrCodeWeakPassword, Message: msg}
}

func DuplicateEmail() *APIError {
	return &APIError{Code: ErrCodeDuplicateEmail, Message: "an account with this email already exists"}
}

func InvalidCredentials() *APIError {
	return &APIError{Code: ErrCodeInvalidCredentials, Message: "invalid email or password"}
}

func CaptchaRequired() *APIError {
	return &APIError{Code: ErrCodeCaptchaRequired, Message: "captcha token is required"}
}

func CaptchaFailed() *APIError {
	return &APIError{Code: ErrCodeCaptchaFailed, Message: "captcha verification failed"}
}

func NotFound(msg string) *APIError {
	return &APIError{Code: ErrCodeNotFound, Message: msg}
}

func StorageUnavailable(cause error) *APIError {
	return &APIError{Code: ErrCodeStorageUnavailable, Message: "storage is unavailable", Cause: cause}
}

func AgentNotFound(agentType string) *APIError {
	return &APIError{Code: ErrCodeAgentNotFound, Message: fmt.Sprintf("unknown agent type: %s", agentType)}
}

func AgentUnavailable(cause error) *APIError {
	return &APIError{Code: ErrCodeAgentUnavailable, Message: "agent is unavailable, please retry", Cause: cause}
}

func RateLimitExceeded() *APIError {
	return &APIError{Code: ErrCodeRateLimitExceeded, Message: "too many requests"}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an APIError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Code
	}
	return defaultCode
}
