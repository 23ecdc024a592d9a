package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeSessionAlreadyActive = "SESSION_ALREADY_ACTIVE"
	CodeNoActiveSession      = "NO_ACTIVE_SESSION"
	CodeWorkstationNotFound  = "WORKSTATION_NOT_FOUND"
	CodeNoWorkstation        = "NO_WORKSTATION"
	CodeNoToken              = "NO_TOKEN"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
)

// HTTPStatus maps an error code to the HTTP status it should be served with
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeSessionAlreadyActive, CodeNoActiveSession, CodeWorkstationNotFound,
		CodeNoWorkstation, CodeValidationError, CodeConfigInvalid:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeNoToken, CodeTokenExpired, CodeInvalidToken,
		CodeUserNotFound, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func SessionAlreadyActive() *AppError {
	return New(CodeSessionAlreadyActive, "a work session is already active for today")
}

func NoActiveSession() *AppError {
	return New(CodeNoActiveSession, "no active work session for today")
}

func WorkstationNotFound(code string) *AppError {
	return New(CodeWorkstationNotFound, fmt.Sprintf("workstation %q not found or inactive", code))
}

func NoWorkstation() *AppError {
	return New(CodeNoWorkstation, "no workstation scanned and none assigned to this user")
}
