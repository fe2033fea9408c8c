package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Stage returns the launch stage this error belongs to.
func (e *AppError) Stage() Stage { return StageOf(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Startup Error Constructors ---

// ConfigInvalid creates a new AppError for a malformed configuration value.
func ConfigInvalid(field, reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfigInvalid, Message: fmt.Sprintf("invalid configuration: %s: %s", field, reason),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// ApplicationLoad creates a new AppError for an application object that
// could not be resolved from its reference.
func ApplicationLoad(ref string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeApplicationLoad, Message: fmt.Sprintf("application %q could not be loaded", ref),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"ref": ref}, Cause: cause,
	}
}

// BindFailed creates a new AppError for a listen address that could not be
// bound (port in use, permission denied).
func BindFailed(addr string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeBindFailed, Message: fmt.Sprintf("failed to bind %s", addr),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"addr": addr}, Cause: cause,
	}
}

// --- Serving Error Constructors ---

// ServiceUnavailable creates a new AppError for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// RateLimited creates a new AppError for too many requests.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please wait a moment and try again.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"resource": resource},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// --- Classification helpers ---

// AsAppError extracts an *AppError from an error chain, or nil.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return IsCode(err, ErrCodeConfigInvalid) }

// IsApplicationLoad reports whether err is an application load error.
func IsApplicationLoad(err error) bool { return IsCode(err, ErrCodeApplicationLoad) }

// IsBind reports whether err is a bind error.
func IsBind(err error) bool { return IsCode(err, ErrCodeBindFailed) }

// FailedStage returns the launch stage responsible for err. Unknown errors
// are attributed to the serving phase.
func FailedStage(err error) Stage {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Stage()
	}
	return StageServe
}
