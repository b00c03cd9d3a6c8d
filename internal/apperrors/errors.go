package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a state conflict such as a unique constraint violation.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInactiveUser is returned when an inactive account tries to log in.
var ErrInactiveUser = errors.New("inactive user account")

// ErrResetTokenInvalid and ErrResetTokenExpired describe password reset token failures.
var (
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
)

// ErrTransport indicates an outbound call (email, storage, external API) failed.
var ErrTransport = errors.New("transport failure")

// ErrTooLarge indicates an upload exceeded the configured size limit.
var ErrTooLarge = errors.New("payload too large")

// ErrUnsupportedMedia indicates an upload with a disallowed content type.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// AppError carries an HTTP-ish status code and a client-safe message.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the sentinel for its status code.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusConflict:
		return target == ErrConflict || target == ErrDuplicate
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusRequestEntityTooLarge:
		return target == ErrTooLarge
	case http.StatusUnsupportedMediaType:
		return target == ErrUnsupportedMedia
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return target == ErrTransport
	}
	return false
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewBadRequestError is an alias of NewValidationFailedError used by handlers.
func NewBadRequestError(message string) *AppError {
	return NewValidationFailedError(message)
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

// NewTransportError wraps a failed outbound call. The message is kept verbatim for callers.
func NewTransportError(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message, Err: err}
}

// NewServiceUnavailableError reports an upstream dependency that could not be reached.
func NewServiceUnavailableError(message string, err error) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message, Err: err}
}

func NewTooLargeError(message string) *AppError {
	return &AppError{Code: http.StatusRequestEntityTooLarge, Message: message}
}

func NewUnsupportedMediaError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrUnsupportedMedia}
}

// StatusCode resolves the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnsupportedMedia),
		errors.Is(err, ErrResetTokenInvalid), errors.Is(err, ErrResetTokenExpired):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrInactiveUser):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrTransport):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
