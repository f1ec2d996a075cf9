package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated actor lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrAccountLocked indicates authentication was refused because the account is
// temporarily locked after repeated failed attempts.
var ErrAccountLocked = errors.New("account temporarily locked")

// ErrAccountInactive indicates the actor has been deactivated.
var ErrAccountInactive = errors.New("account is deactivated")

// ErrEmailNotVerified indicates the actor's email address has not been verified yet.
var ErrEmailNotVerified = errors.New("email not verified")

// ErrCompanyNotApproved indicates the company's partnership has not been approved yet.
var ErrCompanyNotApproved = errors.New("company not approved")

// ErrTokenInvalid covers one-time tokens (verification/reset) that do not match
// any stored digest or have expired. The two cases are deliberately not
// distinguished to the caller.
var ErrTokenInvalid = errors.New("invalid or expired token")

// ErrRefreshTokenInvalid indicates a refresh token that failed verification or
// is not recognized server-side (revoked, rotated away, or replayed).
var ErrRefreshTokenInvalid = errors.New("invalid refresh token")

// AppError carries an HTTP status code alongside a client-safe message.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewBadRequestError creates an AppError with a 400 status.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError creates an AppError with a 401 status.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

// NewForbiddenError creates an AppError with a 403 status.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

// NewNotFoundError creates an AppError with a 404 status.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// NewLockedError creates an AppError with a 423 status.
func NewLockedError(message string) *AppError {
	return &AppError{Code: http.StatusLocked, Message: message}
}

// NewInternalServerError creates an AppError with a 500 status.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

// NewGatewayTimeoutError creates an AppError with a 504 status.
func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Message: message}
}
