package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrDelivery wraps a mail transport failure. Not retried anywhere.
func ErrDelivery(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "mail", "Failed to deliver email", http.StatusBadGateway)
}

// Predefined errors for frequent static cases.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"An account with this email already exists",
	http.StatusConflict,
)

// ErrPasswordMismatch: the password and its confirmation differ. The
// save step is never reached.
var ErrPasswordMismatch = New(
	CodePasswordMismatch,
	"auth",
	"Passwords do not match",
	http.StatusBadRequest,
)

// ErrResetTokenInvalid covers both unknown and expired reset tokens;
// the caller cannot distinguish them.
var ErrResetTokenInvalid = New(
	CodeInvalidToken,
	"auth",
	"Password reset token is invalid or has expired",
	http.StatusBadRequest,
)

// ErrNotOwner: the acting user neither authored the record nor holds
// the reserved admin tier.
var ErrNotOwner = New(
	CodeForbidden,
	"stores",
	"You must own a store in order to edit it",
	http.StatusForbidden,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"That filetype is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrInvalidRating = New(
	CodeValidationFailed,
	"reviews",
	"Rating must be between 1 and 5",
	http.StatusBadRequest,
)
