// Package errors defines the application-level error taxonomy. Expected
// failures (validation, domain rules, not-found, authentication) are
// predefined values carrying an HTTP status, a stable error code for the
// presentation layer to localize, and a human-readable message.
package errors

import (
	"net/http"

	"gamestore/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Stable business error code (localization key)
	Message() string   // Human-readable error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the human-readable error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error with detailed information attached.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error values.
var (
	// Input validation errors.
	ErrInvalidEmail = NewBaseError(
		http.StatusBadRequest,
		"INVALID_EMAIL",
		"email address is not valid",
		"",
	)

	ErrInvalidUsername = NewBaseError(
		http.StatusBadRequest,
		"INVALID_USERNAME",
		"username is not valid",
		"",
	)

	ErrInvalidName = NewBaseError(
		http.StatusBadRequest,
		"INVALID_NAME",
		"name must not be empty",
		"",
	)

	ErrWeakPassword = NewBaseError(
		http.StatusBadRequest,
		"WEAK_PASSWORD",
		"password does not meet the strength requirements",
		"",
	)

	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"password confirmation does not match",
		"",
	)

	// Uniqueness conflicts.
	ErrEmailAlreadyExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_EXISTS",
		"this email address is already registered",
		"",
	)

	ErrUsernameAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USERNAME_ALREADY_EXISTS",
		"this username is already taken",
		"",
	)

	// ErrAccountIdentityConflict reports a duplicate-identity database
	// constraint trip where the violated field is unknown; the per-field
	// existence checks report the precise conflict in the common case.
	ErrAccountIdentityConflict = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_IDENTITY_CONFLICT",
		"this email address or username is already registered",
		"",
	)

	ErrGameTitleAlreadyExists = NewBaseError(
		http.StatusConflict,
		"GAME_TITLE_ALREADY_EXISTS",
		"a game with this title already exists",
		"",
	)

	// Authentication errors. Credential mismatch is deliberately generic so
	// callers cannot tell an unknown identifier from a wrong password, while
	// status gating is specific because the caller already proved password
	// knowledge.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid credentials",
		"",
	)

	ErrAccountPendingConfirmation = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_PENDING_EMAIL_CONFIRMATION",
		"account email has not been confirmed yet",
		"",
	)

	ErrAccountBlocked = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_IS_BLOCKED",
		"account is blocked",
		"",
	)

	ErrAccountBanned = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_IS_BANNED",
		"account is banned",
		"",
	)

	ErrTemporaryPassword = NewBaseError(
		http.StatusUnauthorized,
		"TEMPORARY_PASSWORD_MUST_BE_CHANGED",
		"temporary password must be changed before logging in",
		"",
	)

	// Domain rule violations.
	ErrInvalidStateTransition = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_STATE_TRANSITION",
		"the account state does not allow this operation",
		"",
	)

	ErrBannedAccount = NewBaseError(
		http.StatusUnprocessableEntity,
		"BANNED_ACCOUNT",
		"cannot operate on a banned account",
		"",
	)

	ErrEmailAlreadyConfirmed = NewBaseError(
		http.StatusUnprocessableEntity,
		"EMAIL_ALREADY_CONFIRMED",
		"email address has already been confirmed",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_TOKEN",
		"token is missing or does not match",
		"",
	)

	ErrExpiredToken = NewBaseError(
		http.StatusUnprocessableEntity,
		"EXPIRED_TOKEN",
		"token has expired",
		"",
	)

	ErrNoPendingEmailChange = NewBaseError(
		http.StatusUnprocessableEntity,
		"NO_PENDING_EMAIL_CHANGE",
		"no email change is pending for this account",
		"",
	)

	// Not-found errors.
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"account not found",
		"",
	)

	ErrGameNotFound = NewBaseError(
		http.StatusNotFound,
		"GAME_NOT_FOUND",
		"game not found",
		"",
	)

	// Infrastructure errors.
	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	ErrNotificationFailed = NewBaseError(
		http.StatusInternalServerError,
		"NOTIFICATION_FAILED",
		"failed to send notification email",
		"",
	)

	ErrOperationFailed = NewBaseError(
		http.StatusInternalServerError,
		"OPERATION_FAILED",
		"the operation could not be completed",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing
// the AppError interface. The raw driver error never reaches the caller.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the human-readable error message.
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
