// Package apperror defines the error kinds shared by services and controllers.
// Services wrap failures in *Error so controllers can pick a status code with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

// Base kinds, matched with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrQuotaExceeded = errors.New("quota exceeded")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrStore         = errors.New("store error")
)

// Error carries the failing operation, its kind and a client-facing message.
type Error struct {
	Op      string // e.g. "answer.Submit"
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

func (e *Error) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

func Validation(op, msg string) *Error {
	return &Error{Op: op, Kind: ErrValidation, Message: msg}
}

func NotFound(op, msg string) *Error {
	return &Error{Op: op, Kind: ErrNotFound, Message: msg}
}

func Unauthorized(op, msg string) *Error {
	return &Error{Op: op, Kind: ErrUnauthorized, Message: msg}
}

func Conflict(op, msg string) *Error {
	return &Error{Op: op, Kind: ErrConflict, Message: msg}
}

// Store wraps a persistence failure. The message is generic; the cause stays in Err for logs.
func Store(op string, err error) *Error {
	return &Error{Op: op, Kind: ErrStore, Message: "internal server error", Err: err}
}

// QuotaExceededError reports a refused rate-limited feature call.
type QuotaExceededError struct {
	Feature   string
	Limit     int
	Used      int
	ResetTime string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit reached for %s (%d/%d)", e.Feature, e.Used, e.Limit)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// Message returns the client-facing message of err, falling back to a generic one.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		return "Daily limit reached"
	}
	return "internal server error"
}
