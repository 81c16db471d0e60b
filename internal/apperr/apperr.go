// Package apperr defines the coded errors returned by the domain services.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the caller.
type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindNotFound      Kind = "NOT_FOUND"
	KindForbidden     Kind = "FORBIDDEN"
	KindConflict      Kind = "CONFLICT"
	KindInvalidState  Kind = "INVALID_STATE"
	KindLimitExceeded Kind = "LIMIT_EXCEEDED"
	KindInternal      Kind = "INTERNAL"
)

// LimitExceeded describes which container limit rejected an admission.
type LimitExceeded struct {
	Limit     string  `json:"limit"`
	Max       float64 `json:"max"`
	Attempted float64 `json:"attempted"`
}

// Error is an expected, caller-recoverable failure. Code is the stable
// machine-readable code rendered to clients; Detail is never rendered.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Detail  string
	Limit   *LimitExceeded
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Code: string(kind), Message: message}
}

func Validation(message string) *Error {
	return newError(KindValidation, message)
}

func NotFound(message string) *Error {
	return newError(KindNotFound, message)
}

func Forbidden(message string) *Error {
	return newError(KindForbidden, message)
}

func InvalidState(message string) *Error {
	return newError(KindInvalidState, message)
}

// Unauthorized uses its own code so login failures can say INVALID_CREDENTIALS.
func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

// Conflict reports a uniqueness or in-use violation under a domain code
// such as COLLABORATION_EXISTS.
func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// ExceededLimit reports the first container limit a prospective total broke.
func ExceededLimit(limit string, max, attempted float64) *Error {
	e := newError(KindLimitExceeded, limitMessage(limit))
	e.Limit = &LimitExceeded{Limit: limit, Max: max, Attempted: attempted}
	return e
}

// Internal wraps an unexpected failure. Its message is generic.
func Internal(err error) *Error {
	e := newError(KindInternal, "Internal server error")
	e.Err = err
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func limitMessage(limit string) string {
	switch limit {
	case "maxWeight":
		return "Container max weight exceeded"
	case "maxVolume":
		return "Container max volume exceeded"
	case "maxPrice":
		return "Container max price exceeded"
	default:
		return "Container limit exceeded"
	}
}

// From returns err as an *Error, wrapping anything unclassified as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindLimitExceeded:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
