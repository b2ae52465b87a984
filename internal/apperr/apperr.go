// Package apperr defines the failure taxonomy shared by the import pipeline
// and the HTTP surface. Every failed operation maps to exactly one Kind.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for retry decisions and HTTP status mapping.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindNotFound      Kind = "not_found"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindTimeout       Kind = "timeout"
	KindRateLimited   Kind = "rate_limited"
	KindUnknown       Kind = "unknown"
)

// HTTPStatus returns the status code surfaced for this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindForbidden, KindQuotaExceeded:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTimeout:
		return http.StatusRequestTimeout
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		// Unauthorized covers a bad or missing server-side credential,
		// surfaced as a configuration error rather than a client fault.
		return http.StatusInternalServerError
	}
}

// Retryable reports whether operations failing with this kind may be
// retried internally. Semantic failures propagate immediately.
func (k Kind) Retryable() bool {
	return k == KindTimeout || k == KindUnknown
}

// Error carries a Kind alongside a user-presentable message.
type Error struct {
	Kind       Kind
	Message    string
	RetryAfter int // seconds; set only for KindRateLimited
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a taxonomy error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a taxonomy error wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsRetryable reports whether err may be retried. Unclassified errors
// (plain network failures) are treated as transient.
func IsRetryable(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind.Retryable()
	}
	return true
}
