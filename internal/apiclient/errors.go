package apiclient

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a guarded fetch failure.
type Kind string

const (
	KindRateLimit  Kind = "rate_limit_exceeded"
	KindTimeout    Kind = "timeout"
	KindHTTP       Kind = "http_error"
	KindTransport  Kind = "transport_error"
	KindValidation Kind = "validation_error"
)

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrRateLimitExceeded = &Error{Kind: KindRateLimit}
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrHTTP              = &Error{Kind: KindHTTP}
	ErrTransport         = &Error{Kind: KindTransport}
	ErrValidation        = &Error{Kind: KindValidation}
)

// Error is returned by every failing Client call.
type Error struct {
	Kind Kind
	Path string

	StatusCode int    // KindHTTP
	Status     string // KindHTTP, status text without the code
	Remaining  int    // KindRateLimit, always 0
	Msg        string // KindValidation

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRateLimit:
		return "rate limit exceeded, please try again later"
	case KindTimeout:
		return fmt.Sprintf("GET %s: request timed out", e.Path)
	case KindHTTP:
		return fmt.Sprintf("GET %s: API error: %d %s", e.Path, e.StatusCode, e.Status)
	case KindValidation:
		return fmt.Sprintf("GET %s: %s", e.Path, e.Msg)
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("GET %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or "" if err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// transportFailure classifies an error from the HTTP round trip. Deadline
// expiry, from our own timeout or the caller's, counts as a timeout.
func transportFailure(ctx context.Context, path string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Path: path, Err: err}
	}
	var te interface{ Timeout() bool }
	if errors.As(err, &te) && te.Timeout() {
		return &Error{Kind: KindTimeout, Path: path, Err: err}
	}
	return &Error{Kind: KindTransport, Path: path, Err: err}
}

func retryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindTimeout, KindTransport:
		return true
	case KindHTTP:
		return e.StatusCode >= 500
	}
	return false
}
