// Package apperr defines the classified errors that handlers return to the
// HTTP layer. An *Error of any kind other than KindInternal is operational:
// its message, code and status are safe to show to the caller. Every other
// error is treated as an unexpected fault.
package apperr

import (
	"errors"
	"net/http"
	"time"
)

// Kind identifies the class of an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
	KindRateLimit
)

// CodeInternal is the code of every non-operational error response.
const CodeInternal = "INTERNAL_SERVER_ERROR"

// Status returns the HTTP status code of k.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the stable machine readable token of k.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindConflict:
		return "CONFLICT"
	case KindRateLimit:
		return "RATE_LIMIT_EXCEEDED"
	default:
		return CodeInternal
	}
}

func (k Kind) String() string { return k.Code() }

// Default messages.
const (
	MsgUnauthorized = "Unauthorized - Please provide valid credentials"
	MsgForbidden    = "Forbidden - You don't have permission to access this resource"
	MsgRateLimit    = "Too many requests - Please try again later"
	MsgInternal     = "Internal server error"
	DefaultResource = "Resource"
)

// Error is a classified application error.
type Error struct {
	Kind      Kind
	Message   string
	Details   any
	Resource  string
	Timestamp time.Time
	cause     error
}

// Error implements error.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// StatusCode returns the HTTP status of the error's kind.
func (e *Error) StatusCode() int { return e.Kind.Status() }

// ErrorCode returns the machine readable code of the error's kind.
func (e *Error) ErrorCode() string { return e.Kind.Code() }

// IsOperational reports whether the error is safe to describe to a caller.
func (e *Error) IsOperational() bool { return e.Kind != KindInternal }

// New creates an error of kind with a custom message.
func New(kind Kind, msg string) *Error {
	return &Error{
		Kind:      kind,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	}
}

// Wrap creates an error of kind that keeps cause for logging. The cause is
// never rendered to a client.
func Wrap(cause error, kind Kind, msg string) *Error {
	e := New(kind, msg)
	e.cause = cause
	return e
}

// Validation reports invalid input. details is an optional structured
// description of the offending fields.
func Validation(msg string, details any) *Error {
	e := New(KindValidation, msg)
	e.Details = details
	return e
}

// NotFound reports a missing resource, formatted as "<resource> not found".
func NotFound(resource string) *Error {
	if resource == "" {
		resource = DefaultResource
	}
	e := New(KindNotFound, resource+" not found")
	e.Resource = resource
	return e
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(msg string) *Error {
	return New(KindUnauthorized, orDefault(msg, MsgUnauthorized))
}

// Forbidden reports an authenticated caller without permission.
func Forbidden(msg string) *Error {
	return New(KindForbidden, orDefault(msg, MsgForbidden))
}

// Conflict reports a request that conflicts with current state.
func Conflict(msg string) *Error {
	return New(KindConflict, msg)
}

// RateLimit reports that the caller exceeded a request quota.
func RateLimit(msg string) *Error {
	return New(KindRateLimit, orDefault(msg, MsgRateLimit))
}

// Internal creates a non-operational error.
func Internal(msg string) *Error {
	return New(KindInternal, orDefault(msg, MsgInternal))
}

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

// As returns the outermost operational *Error in err's chain.
func As(err error) (*Error, bool) {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return nil, false
		}
		if e.IsOperational() {
			return e, true
		}
		err = e.cause
	}
	return nil, false
}

// IsKind reports whether err carries an operational error of kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
