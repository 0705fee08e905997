package errors

import (
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	// the status only applies when the cause is itself a status error or
	// the error carries its own detail; otherwise the failure is internal
	NeedsCause bool
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Board domain failures. Wrap them with fmt.Errorf("%w: ...") to add detail
// for logs; clients only ever see Message. Use WithDetail for detail that is
// safe to show.
var (
	ValidationFailed = &ErrorWithStatusCode{Message: "validation failed", StatusCode: http.StatusUnprocessableEntity}
	NotFound         = &ErrorWithStatusCode{Message: "not found", StatusCode: http.StatusNotFound}
	// same shape as a missing board: a non-owner must not learn the board exists
	NotOwner              = &ErrorWithStatusCode{Message: "board is not registered, register it before updating", StatusCode: http.StatusNotFound}
	EnrichmentUnavailable = &ErrorWithStatusCode{Message: "restaurant service unavailable", StatusCode: http.StatusBadGateway}
	EnrichmentMismatch    = &ErrorWithStatusCode{Message: "restaurant details do not match stored entries", StatusCode: http.StatusBadGateway}
	NoResults             = &ErrorWithStatusCode{Message: "no boards found", StatusCode: http.StatusUnprocessableEntity}
	UpdateFailed          = &ErrorWithStatusCode{Message: "board update failed", StatusCode: http.StatusUnprocessableEntity, NeedsCause: true}
)

// DetailedError is a sentinel plus client-safe detail.
type DetailedError struct {
	Kind   *ErrorWithStatusCode
	Detail string
}

func (e *DetailedError) Error() string {
	return e.Kind.Message + ": " + e.Detail
}

func (e *DetailedError) Unwrap() error {
	return e.Kind
}

func WithDetail(kind *ErrorWithStatusCode, format string, args ...any) error {
	return &DetailedError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

type publicError struct {
	kind     *ErrorWithStatusCode
	message  string
	detailed bool
}

// Public returns the status code and the message a client may see. ok is
// false when err carries no usable status, which means an internal error.
// Text added by fmt.Errorf wrapping never reaches the message.
func Public(err error) (status int, message string, ok bool) {
	found := collect(err, nil)
	if len(found) == 0 {
		return 0, "", false
	}
	first := found[0]
	if !first.kind.NeedsCause || first.detailed {
		return first.kind.StatusCode, first.message, true
	}
	if len(found) == 1 {
		return 0, "", false
	}
	return first.kind.StatusCode, first.message + ": " + found[1].message, true
}

// collect walks err depth first, in the order errors.As does.
func collect(err error, found []publicError) []publicError {
	switch e := err.(type) {
	case nil:
		return found
	case *DetailedError:
		return append(found, publicError{kind: e.Kind, message: e.Error(), detailed: true})
	case *ErrorWithStatusCode:
		return append(found, publicError{kind: e, message: e.Message})
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			found = collect(inner, found)
		}
		return found
	case interface{ Unwrap() error }:
		return collect(e.Unwrap(), found)
	default:
		return found
	}
}
