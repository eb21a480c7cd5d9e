package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so the HTTP shell can map it to a status
// code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidTransition
	KindAlreadyConsumed
	KindConcurrencyConflict
)

// Error is a typed domain failure. All core operations return these as
// values; nothing in the core panics on a business rule violation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on the kind sentinel values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Kind sentinels for errors.Is checks.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidTransition   = &Error{Kind: KindInvalidTransition}
	ErrAlreadyConsumed     = &Error{Kind: KindAlreadyConsumed}
	ErrConcurrencyConflict = &Error{Kind: KindConcurrencyConflict}
)

// NotFound reports a missing container, vessel, authorization or request.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidTransition reports a lifecycle operation the current derived state
// does not permit.
func InvalidTransition(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

// AlreadyConsumed reports an attempt to reuse a used authorization.
func AlreadyConsumed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAlreadyConsumed, Message: fmt.Sprintf(format, args...)}
}

// ConcurrencyConflict wraps a transaction that could not commit because of a
// concurrent conflicting write.
func ConcurrencyConflict(err error) *Error {
	return &Error{Kind: KindConcurrencyConflict, Message: "concurrent conflicting write", Err: err}
}

// KindOf extracts the Kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
