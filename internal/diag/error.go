package diag

import (
	"errors"
	"fmt"

	"cxxtargs/internal/source"
)

// Error is the failure returned by the parser packages.
type Error struct {
	Code Code
	Span source.Span
	Msg  string
}

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (at %d-%d)", e.Code.ID(), e.Msg, e.Span.Start, e.Span.End)
}

// Kind returns the failure class of the error.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// Is matches the sentinel of the error's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind().Sentinel()
	return s != nil && s == target
}

// Diagnostic converts the error into an error-level Diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	return NewError(e.Code, e.Span, e.Msg)
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindNone if err is not a parse error.
func KindOf(err error) Kind {
	if de, ok := AsError(err); ok {
		return de.Kind()
	}
	return KindNone
}
