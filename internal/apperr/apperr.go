// Package apperr defines the error kinds returned at component boundaries.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindUnsupportedFormat Kind = "UNSUPPORTED_FORMAT"
	KindConfig            Kind = "CONFIG_ERROR"
	KindService           Kind = "SERVICE_ERROR"
	KindIO                Kind = "IO_ERROR"
	KindMalformedReply    Kind = "MALFORMED_REPLY"
	KindUnknown           Kind = "UNKNOWN"
)

// Error carries a Kind alongside a message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same kind with no message,
// which lets errors.Is(err, apperr.NotFound) work against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	NotFound          = &Error{Kind: KindNotFound}
	UnsupportedFormat = &Error{Kind: KindUnsupportedFormat}
	Config            = &Error{Kind: KindConfig}
	Service           = &Error{Kind: KindService}
	IO                = &Error{Kind: KindIO}
	MalformedReply    = &Error{Kind: KindMalformedReply}
)

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
