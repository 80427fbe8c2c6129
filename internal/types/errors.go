package types

import (
	"errors"
	"fmt"
)

// Kind classifies codec errors.
type Kind int

const (
	// KindDecode covers malformed input and failures reading a resource.
	KindDecode Kind = iota
	// KindEncode covers failures producing bytes or writing a resource.
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by the codecs, dispatch and
// resource layers. Underlying causes are flattened into Msg.
type Error struct {
	Kind Kind
	Msg  string

	// Line is the 1-based line or row number for line-oriented formats, 0
	// when unknown. It is already part of Msg when set through AtLine.
	Line int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// String returns a verbose representation for debug logging.
func (e *Error) String() string {
	return fmt.Sprintf("Kind: %s, Line: %d, Message: %s", e.Kind, e.Line, e.Msg)
}

// AtLine returns a copy of e that names the line, prefixed with what.
// Example: AtLine("error parsing line", 3) -> "error parsing line 3: <msg>".
func (e *Error) AtLine(what string, line int) *Error {
	return &Error{
		Kind: e.Kind,
		Msg:  fmt.Sprintf("%s %d: %s", what, line, e.Msg),
		Line: line,
	}
}

// WithLine returns a copy of e that records the line without changing the
// message.
func (e *Error) WithLine(line int) *Error {
	return &Error{Kind: e.Kind, Msg: e.Msg, Line: line}
}

// NewDecodeError creates a decode error with a fixed message.
func NewDecodeError(msg string) *Error {
	return &Error{Kind: KindDecode, Msg: msg}
}

// NewDecodeErrorf creates a decode error with a formatted message.
func NewDecodeErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindDecode, Msg: fmt.Sprintf(format, args...)}
}

// NewEncodeError creates an encode error with a fixed message.
func NewEncodeError(msg string) *Error {
	return &Error{Kind: KindEncode, Msg: msg}
}

// NewEncodeErrorf creates an encode error with a formatted message.
func NewEncodeErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindEncode, Msg: fmt.Sprintf(format, args...)}
}

// AsDecode converts any error into a decode error, keeping it unchanged if it
// already is a *Error.
func AsDecode(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewDecodeError(err.Error())
}

// AsEncode converts any error into an encode error, keeping it unchanged if it
// already is a *Error.
func AsEncode(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewEncodeError(err.Error())
}

// IsDecode reports whether err is, or wraps, a decode error.
func IsDecode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindDecode
}

// IsEncode reports whether err is, or wraps, an encode error.
func IsEncode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindEncode
}
