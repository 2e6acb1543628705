package fieldpath

import (
	"errors"
	"fmt"
)

var (
	// ErrPathSyntax reports a malformed path segment.
	ErrPathSyntax = errors.New("path syntax error")
	// ErrMissingMember reports an absent key or member.
	ErrMissingMember = errors.New("missing member")
	// ErrIndexOutOfRange reports an index past the end of a sequence.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNonContainer reports an index group applied to a scalar.
	ErrNonContainer = errors.New("non-container access")
	// ErrUnsupportedOperator reports a combine mode with no definition for the operand types.
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrInvalidMode reports an unrecognized write mode.
	ErrInvalidMode = errors.New("invalid write mode")
)

// Error describes a failed path operation. It unwraps to one of the sentinel
// errors above and, when present, to the underlying cause.
type Error struct {
	// Op is "parse", "read" or "write".
	Op string
	// Path is the path string that was requested.
	Path string
	// Label is the resolved location where the operation failed.
	Label string
	// Err is the sentinel classifying the failure.
	Err error
	// Detail is the human-readable description.
	Detail string
	// Cause is the lower-level error, if any.
	Cause error
}

func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Err.Error()
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	if e.Path == "" {
		return e.Op + ": " + msg
	}

	return fmt.Sprintf("%s %q: %s", e.Op, e.Path, msg)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}

	return []error{e.Err, e.Cause}
}
