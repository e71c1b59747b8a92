package malan

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure so callers can branch on it without string
// matching.
type Kind int

const (
	// InvalidArgument covers bad sizes, out-of-range probabilities,
	// non-positive rates, ladder violations, and mismatched locus counts.
	InvalidArgument Kind = iota
	// InvalidState covers an unset or already-mutated haplotype, or a
	// pedigree query against an individual with no pedigree.
	InvalidState
	// Cancelled is returned when a CancelProbe trips mid-operation.
	Cancelled
	// NumericFailure covers a failed QR decomposition in the theta
	// estimators; estimators prefer to surface this as a result flag,
	// but operations that cannot return a partial result use this Kind.
	NumericFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidState:
		return "InvalidState"
	case Cancelled:
		return "Cancelled"
	case NumericFailure:
		return "NumericFailure"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every fallible operation in
// this package. It wraps a cause created with github.com/pkg/errors, which
// records a stack trace, and tags it with a Kind. Error() prints only the
// kind and the cause's message; %+v on the unwrapped cause prints the trace.
type Error struct {
	kind  Kind
	cause error
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, cause: errors.Errorf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, cause: errors.Wrap(cause, fmt.Sprintf(format, args...))}
}

// Kind reports the failure class of e, or -1 if e is nil.
func (e *Error) Kind() Kind {
	if e == nil {
		return -1
	}
	return e.kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var me *Error
	if !errors.As(err, &me) {
		return false
	}
	return me.kind == kind
}
