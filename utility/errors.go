package utility

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind int

const (
	// KindMissing means a required input was absent.
	KindMissing Kind = iota + 1
	// KindMalformed means an input could not be interpreted (not a number,
	// not a list, no usable values).
	KindMalformed
	// KindOutOfDomain means an input was well formed but outside the accepted
	// range.
	KindOutOfDomain
	// KindNonFinite means the computation overflowed or produced NaN.
	KindNonFinite
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindMalformed:
		return "malformed"
	case KindOutOfDomain:
		return "out_of_domain"
	case KindNonFinite:
		return "non_finite"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the failure value returned by every function in this package.
//
// Message is safe to show to API clients.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return "utility: error: <nil>"
	}
	if e.Field == "" {
		return "utility: " + e.Kind.String() + ": " + e.Message
	}
	return "utility: " + e.Kind.String() + ": " + e.Field + ": " + e.Message
}

// Is reports whether target is an *Error of the same Kind. This lets callers
// write errors.Is(err, &utility.Error{Kind: utility.KindMissing}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

func newError(kind Kind, field, message string) error {
	return &Error{Kind: kind, Field: field, Message: message}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) && ue != nil {
		return ue.Kind
	}
	return 0
}
