package levauto

import "fmt"

// ErrorKind classifies façade-level construction errors.
type ErrorKind uint8

const (
	// InvalidInput indicates a requested edit distance or configuration
	// value outside the supported range.
	InvalidInput ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the error type surfaced by New/NewWithConfig. Façade-level
// validation failures (an out-of-range distance, say) construct one
// directly with newError. Construction failures from a lower package
// (automaton, determinize, minimize, levenshtein, runauto, prefilter) are
// wrapped with wrapError, which sets Cause to the original error without
// discarding it: errors.As still recovers the lower package's own *Error
// (with its own Kind) by walking Unwrap, and errors.Is(err, &Error{Kind:
// InvalidInput}) matches at the façade level regardless of Message.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("levauto: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("levauto: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, letting
// errors.Is match on Kind alone the way it does for every other error
// type in this module.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapError wraps a construction failure from a lower package in a
// façade-level Error, preserving it as Cause so errors.As/errors.Unwrap
// still reach the original. err is returned verbatim if nil.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: InvalidInput, Message: "automaton construction failed", Cause: err}
}
