package wfreq

import (
	"errors"

	"github.com/arrowcount/wfreq/internal/alloc"
	"github.com/arrowcount/wfreq/internal/hashindex"
)

// ErrKind classifies a counter error so callers can branch on intent
// rather than text.
type ErrKind int

const (
	// ErrKindInvalidArg covers a nil counter where one is required, or an
	// argument the allocator rejects (a zero-size request, an empty or
	// misaligned static region).
	ErrKindInvalidArg ErrKind = iota
	// ErrKindOutOfMemory covers allocator failure, size-arithmetic
	// overflow, or byte/region budget exhaustion.
	ErrKindOutOfMemory
	// ErrKindInvariantViolation covers a snapshot consistency check that
	// found the occupied-slot count disagreeing with the tracked unique
	// count.
	ErrKindInvariantViolation
)

// Error is the one error type the core ever returns: a Kind for
// programmatic branching, a static per-kind diagnostic string, and an
// optional wrapped cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so errors.Is
// matches a returned error against the sentinel of its kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidArg         = &Error{Kind: ErrKindInvalidArg, Msg: "invalid argument"}
	ErrOutOfMemory        = &Error{Kind: ErrKindOutOfMemory, Msg: "out of memory"}
	ErrInvariantViolation = &Error{Kind: ErrKindInvariantViolation, Msg: "invariant violation"}
)

// ErrorString returns the static diagnostic string for err, or "ok" for a
// nil error. Unrecognized errors fall back to err.Error().
func ErrorString(err error) string {
	if err == nil {
		return "ok"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

// wrapErr translates an internal alloc/hashindex error into the public
// *Error taxonomy. nil passes through unchanged.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, alloc.ErrInvalidArg):
		return &Error{Kind: ErrKindInvalidArg, Msg: "invalid argument", Err: err}
	case errors.Is(err, alloc.ErrOutOfMemory), errors.Is(err, hashindex.ErrOutOfMemory):
		return &Error{Kind: ErrKindOutOfMemory, Msg: "out of memory", Err: err}
	case errors.Is(err, hashindex.ErrInvariantViolation):
		return &Error{Kind: ErrKindInvariantViolation, Msg: "invariant violation", Err: err}
	default:
		return err
	}
}
