package pcsaves

import (
	"errors"
	"fmt"

	"pcsaves/pkg/pcsaves/expr"
)

// ValidationError marks a user-input validation failure (bad PC number,
// non-bag character, geometry not divisible by 4, inconsistent
// leftover/build). Callers are expected to print it and terminate
// successfully rather than propagate it as a crash, per the CLI layer's
// error policy.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConsistencyError marks a path-table row that contradicts the build/
// leftover the reader was configured with (queue doesn't begin with the
// expected leftover remainder, a bag slice repeats a piece). These name the
// offending queue so the operator can correct the upstream generator.
type ConsistencyError struct {
	Queue string
	Msg   string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("queue %q: %s", e.Queue, e.Msg)
}

func consistencyErrorf(queue, format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Queue: queue, Msg: fmt.Sprintf(format, args...)}
}

// genericConsistencyErrorf reports a consistency failure with no single
// offending queue to name (a malformed fumen, an unreachable downstream
// call), as opposed to consistencyErrorf's per-row failures.
func genericConsistencyErrorf(format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Msg: fmt.Sprintf(format, args...)}
}

// InternalBug is the error kind for an internal invariant violation in the
// minimal-set search. No code in this package panics with it:
// FindMinimalNodes and FindBestSet contain no invariant check that raises it.
type InternalBug struct {
	Msg string
}

func (e InternalBug) Error() string { return "internal bug: " + e.Msg }

// IsUserFacing reports whether err is one of the expected, surfaceable
// error kinds (validation, expression syntax, or path-table consistency)
// per spec.md §7's taxonomy: a caller should print these and exit zero,
// reserving a non-zero exit for an InternalBug or any other unexpected
// failure.
func IsUserFacing(err error) bool {
	var validationErr *ValidationError
	var consistencyErr *ConsistencyError
	var syntaxErr *expr.SyntaxError
	return errors.As(err, &validationErr) || errors.As(err, &consistencyErr) || errors.As(err, &syntaxErr)
}
