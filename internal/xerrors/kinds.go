// Package xerrors defines the flat, non-hierarchical error vocabulary
// of the expression algebra (TypeError, DivisionByZero, KeyNotFound,
// BuilderStateError, ArgumentError, IntegrityError) as comparable
// *errors.Kind values from gopkg.in/src-d/go-errors.v1, the same
// flat-error-kind shape the corpus reaches for in its own SQL error
// vocabulary. Hosts test for a kind with Kind.Is(err), never by
// string-matching the message.
package xerrors

import (
	srcderrors "gopkg.in/src-d/go-errors.v1"
)

// Kind is a comparable error-kind identity; every call site that
// constructs one of these errors re-uses the same *Kind value.
type Kind = srcderrors.Kind

var (
	// TypeError: operator applied to incompatible value variants.
	TypeError = srcderrors.NewKind("type error: incompatible operand types %s and %s")

	// DivisionByZero: self-evident.
	DivisionByZero = srcderrors.NewKind("division by zero")

	// KeyNotFound: Lookup without a match.
	KeyNotFound = srcderrors.NewKind("key not found: %v")

	// BuilderStateError: conditional grammar violated.
	BuilderStateError = srcderrors.NewKind("invalid builder transition: %s")

	// ArgumentError: malformed operand (a name=value binding with an
	// empty name, or a nil node reference).
	ArgumentError = srcderrors.NewKind("invalid operand argument: %s")

	// IntegrityError: reconstruction input malformed (cycles, dangling
	// parents, multiple roots).
	IntegrityError = srcderrors.NewKind("integrity error: %s")
)
