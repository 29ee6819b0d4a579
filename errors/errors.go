// Package errors provides error handling for markergen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrOutputNameCollision) {
//	    // handle collision
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the generation pass. Each corresponds to one
// recoverable failure mode; all are downgraded to diagnostics so a pass
// always runs to completion. Use errors.Is() to classify, errors.Wrap()
// to add context while preserving the kind.
var (
	// ErrInvalidMarkerUsage indicates the generation marker was applied to a
	// construct that cannot be generated for (interface, already-generated
	// type, malformed declaration).
	ErrInvalidMarkerUsage = New("invalid marker usage")

	// ErrUnrepresentableMember indicates a member whose declared type cannot
	// be rendered as printable text. The member is excluded; the declaration
	// still proceeds.
	ErrUnrepresentableMember = New("unrepresentable member")

	// ErrOutputNameCollision indicates two declarations derived the same
	// output identifier. Neither output is written.
	ErrOutputNameCollision = New("output name collision")

	// ErrWriteFailure indicates the output artifact could not be persisted.
	// The cache is left untouched so the next pass retries.
	ErrWriteFailure = New("write failure")
)

// IsInvalidMarkerUsage checks if an error is or wraps ErrInvalidMarkerUsage.
func IsInvalidMarkerUsage(err error) bool {
	return err != nil && Is(err, ErrInvalidMarkerUsage)
}

// IsUnrepresentableMember checks if an error is or wraps ErrUnrepresentableMember.
func IsUnrepresentableMember(err error) bool {
	return err != nil && Is(err, ErrUnrepresentableMember)
}

// IsOutputNameCollision checks if an error is or wraps ErrOutputNameCollision.
func IsOutputNameCollision(err error) bool {
	return err != nil && Is(err, ErrOutputNameCollision)
}

// IsWriteFailure checks if an error is or wraps ErrWriteFailure.
func IsWriteFailure(err error) bool {
	return err != nil && Is(err, ErrWriteFailure)
}

// NewInvalidMarkerUsage creates an invalid-marker error with a formatted message.
func NewInvalidMarkerUsage(format string, args ...interface{}) error {
	return Wrap(ErrInvalidMarkerUsage, Newf(format, args...).Error())
}

// NewWriteFailure wraps an I/O error as a write failure with context.
func NewWriteFailure(err error, context string) error {
	return Wrap(Wrap(ErrWriteFailure, err.Error()), context)
}
