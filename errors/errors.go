// Package errors provides error handling for resgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints for structural failures
//
// Usage:
//
//	if err := reader.Read(ctx, f); err != nil {
//	    return errors.Wrapf(err, "failed to read %s", path)
//	}
//
//	return errors.WithHint(err, "rename the input file so it starts with a letter")
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
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors shared across resgen.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidIdentifier indicates a name could not be turned into a valid identifier
	ErrInvalidIdentifier = New("invalid identifier")

	// ErrNameCollision indicates two resource keys produced the same identifier
	ErrNameCollision = New("identifier collision")

	// ErrUnclassifiableType indicates a resource has no usable type information
	ErrUnclassifiableType = New("unclassifiable resource type")

	// ErrDuplicateKey indicates two resource keys are equal ignoring case
	ErrDuplicateKey = New("duplicate resource key")

	// ErrUnsupportedFormat indicates no reader or target exists for the request
	ErrUnsupportedFormat = New("unsupported format")

	// ErrOutOfDate indicates generated files differ from what would be generated now
	ErrOutOfDate = New("generated files are out of date")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = New("not found")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsStructural reports whether err aborts a whole generation run rather than
// a single resource.
func IsStructural(err error) bool {
	return err != nil && IsAny(err, ErrInvalidIdentifier, ErrDuplicateKey, ErrUnsupportedFormat)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
