// Package errs provides error handling for gmockgen.
//
// This package re-exports github.com/cockroachdb/errors and defines the
// sentinel errors of the generator. Configuration errors are fatal: callers
// abort the run before any artifact is written.
//
// Usage:
//
//	return errs.Wrapf(errs.ErrUnsupportedLanguage, "language %q", tag)
//
//	if errs.Is(err, errs.ErrNoPipeline) {
//	    // usage error
//	}
package errs

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
)

var (
	Is           = crdb.Is
	As           = crdb.As
	FlattenHints = crdb.FlattenHints
)

var (
	// ErrUnsupportedLanguage indicates a dialect tag with no registered backend
	ErrUnsupportedLanguage = New("unsupported language")

	// ErrUnsupportedFeature indicates a dialect was asked for a capability it lacks
	ErrUnsupportedFeature = New("language specific feature not supported")

	// ErrMissingField indicates a required schema field is absent
	ErrMissingField = New("missing required field")

	// ErrInvalidSchema indicates a schema value that cannot be generated from
	ErrInvalidSchema = New("invalid schema")

	// ErrNoPipeline indicates that neither header nor mock generation was requested
	ErrNoPipeline = New("no generation pipeline selected")
)

// IsConfigurationError reports whether err belongs to the fatal configuration class
func IsConfigurationError(err error) bool {
	return err != nil && crdb.IsAny(err,
		ErrUnsupportedLanguage,
		ErrUnsupportedFeature,
		ErrMissingField,
		ErrInvalidSchema,
	)
}
