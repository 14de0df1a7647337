// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package calc implements the petrophysical calculators: porosity, shale
// volume, water saturation and permeability.
//
// # Error Taxonomy
//
// Calculators distinguish two failure classes:
//
//   - Per-sample issues (out-of-range input, negative radicand, degenerate
//     porosity) never return an error. The affected sample degrades to the
//     null value so one bad depth cannot interrupt the whole curve.
//   - Per-request structural issues (missing input curve, mismatched array
//     lengths, unknown method, blocking validation errors) return wrapped
//     sentinel errors, because no meaningful partial result exists.
//
// Parameter problems intended for display next to the offending field are
// not errors at all: they are ValidationResult findings with suggested
// fixes (see validate.go).
package calc

import "errors"

// Sentinel errors for structural calculation failures.
var (
	// ErrUnknownMethod is returned when a calculation method is not
	// recognized for the requested calculation type.
	ErrUnknownMethod = errors.New("unknown calculation method")

	// ErrMissingCurve is returned when a required input curve is absent
	// from the well.
	ErrMissingCurve = errors.New("required input curve missing")

	// ErrLengthMismatch is returned when paired input series differ in
	// length. This is a caller contract violation, not a data issue.
	ErrLengthMismatch = errors.New("input series length mismatch")

	// ErrInvalidParameters is returned when blocking validation findings
	// exist. Inspect ValidateParameters for the field-level findings.
	ErrInvalidParameters = errors.New("invalid calculation parameters")

	// ErrUnknownType is returned for a calculation type outside the
	// supported set.
	ErrUnknownType = errors.New("unknown calculation type")
)
