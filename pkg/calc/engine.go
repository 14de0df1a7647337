// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import (
	"fmt"

	"github.com/lithoscope/lithoscope/pkg/curve"
)

// Compute runs one calculation of the given type over a well.
//
// # Description
//
// Validates the parameters first: blocking findings fail the request with
// ErrInvalidParameters (fetch the field-level findings via
// ValidateParameters for display). Then resolves the configured method,
// fetches the required curves and produces an immutable Result with
// uncertainty, quality metrics and statistics attached.
//
// Per-sample numerical issues never surface here; they degrade to null
// samples inside the formula kernels. Only structural problems (missing
// curve, unknown method, length mismatch) return an error.
//
// # Inputs
//
//   - t: Calculation type.
//   - well: Source well. Must carry the curves the method needs.
//   - p: Fully-resolved parameters (defaults already merged).
//
// # Outputs
//
//   - *Result: The derived series. Nil on error.
//   - error: Wrapped sentinel (ErrUnknownType, ErrInvalidParameters,
//     ErrMissingCurve, ErrUnknownMethod, ErrLengthMismatch).
func Compute(t Type, well *curve.Well, p Parameters) (*Result, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if vr := ValidateParameters(t, p); !vr.IsValid {
		return nil, fmt.Errorf("%w: %s: %d blocking finding(s), first: %s",
			ErrInvalidParameters, t, len(vr.Errors), vr.Errors[0].Message)
	}

	switch t {
	case TypePorosity:
		return computePorosity(well, p)
	case TypeShaleVolume:
		return computeShaleVolume(well, p)
	case TypeSaturation:
		return computeSaturation(well, p)
	case TypePermeability:
		return computePermeability(well, p)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
}
