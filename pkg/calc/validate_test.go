// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShaleParameters(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		r := ValidateShaleParameters(DefaultParameters())
		assert.True(t, r.IsValid)
		assert.Empty(t, r.Errors)
	})

	t.Run("inverted baselines are critical regardless of other fields", func(t *testing.T) {
		p := DefaultParameters()
		p.GRClean = 120
		p.GRShale = 100
		r := ValidateShaleParameters(p)
		assert.False(t, r.IsValid)
		require.NotEmpty(t, r.Errors)

		found := false
		for _, f := range r.Errors {
			if f.Severity == SeverityCritical && f.Field == "grShale" {
				found = true
				assert.NotEmpty(t, f.SuggestedFix, "findings must carry a displayable fix")
			}
		}
		assert.True(t, found, "expected a critical grShale finding")
	})

	t.Run("equal baselines are also critical", func(t *testing.T) {
		p := DefaultParameters()
		p.GRClean = 100
		p.GRShale = 100
		assert.False(t, ValidateShaleParameters(p).IsValid)
	})

	t.Run("narrow separation warns but does not block", func(t *testing.T) {
		p := DefaultParameters()
		p.GRClean = 100
		p.GRShale = 110
		r := ValidateShaleParameters(p)
		assert.True(t, r.IsValid)
		assert.NotEmpty(t, r.Warnings)
	})

	t.Run("baseline range checks", func(t *testing.T) {
		p := DefaultParameters()
		p.GRClean = 250 // above [0,200]
		assert.False(t, ValidateShaleParameters(p).IsValid)

		p = DefaultParameters()
		p.GRShale = 40 // below [50,500]
		assert.False(t, ValidateShaleParameters(p).IsValid)
	})
}

func TestValidatePorosityParameters(t *testing.T) {
	t.Run("matrix below fluid is critical", func(t *testing.T) {
		p := DefaultParameters()
		p.MatrixDensity = 1.0
		p.FluidDensity = 1.2
		r := ValidatePorosityParameters(p)
		assert.False(t, r.IsValid)
	})

	t.Run("unknown method is critical", func(t *testing.T) {
		p := DefaultParameters()
		p.PorosityMethod = "sonic"
		assert.False(t, ValidatePorosityParameters(p).IsValid)
	})
}

func TestValidateSaturationParameters(t *testing.T) {
	t.Run("unusual exponents warn only", func(t *testing.T) {
		p := DefaultParameters()
		p.M = 1.1
		p.N = 3.5
		r := ValidateSaturationParameters(p)
		assert.True(t, r.IsValid)
		assert.Len(t, r.Warnings, 2)
	})

	t.Run("non-positive constants are critical", func(t *testing.T) {
		p := DefaultParameters()
		p.A = 0
		assert.False(t, ValidateSaturationParameters(p).IsValid)
	})
}

func TestValidatePermeabilityParameters(t *testing.T) {
	t.Run("swi outside open interval is critical", func(t *testing.T) {
		p := DefaultParameters()
		p.SWI = 1.0
		assert.False(t, ValidatePermeabilityParameters(p).IsValid)
	})

	t.Run("defaults are valid for every method", func(t *testing.T) {
		for _, m := range []string{MethodKozenyCarman, MethodTimur, MethodCoatesDumanoir} {
			p := DefaultParameters()
			p.PermeabilityMethod = m
			assert.True(t, ValidatePermeabilityParameters(p).IsValid, m)
		}
	})
}

func TestValidateParametersDispatch(t *testing.T) {
	r := ValidateParameters(Type("magnetics"), DefaultParameters())
	assert.False(t, r.IsValid)
}
