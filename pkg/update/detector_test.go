// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoscope/lithoscope/pkg/calc"
)

func TestDetectChanges(t *testing.T) {
	t.Run("identical parameters yield no changes", func(t *testing.T) {
		p := calc.DefaultParameters()
		assert.Empty(t, DetectChanges(calc.TypePorosity, p, p))
	})

	t.Run("one record per differing watched field", func(t *testing.T) {
		old := calc.DefaultParameters()
		next := old
		next.MatrixDensity = 2.71
		next.FluidDensity = 1.1

		changes := DetectChanges(calc.TypePorosity, old, next)
		require.Len(t, changes, 2)
		assert.Equal(t, "matrixDensity", changes[0].Parameter)
		assert.Equal(t, 2.65, changes[0].OldValue)
		assert.Equal(t, 2.71, changes[0].NewValue)
		assert.Equal(t, "fluidDensity", changes[1].Parameter)
	})

	t.Run("unwatched fields are invisible", func(t *testing.T) {
		old := calc.DefaultParameters()
		next := old
		next.GRClean = 40 // shale field, porosity must not see it
		assert.Empty(t, DetectChanges(calc.TypePorosity, old, next))
		assert.Len(t, DetectChanges(calc.TypeShaleVolume, old, next), 1)
	})

	t.Run("strict inequality has no epsilon", func(t *testing.T) {
		old := calc.DefaultParameters()
		next := old
		next.RW = old.RW + 1e-12
		assert.Len(t, DetectChanges(calc.TypeSaturation, old, next), 1)
	})

	t.Run("method switch is a change", func(t *testing.T) {
		old := calc.DefaultParameters()
		next := old
		next.ShaleMethod = calc.MethodClavier
		changes := DetectChanges(calc.TypeShaleVolume, old, next)
		require.Len(t, changes, 1)
		assert.Equal(t, "shaleMethod", changes[0].Parameter)
	})
}

func TestDetectAllChanges(t *testing.T) {
	old := calc.DefaultParameters()
	next := old
	next.MatrixDensity = 2.71
	next.RW = 0.08

	changes := DetectAllChanges(calc.AllTypes(), old, next)
	require.Len(t, changes, 2)
	assert.Equal(t, calc.TypePorosity, changes[0].Type)
	assert.Equal(t, calc.TypeSaturation, changes[1].Type)
}
