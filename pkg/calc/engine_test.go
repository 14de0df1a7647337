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

	"github.com/lithoscope/lithoscope/pkg/curve"
)

func TestComputeUnknownType(t *testing.T) {
	w := curve.NewWell("W-1", 0, 1)
	_, err := Compute(Type("gravimetrics"), w, DefaultParameters())
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestComputeBlocksOnInvalidParameters(t *testing.T) {
	w := curve.NewWell("W-1", 0, 1)
	require.NoError(t, w.AddCurve(curve.New("GR", "gAPI", []float64{40, 80}, curve.QualityGood)))

	p := DefaultParameters()
	p.GRClean = 120
	p.GRShale = 100 // inverted baselines

	_, err := Compute(TypeShaleVolume, w, p)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestComputeMissingCurve(t *testing.T) {
	w := curve.NewWell("W-1", 0, 1)
	require.NoError(t, w.AddCurve(curve.New("GR", "gAPI", []float64{40, 80}, curve.QualityGood)))

	_, err := Compute(TypePorosity, w, DefaultParameters())
	assert.ErrorIs(t, err, ErrMissingCurve)
}
