// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoscope/lithoscope/pkg/curve"
)

func writeWellFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "well.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadWellTranslatesNullSentinel(t *testing.T) {
	path := writeWellFile(t, `
name: W-7
depthStart: 2000
depthEnd: 2002
curves:
  - name: GR
    unit: gAPI
    quality: fair
    samples: [45, -999.25, 120]
`)

	w, err := loadWell(path)
	require.NoError(t, err)
	assert.Equal(t, "W-7", w.Name())

	gr, ok := w.Curve("GR")
	require.True(t, ok)
	assert.Equal(t, curve.QualityFair, gr.Quality())
	assert.Equal(t, 2, gr.ValidCount())
	assert.True(t, curve.IsNull(gr.Samples()[1]))
}

func TestLoadWellCustomNullValue(t *testing.T) {
	path := writeWellFile(t, `
name: W-8
depthStart: 0
depthEnd: 1
nullValue: -9999
curves:
  - name: RHOB
    unit: g/cc
    samples: [2.4, -9999]
`)

	w, err := loadWell(path)
	require.NoError(t, err)
	rhob, ok := w.Curve("RHOB")
	require.True(t, ok)
	assert.Equal(t, 1, rhob.ValidCount())
}

func TestLoadWellRejectsMismatchedCurveLengths(t *testing.T) {
	path := writeWellFile(t, `
name: W-9
depthStart: 0
depthEnd: 1
curves:
  - name: GR
    unit: gAPI
    samples: [10, 20]
  - name: RHOB
    unit: g/cc
    samples: [2.4]
`)

	_, err := loadWell(path)
	assert.ErrorIs(t, err, curve.ErrCurveLengthMismatch)
}

func TestLoadWellRejectsUnknownQuality(t *testing.T) {
	path := writeWellFile(t, `
name: W-10
depthStart: 0
depthEnd: 1
curves:
  - name: GR
    unit: gAPI
    quality: bad
    samples: [10, 20]
`)

	_, err := loadWell(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown curve quality")
}

func TestLoadWellEmptyQualityDefaultsToGood(t *testing.T) {
	path := writeWellFile(t, `
name: W-11
depthStart: 0
depthEnd: 1
curves:
  - name: GR
    unit: gAPI
    samples: [10, 20]
`)

	w, err := loadWell(path)
	require.NoError(t, err)
	gr, ok := w.Curve("GR")
	require.True(t, ok)
	assert.Equal(t, curve.QualityGood, gr.Quality())
}

func TestLoadWellsRequiresAtLeastOne(t *testing.T) {
	_, err := loadWells(nil)
	assert.Error(t, err)
}
