// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package curve provides the shared representation of well-log curves.
//
// A curve is a named, unit-tagged sequence of depth-aligned samples with an
// explicit notion of absence. In memory, absence is always NaN; wire-format
// sentinels such as -999.25 are translated at ingestion (FromRaw) and never
// leak into calculator logic.
//
// # Ownership Model
//
// Curves are immutable after construction:
//   - Constructors copy the sample slice they are given.
//   - Samples() returns the internal slice for efficiency; callers MUST NOT
//     mutate it.
//
// # Depth Alignment
//
// Curves belonging to one well share one depth axis, produced by uniform
// interpolation over the well's recorded depth range:
//
//	depth(i) = start + i*(end-start)/(n-1)
package curve

import (
	"math"
)

// WireNull is the conventional LAS null sentinel. It exists only for
// ingestion and export; in-memory absence is NaN.
const WireNull = -999.25

// Quality is the acquisition-quality descriptor attached to a curve.
type Quality string

const (
	// QualityGood indicates a clean acquisition with no known issues.
	QualityGood Quality = "good"

	// QualityFair indicates minor acquisition issues (washouts, sticking).
	QualityFair Quality = "fair"

	// QualityPoor indicates a degraded acquisition; derived confidence
	// levels are stepped down for poor curves.
	QualityPoor Quality = "poor"
)

// IsNull reports whether a sample marks an absent value.
func IsNull(v float64) bool {
	return math.IsNaN(v)
}

// Null returns the in-memory absent-sample value.
func Null() float64 {
	return math.NaN()
}

// Curve is a named, unit-tagged sequence of depth-aligned samples.
//
// # Thread Safety
//
// Curves are immutable after construction and safe for concurrent reads.
type Curve struct {
	name    string
	unit    string
	samples []float64
	quality Quality
}

// New constructs a curve from in-memory samples.
//
// # Description
//
// The sample slice is copied; non-finite inputs (NaN, ±Inf) are normalized
// to the null sample. Use FromRaw for data that still carries a wire-format
// null sentinel.
//
// # Inputs
//
//   - name: Curve mnemonic (e.g. "GR", "RHOB").
//   - unit: Unit string (e.g. "gAPI", "g/cc"). May be empty.
//   - samples: Sample values. Copied, not retained.
//   - quality: Acquisition quality flag. Empty defaults to QualityGood.
//
// # Outputs
//
//   - *Curve: The immutable curve. Never nil.
func New(name, unit string, samples []float64, quality Quality) *Curve {
	if quality == "" {
		quality = QualityGood
	}
	data := make([]float64, len(samples))
	for i, v := range samples {
		if math.IsInf(v, 0) {
			data[i] = math.NaN()
		} else {
			data[i] = v
		}
	}
	return &Curve{name: name, unit: unit, samples: data, quality: quality}
}

// FromRaw constructs a curve from wire-format data carrying a null sentinel.
//
// # Description
//
// Every sample equal to nullValue (and every non-finite sample) becomes the
// in-memory null. This is the single place where -999.25 style sentinels
// are interpreted; downstream code only ever checks IsNull.
//
// # Inputs
//
//   - name: Curve mnemonic.
//   - unit: Unit string.
//   - data: Raw samples, possibly containing nullValue markers. Copied.
//   - nullValue: The wire sentinel marking absent samples (e.g. WireNull).
//   - quality: Acquisition quality flag. Empty defaults to QualityGood.
//
// # Outputs
//
//   - *Curve: The immutable curve with sentinels translated to null.
func FromRaw(name, unit string, data []float64, nullValue float64, quality Quality) *Curve {
	if quality == "" {
		quality = QualityGood
	}
	samples := make([]float64, len(data))
	for i, v := range data {
		if v == nullValue || math.IsNaN(v) || math.IsInf(v, 0) {
			samples[i] = math.NaN()
		} else {
			samples[i] = v
		}
	}
	return &Curve{name: name, unit: unit, samples: samples, quality: quality}
}

// Name returns the curve mnemonic.
func (c *Curve) Name() string { return c.name }

// Unit returns the unit string.
func (c *Curve) Unit() string { return c.unit }

// Quality returns the acquisition quality flag.
func (c *Curve) Quality() Quality { return c.quality }

// Len returns the number of samples, including nulls.
func (c *Curve) Len() int { return len(c.samples) }

// Samples returns the internal sample slice.
//
// The returned slice MUST NOT be mutated (see the package ownership model).
// Absent samples are NaN.
func (c *Curve) Samples() []float64 { return c.samples }

// At returns the sample at index i. Panics if i is out of range, matching
// slice semantics.
func (c *Curve) At(i int) float64 { return c.samples[i] }

// ValidCount returns the number of non-null samples.
func (c *Curve) ValidCount() int {
	n := 0
	for _, v := range c.samples {
		if !IsNull(v) {
			n++
		}
	}
	return n
}

// Completeness returns the valid-sample fraction in [0,1].
// An empty curve has completeness 0.
func (c *Curve) Completeness() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return float64(c.ValidCount()) / float64(len(c.samples))
}

// DepthAxis produces the uniform depth axis shared by a well's curves.
//
// # Description
//
// depth(i) = start + i*(end-start)/(n-1). For n == 1 the single depth is
// start; for n <= 0 the result is empty.
//
// # Inputs
//
//   - start: Top of the recorded interval.
//   - end: Bottom of the recorded interval.
//   - n: Number of samples.
//
// # Outputs
//
//   - []float64: Depth per sample index. Length n.
func DepthAxis(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	depths := make([]float64, n)
	if n == 1 {
		depths[0] = start
		return depths
	}
	step := (end - start) / float64(n-1)
	for i := range depths {
		depths[i] = start + float64(i)*step
	}
	return depths
}

// WindowIndices returns the index range of samples whose depth lies in
// [minDepth, maxDepth], inclusive on both ends.
//
// # Outputs
//
//   - lo, hi: First and last index inside the window.
//   - ok: False if no depth falls inside the window.
func WindowIndices(depths []float64, minDepth, maxDepth float64) (lo, hi int, ok bool) {
	lo = -1
	for i, d := range depths {
		if d < minDepth || d > maxDepth {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	if lo < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}
