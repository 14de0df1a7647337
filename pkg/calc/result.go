// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import (
	"time"

	"github.com/lithoscope/lithoscope/pkg/stats"
)

// Result is a derived value series with its uncertainty, quality and
// statistics.
//
// # Ownership Model
//
// Results are immutable once produced: a new parameter edit yields a new
// Result object, never an in-place mutation. Consumers (renderers, reports,
// the cache) may share one Result freely across goroutines.
type Result struct {
	// Type and Method identify the calculation that produced the series.
	Type   Type   `json:"type"`
	Method string `json:"method"`

	// Well names the source well.
	Well string `json:"well"`

	// Values is the derived series; null samples are NaN.
	Values []float64 `json:"values"`

	// Depths is the well's uniform depth axis, index-aligned with Values.
	Depths []float64 `json:"depths"`

	// Uncertainty is the per-sample absolute uncertainty, index-aligned
	// with Values; null where Values is null.
	Uncertainty []float64 `json:"uncertainty"`

	// Quality describes the trustworthiness of the series.
	Quality QualityMetrics `json:"quality"`

	// Statistics summarizes the valid samples. Permeability uses the
	// geometric mean (log-normal distribution).
	Statistics stats.Summary `json:"statistics"`

	// Methodology is a human-readable description of the formula applied.
	Methodology string `json:"methodology"`

	// Parameters is the record the calculation ran with.
	Parameters Parameters `json:"parameters"`

	// Timestamp is when the calculation completed.
	Timestamp time.Time `json:"timestamp"`
}

// validFraction returns the non-null fraction of a series.
func validFraction(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if v == v { // not NaN
			n++
		}
	}
	return float64(n) / float64(len(values))
}
