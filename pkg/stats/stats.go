// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package stats computes null-aware summary statistics for derived curves.
//
// Every calculator shares this summarizer. Null samples (NaN) are excluded
// before any aggregate is computed; Count/ValidCount expose how much data
// survived. Percentiles use gonum's empirical quantile over the sorted
// valid samples.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentile keys reported in every summary.
var percentilePoints = map[string]float64{
	"P10": 0.10,
	"P25": 0.25,
	"P50": 0.50,
	"P75": 0.75,
	"P90": 0.90,
}

// Summary holds the statistical description of a derived value series.
//
// For permeability the Mean field carries the geometric mean (log-normal
// distribution); use SummarizeGeometric for that case. This is a documented
// domain exception, not an oversight.
type Summary struct {
	Mean        float64            `json:"mean"`
	Median      float64            `json:"median"`
	StdDev      float64            `json:"stdDev"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Percentiles map[string]float64 `json:"percentiles"`
	Count       int                `json:"count"`
	ValidCount  int                `json:"validCount"`
}

// Summarize computes the arithmetic-mean summary of a value series.
//
// # Description
//
// Null samples (NaN) are skipped. With zero valid samples every aggregate
// is NaN and ValidCount is 0; callers should treat that as "no data", not
// an error.
//
// # Inputs
//
//   - values: The series to summarize. Not modified.
//
// # Outputs
//
//   - Summary: Aggregates over the valid samples.
func Summarize(values []float64) Summary {
	return summarize(values, false)
}

// SummarizeGeometric is Summarize with a geometric mean.
//
// Intended for log-normally distributed quantities (permeability). Only
// positive valid samples contribute to the geometric mean; the remaining
// aggregates are identical to Summarize.
func SummarizeGeometric(values []float64) Summary {
	return summarize(values, true)
}

func summarize(values []float64, geometric bool) Summary {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	s := Summary{
		Count:       len(values),
		ValidCount:  len(valid),
		Percentiles: make(map[string]float64, len(percentilePoints)),
	}

	if len(valid) == 0 {
		nan := math.NaN()
		s.Mean, s.Median, s.StdDev, s.Min, s.Max = nan, nan, nan, nan, nan
		for key := range percentilePoints {
			s.Percentiles[key] = nan
		}
		return s
	}

	sort.Float64s(valid)

	if geometric {
		s.Mean = geometricMean(valid)
	} else {
		s.Mean = stat.Mean(valid, nil)
	}
	s.StdDev = stdDev(valid)
	s.Min = valid[0]
	s.Max = valid[len(valid)-1]
	s.Median = stat.Quantile(0.5, stat.Empirical, valid, nil)
	for key, p := range percentilePoints {
		s.Percentiles[key] = stat.Quantile(p, stat.Empirical, valid, nil)
	}
	return s
}

// stdDev is the sample standard deviation; a single sample has zero spread
// rather than gonum's NaN.
func stdDev(sorted []float64) float64 {
	if len(sorted) < 2 {
		return 0
	}
	return stat.StdDev(sorted, nil)
}

// geometricMean averages in log space over the positive samples.
// Non-positive samples cannot contribute; if none are positive the result
// is NaN.
func geometricMean(sorted []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range sorted {
		if v > 0 {
			sum += math.Log(v)
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return math.Exp(sum / float64(n))
}
