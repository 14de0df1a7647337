// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import "github.com/lithoscope/lithoscope/pkg/curve"

// ConfidenceLevel grades how much a derived curve should be trusted.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// QualityMetrics describes the trustworthiness of a calculation result.
//
// Derived deterministically from data completeness, input curve quality and
// the method's uncertainty band. Never user-set.
type QualityMetrics struct {
	// DataCompleteness is the valid-output fraction in [0,1].
	DataCompleteness float64 `json:"dataCompleteness"`

	// UncertaintyRange is the [lo, hi] relative uncertainty band of the
	// method, after any completeness widening.
	UncertaintyRange [2]float64 `json:"uncertaintyRange"`

	// ConfidenceLevel summarizes completeness and curve quality.
	ConfidenceLevel ConfidenceLevel `json:"confidenceLevel"`

	// EnvironmentalCorrections lists the corrections assumed to have been
	// applied upstream for the chosen method.
	EnvironmentalCorrections []string `json:"environmentalCorrections"`
}

// environmentalCorrections returns the fixed correction list per method.
func environmentalCorrections(method string) []string {
	switch method {
	case MethodDensity:
		return []string{"borehole rugosity", "mud cake"}
	case MethodNeutron:
		return []string{"lithology", "clay-bound water", "borehole size"}
	case MethodEffective, MethodTotal:
		return []string{"lithology", "borehole rugosity", "mud cake"}
	case MethodLinear, MethodLarionovTertiary, MethodLarionovPreTertiary, MethodClavier:
		return []string{"borehole size", "casing", "potassium mud"}
	case MethodArchie:
		return []string{"invasion", "temperature", "borehole fluid"}
	case MethodKozenyCarman, MethodTimur, MethodCoatesDumanoir:
		return []string{"none (uncalibrated log-derived estimate)"}
	}
	return nil
}

// deriveQuality builds the quality metrics for a result.
//
// # Description
//
// Confidence starts at high for completeness >= 0.9, medium >= 0.7, low
// below. A poor input curve steps confidence down one level. capMedium
// caps the result at medium; log-derived permeability is uncalibrated by
// construction and must never report high confidence.
func deriveQuality(completeness float64, worst curve.Quality, band [2]float64, capMedium bool, method string) QualityMetrics {
	level := ConfidenceLow
	switch {
	case completeness >= 0.9:
		level = ConfidenceHigh
	case completeness >= 0.7:
		level = ConfidenceMedium
	}

	if worst == curve.QualityPoor {
		level = stepDown(level)
	}
	if capMedium && level == ConfidenceHigh {
		level = ConfidenceMedium
	}

	return QualityMetrics{
		DataCompleteness:         completeness,
		UncertaintyRange:         band,
		ConfidenceLevel:          level,
		EnvironmentalCorrections: environmentalCorrections(method),
	}
}

func stepDown(level ConfidenceLevel) ConfidenceLevel {
	switch level {
	case ConfidenceHigh:
		return ConfidenceMedium
	case ConfidenceMedium:
		return ConfidenceLow
	}
	return ConfidenceLow
}

// worstQuality returns the weakest quality flag among the input curves.
func worstQuality(curves ...*curve.Curve) curve.Quality {
	worst := curve.QualityGood
	rank := map[curve.Quality]int{curve.QualityGood: 0, curve.QualityFair: 1, curve.QualityPoor: 2}
	for _, c := range curves {
		if c == nil {
			continue
		}
		if rank[c.Quality()] > rank[worst] {
			worst = c.Quality()
		}
	}
	return worst
}
