// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import (
	"fmt"
	"math"
	"time"

	"github.com/lithoscope/lithoscope/pkg/curve"
	"github.com/lithoscope/lithoscope/pkg/stats"
)

// cm2ToMillidarcy converts intrinsic permeability from cm² to millidarcy.
const cm2ToMillidarcy = 1.013e9

// KozenyCarman computes k = (φ³/(1−φ)²) · (d²/180) in millidarcy.
//
// # Description
//
// grainSize is in millimeters and converted to centimeters inside the
// formula. Porosity at exactly 0 or 1 is physically degenerate here (no
// pore network / no matrix), so the open interval (0,1) gates the input;
// results outside (0, 1e6] mD are non-physical and nulled.
func KozenyCarman(phi []float64, grainSize float64) []float64 {
	dCm := grainSize / 10
	factor := dCm * dCm / 180 * cm2ToMillidarcy
	out := make([]float64, len(phi))
	for i, p := range phi {
		if math.IsNaN(p) || p <= 0 || p >= 1 {
			out[i] = math.NaN()
			continue
		}
		k := (p * p * p) / ((1 - p) * (1 - p)) * factor
		out[i] = screenPermeability(k)
	}
	return out
}

// Timur computes k = 0.136 · φ^4.4 / Swi² in millidarcy.
//
// # Description
//
// swi may be a per-sample series or nil, in which case the scalar default
// is used for every depth. Porosity and Swi are fractions, the same
// representation every other correlation here consumes.
func Timur(phi, swi []float64, swiDefault float64) ([]float64, error) {
	return swiCorrelation(phi, swi, swiDefault, func(p, s float64) float64 {
		return 0.136 * math.Pow(p, 4.4) / (s * s)
	})
}

// CoatesDumanoir computes k = c · φ^x / Swi^y in millidarcy.
func CoatesDumanoir(phi, swi []float64, swiDefault, c, x, y float64) ([]float64, error) {
	return swiCorrelation(phi, swi, swiDefault, func(p, s float64) float64 {
		return c * math.Pow(p, x) / math.Pow(s, y)
	})
}

// swiCorrelation shares the sample loop of the Swi-based correlations.
func swiCorrelation(phi, swi []float64, swiDefault float64, f func(p, s float64) float64) ([]float64, error) {
	if swi != nil && len(swi) != len(phi) {
		return nil, fmt.Errorf("%w: porosity has %d samples, swi has %d",
			ErrLengthMismatch, len(phi), len(swi))
	}
	out := make([]float64, len(phi))
	for i, p := range phi {
		s := swiDefault
		if swi != nil {
			s = swi[i]
		}
		if math.IsNaN(p) || math.IsNaN(s) || p <= 0 || p >= 1 || s <= 0 || s >= 1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = screenPermeability(f(p, s))
	}
	return out, nil
}

// screenPermeability nulls non-physical estimates: k <= 0 or k > 1e6 mD.
func screenPermeability(k float64) float64 {
	if math.IsNaN(k) || k <= 0 || k > permeabilityCeilingMD {
		return math.NaN()
	}
	return k
}

func computePermeability(well *curve.Well, p Parameters) (*Result, error) {
	phi, phiInputs, err := porositySeries(well, p)
	if err != nil {
		return nil, err
	}

	// An SWI curve overrides the scalar default when present.
	var swiSamples []float64
	inputs := phiInputs
	if swiCurve, ok := well.Curve("SWI"); ok {
		swiSamples = swiCurve.Samples()
		inputs = append(inputs, swiCurve)
	}

	var (
		values      []float64
		methodology string
	)
	switch p.PermeabilityMethod {
	case MethodKozenyCarman:
		values = KozenyCarman(phi, p.GrainSize)
		methodology = fmt.Sprintf("Kozeny-Carman: k = (phi^3/(1-phi)^2) * (d_cm^2/180) * 1.013e9 mD, d=%.3f mm", p.GrainSize)
	case MethodTimur:
		values, err = Timur(phi, swiSamples, p.SWI)
		methodology = fmt.Sprintf("Timur: k = 0.136 * phi^4.4 / Swi^2 mD, default Swi=%.2f", p.SWI)
	case MethodCoatesDumanoir:
		values, err = CoatesDumanoir(phi, swiSamples, p.SWI, p.CoatesC, p.CoatesX, p.CoatesY)
		methodology = fmt.Sprintf("Coates-Dumanoir: k = %.0f * phi^%.1f / Swi^%.1f mD", p.CoatesC, p.CoatesX, p.CoatesY)
	default:
		return nil, fmt.Errorf("%w: %q for permeability", ErrUnknownMethod, p.PermeabilityMethod)
	}
	if err != nil {
		return nil, err
	}

	completeness := validFraction(values)
	uncertainty, band := estimateUncertainty(values, p.PermeabilityMethod, completeness)

	return &Result{
		Type:        TypePermeability,
		Method:      p.PermeabilityMethod,
		Well:        well.Name(),
		Values:      values,
		Depths:      well.Depths(),
		Uncertainty: uncertainty,
		// Log-derived permeability is uncalibrated by construction, so
		// confidence is capped at medium regardless of completeness.
		Quality: deriveQuality(completeness, worstQuality(inputs...), band, true, p.PermeabilityMethod),
		// Geometric mean: permeability is log-normally distributed.
		Statistics:  stats.SummarizeGeometric(values),
		Methodology: methodology,
		Parameters:  p,
		Timestamp:   time.Now(),
	}, nil
}
