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

// GammaRayIndex computes IGR = clamp01((GR − grClean)/(grShale − grClean)).
//
// GR readings outside [0, 500] gAPI map to null before clamping; the clamp
// applies to the index, never to the raw gamma-ray value.
func GammaRayIndex(gr []float64, grClean, grShale float64) []float64 {
	out := make([]float64, len(gr))
	denom := grShale - grClean
	for i, v := range gr {
		if math.IsNaN(v) || v < 0 || v > 500 {
			out[i] = math.NaN()
			continue
		}
		out[i] = clamp01((v - grClean) / denom)
	}
	return out
}

// ShaleVolume applies the named non-linear response to a gamma-ray index
// series.
//
// # Description
//
// All methods clamp their *output* to [0,1] after the formula; the raw GR
// is never clamped (cf. DensityPorosity, which screens its inputs and
// clamps nothing). Clavier's radicand can go negative for IGR
// close to 1 with float noise; those samples become null, never a NaN leak
// from math.Sqrt.
//
// # Inputs
//
//   - igr: Gamma-ray index series from GammaRayIndex.
//   - method: One of linear, larionov_tertiary, larionov_pre_tertiary,
//     clavier.
//
// # Outputs
//
//   - []float64: Shale volume fraction per sample.
//   - error: ErrUnknownMethod for an unrecognized method.
func ShaleVolume(igr []float64, method string) ([]float64, error) {
	var f func(float64) float64
	switch method {
	case MethodLinear:
		f = func(i float64) float64 { return i }
	case MethodLarionovTertiary:
		f = func(i float64) float64 { return 0.083 * (math.Pow(2, 3.7*i) - 1) }
	case MethodLarionovPreTertiary:
		f = func(i float64) float64 { return 0.33 * (math.Pow(2, 2*i) - 1) }
	case MethodClavier:
		f = func(i float64) float64 {
			radicand := 3.38 - (i+0.7)*(i+0.7)
			if radicand < 0 {
				return math.NaN()
			}
			return 1.7 - math.Sqrt(radicand)
		}
	default:
		return nil, fmt.Errorf("%w: %q for shale volume", ErrUnknownMethod, method)
	}

	out := make([]float64, len(igr))
	for i, v := range igr {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		vsh := f(v)
		if math.IsNaN(vsh) {
			out[i] = math.NaN()
			continue
		}
		out[i] = clamp01(vsh)
	}
	return out, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func computeShaleVolume(well *curve.Well, p Parameters) (*Result, error) {
	gr, ok := well.Curve("GR")
	if !ok {
		return nil, fmt.Errorf("%w: GR on well %s", ErrMissingCurve, well.Name())
	}

	igr := GammaRayIndex(gr.Samples(), p.GRClean, p.GRShale)
	values, err := ShaleVolume(igr, p.ShaleMethod)
	if err != nil {
		return nil, err
	}

	completeness := validFraction(values)
	uncertainty, band := estimateUncertainty(values, p.ShaleMethod, completeness)

	return &Result{
		Type:        TypeShaleVolume,
		Method:      p.ShaleMethod,
		Well:        well.Name(),
		Values:      values,
		Depths:      well.Depths(),
		Uncertainty: uncertainty,
		Quality:     deriveQuality(completeness, gr.Quality(), band, false, p.ShaleMethod),
		Statistics:  stats.Summarize(values),
		Methodology: fmt.Sprintf("Shale volume (%s): IGR = clamp01((GR - %.1f)/(%.1f - %.1f))", p.ShaleMethod, p.GRClean, p.GRShale, p.GRClean),
		Parameters:  p,
		Timestamp:   time.Now(),
	}, nil
}
