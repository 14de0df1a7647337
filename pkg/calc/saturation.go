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

// ArchieSaturation computes Sw = ((a·Rw)/(φ^m · Rt))^(1/n) per sample.
//
// # Description
//
// Non-positive resistivity and degenerate porosity (null or <= 0) cannot
// support the formula; those samples degrade to null. Saturations outside
// [0,1] after the formula are likewise nulled rather than clamped: an
// Archie Sw above 1 means the inputs are inconsistent, not that the zone is
// 100% wet.
//
// # Inputs
//
//   - rt: Deep resistivity samples in ohm·m.
//   - phi: Porosity fraction samples (same depth axis).
//   - rw, a, m, n: Fully-resolved Archie constants.
//
// # Outputs
//
//   - []float64: Water saturation fraction per sample.
//   - error: ErrLengthMismatch when rt and phi differ in length.
func ArchieSaturation(rt, phi []float64, rw, a, m, n float64) ([]float64, error) {
	if len(rt) != len(phi) {
		return nil, fmt.Errorf("%w: resistivity has %d samples, porosity has %d",
			ErrLengthMismatch, len(rt), len(phi))
	}
	out := make([]float64, len(rt))
	for i := range rt {
		r, p := rt[i], phi[i]
		if math.IsNaN(r) || math.IsNaN(p) || r <= 0 || p <= 0 {
			out[i] = math.NaN()
			continue
		}
		sw := math.Pow((a*rw)/(math.Pow(p, m)*r), 1/n)
		if math.IsNaN(sw) || sw < 0 || sw > 1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sw
	}
	return out, nil
}

func computeSaturation(well *curve.Well, p Parameters) (*Result, error) {
	if p.SaturationMethod != MethodArchie {
		return nil, fmt.Errorf("%w: %q for saturation", ErrUnknownMethod, p.SaturationMethod)
	}
	rt, ok := well.Curve("RT")
	if !ok {
		return nil, fmt.Errorf("%w: RT on well %s", ErrMissingCurve, well.Name())
	}

	phi, phiInputs, err := porositySeries(well, p)
	if err != nil {
		return nil, err
	}

	values, err := ArchieSaturation(rt.Samples(), phi, p.RW, p.A, p.M, p.N)
	if err != nil {
		return nil, err
	}

	completeness := validFraction(values)
	uncertainty, band := estimateUncertainty(values, MethodArchie, completeness)
	inputs := append([]*curve.Curve{rt}, phiInputs...)

	return &Result{
		Type:        TypeSaturation,
		Method:      MethodArchie,
		Well:        well.Name(),
		Values:      values,
		Depths:      well.Depths(),
		Uncertainty: uncertainty,
		Quality:     deriveQuality(completeness, worstQuality(inputs...), band, false, MethodArchie),
		Statistics:  stats.Summarize(values),
		Methodology: fmt.Sprintf("Archie: Sw = ((a*Rw)/(phi^m * Rt))^(1/n), a=%.2f, Rw=%.3f, m=%.2f, n=%.2f", p.A, p.RW, p.M, p.N),
		Parameters:  p,
		Timestamp:   time.Now(),
	}, nil
}

// porositySeries derives the porosity input shared by the saturation and
// permeability calculators: effective when RHOB and NPHI both exist,
// neutron when only NPHI, density when only RHOB.
func porositySeries(well *curve.Well, p Parameters) ([]float64, []*curve.Curve, error) {
	rhob, hasRhob := well.Curve("RHOB")
	nphi, hasNphi := well.Curve("NPHI")

	switch {
	case hasRhob && hasNphi:
		phiD := DensityPorosity(rhob.Samples(), p.MatrixDensity, p.FluidDensity)
		phiN := NeutronPorosity(nphi.Samples())
		phi, err := EffectivePorosity(phiD, phiN)
		if err != nil {
			return nil, nil, err
		}
		return phi, []*curve.Curve{rhob, nphi}, nil
	case hasNphi:
		return NeutronPorosity(nphi.Samples()), []*curve.Curve{nphi}, nil
	case hasRhob:
		return DensityPorosity(rhob.Samples(), p.MatrixDensity, p.FluidDensity), []*curve.Curve{rhob}, nil
	}
	return nil, nil, fmt.Errorf("%w: porosity input (RHOB or NPHI) on well %s",
		ErrMissingCurve, well.Name())
}
