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

// DensityPorosity computes φD = (ρma − ρb) / (ρma − ρf).
//
// # Description
//
// Bulk density readings outside [1.0, 4.0] g/cc, and results outside [0,1],
// map to the null sample. These are surfaced as missing rather than
// clamped: silently coercing to 0 or 1 would hide bad hole conditions from
// the interpreter. Note this calculator screens its *inputs* while the
// shale calculator clamps *outputs*; the difference is intentional per
// formula.
//
// # Inputs
//
//   - rhob: Bulk density samples in g/cc. Null samples propagate.
//   - matrixDensity, fluidDensity: Fully-resolved parameters in g/cc.
//
// # Outputs
//
//   - []float64: Porosity fraction per sample, null where undefined.
func DensityPorosity(rhob []float64, matrixDensity, fluidDensity float64) []float64 {
	out := make([]float64, len(rhob))
	denom := matrixDensity - fluidDensity
	for i, rb := range rhob {
		if math.IsNaN(rb) || rb < 1.0 || rb > 4.0 {
			out[i] = math.NaN()
			continue
		}
		phi := (matrixDensity - rb) / denom
		if phi < 0 || phi > 1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = phi
	}
	return out
}

// NeutronPorosity converts NPHI percent readings to fractions: φN = NPHI/100.
// Readings outside [0, 100] map to null.
func NeutronPorosity(nphi []float64) []float64 {
	out := make([]float64, len(nphi))
	for i, v := range nphi {
		if math.IsNaN(v) || v < 0 || v > 100 {
			out[i] = math.NaN()
			continue
		}
		out[i] = v / 100
	}
	return out
}

// EffectivePorosity averages density and neutron porosity per sample.
//
// # Description
//
// φE = (φD + φN) / 2. A null on either side propagates null. A length
// mismatch is a caller contract violation and returns ErrLengthMismatch;
// there is no meaningful partial result.
func EffectivePorosity(phiD, phiN []float64) ([]float64, error) {
	if len(phiD) != len(phiN) {
		return nil, fmt.Errorf("%w: density has %d samples, neutron has %d",
			ErrLengthMismatch, len(phiD), len(phiN))
	}
	out := make([]float64, len(phiD))
	for i := range phiD {
		if math.IsNaN(phiD[i]) || math.IsNaN(phiN[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (phiD[i] + phiN[i]) / 2
	}
	return out, nil
}

// computePorosity resolves the configured method against the well's curves
// and assembles the full Result.
func computePorosity(well *curve.Well, p Parameters) (*Result, error) {
	rhob, hasRhob := well.Curve("RHOB")
	nphi, hasNphi := well.Curve("NPHI")

	method := p.PorosityMethod
	// Total porosity is an alias: effective when both inputs exist,
	// falling back to neutron when density data is unavailable.
	resolved := method
	if method == MethodTotal {
		switch {
		case hasRhob && hasNphi:
			resolved = MethodEffective
		case hasNphi:
			resolved = MethodNeutron
		case hasRhob:
			resolved = MethodDensity
		default:
			return nil, fmt.Errorf("%w: total porosity needs RHOB or NPHI on well %s",
				ErrMissingCurve, well.Name())
		}
	}

	var (
		values      []float64
		methodology string
		inputs      []*curve.Curve
		err         error
	)
	switch resolved {
	case MethodDensity:
		if !hasRhob {
			return nil, fmt.Errorf("%w: RHOB on well %s", ErrMissingCurve, well.Name())
		}
		values = DensityPorosity(rhob.Samples(), p.MatrixDensity, p.FluidDensity)
		methodology = fmt.Sprintf("Density porosity: phiD = (rho_ma - rho_b)/(rho_ma - rho_f), rho_ma=%.2f, rho_f=%.2f g/cc", p.MatrixDensity, p.FluidDensity)
		inputs = []*curve.Curve{rhob}
	case MethodNeutron:
		if !hasNphi {
			return nil, fmt.Errorf("%w: NPHI on well %s", ErrMissingCurve, well.Name())
		}
		values = NeutronPorosity(nphi.Samples())
		methodology = "Neutron porosity: phiN = NPHI/100"
		inputs = []*curve.Curve{nphi}
	case MethodEffective:
		if !hasRhob || !hasNphi {
			return nil, fmt.Errorf("%w: effective porosity needs RHOB and NPHI on well %s",
				ErrMissingCurve, well.Name())
		}
		phiD := DensityPorosity(rhob.Samples(), p.MatrixDensity, p.FluidDensity)
		phiN := NeutronPorosity(nphi.Samples())
		values, err = EffectivePorosity(phiD, phiN)
		if err != nil {
			return nil, err
		}
		methodology = "Effective porosity: phiE = (phiD + phiN)/2"
		inputs = []*curve.Curve{rhob, nphi}
	default:
		return nil, fmt.Errorf("%w: %q for porosity", ErrUnknownMethod, resolved)
	}

	completeness := validFraction(values)
	uncertainty, band := estimateUncertainty(values, resolved, completeness)

	return &Result{
		Type:        TypePorosity,
		Method:      method,
		Well:        well.Name(),
		Values:      values,
		Depths:      well.Depths(),
		Uncertainty: uncertainty,
		Quality:     deriveQuality(completeness, worstQuality(inputs...), band, false, resolved),
		Statistics:  stats.Summarize(values),
		Methodology: methodology,
		Parameters:  p,
		Timestamp:   time.Now(),
	}, nil
}
