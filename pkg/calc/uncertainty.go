// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import "math"

// completenessWidening is applied to the uncertainty band when data
// completeness drops below sparseDataThreshold.
const (
	completenessWidening  = 1.5
	sparseDataThreshold   = 0.8
	permeabilityCeilingMD = 1e6
)

// uncertaintyBand returns the method's relative uncertainty [lo, hi].
//
// Porosity: density ±2-3%, neutron/effective/total ±3-5%. Shale volume
// ±4-6%. Saturation ±5-10%. Permeability is large and asymmetric by
// construction: Kozeny-Carman ±50-70%, Timur/Coates-Dumanoir ±30-50%.
func uncertaintyBand(method string) [2]float64 {
	switch method {
	case MethodDensity:
		return [2]float64{0.02, 0.03}
	case MethodNeutron, MethodEffective, MethodTotal:
		return [2]float64{0.03, 0.05}
	case MethodLinear, MethodLarionovTertiary, MethodLarionovPreTertiary, MethodClavier:
		return [2]float64{0.04, 0.06}
	case MethodArchie:
		return [2]float64{0.05, 0.10}
	case MethodKozenyCarman:
		return [2]float64{0.50, 0.70}
	case MethodTimur, MethodCoatesDumanoir:
		return [2]float64{0.30, 0.50}
	}
	return [2]float64{0.05, 0.10}
}

// estimateUncertainty produces the per-sample absolute uncertainty series.
//
// # Description
//
// Each valid sample gets |value| * mid-band relative uncertainty; null
// samples propagate null. When completeness is below sparseDataThreshold
// the band widens by completenessWidening, reflecting the weaker
// statistical support.
//
// # Outputs
//
//   - []float64: Absolute uncertainty per sample.
//   - [2]float64: The (possibly widened) relative band, for QualityMetrics.
func estimateUncertainty(values []float64, method string, completeness float64) ([]float64, [2]float64) {
	band := uncertaintyBand(method)
	if completeness < sparseDataThreshold {
		band[0] *= completenessWidening
		band[1] *= completenessWidening
	}
	rel := (band[0] + band[1]) / 2

	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Abs(v) * rel
	}
	return out, band
}
