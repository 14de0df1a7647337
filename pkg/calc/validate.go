// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import "fmt"

// Severity grades a validation finding.
type Severity string

const (
	// SeverityCritical findings block the calculation; the result would be
	// meaningless (e.g. an inverted gamma-ray index).
	SeverityCritical Severity = "critical"

	// SeverityMajor findings also block the calculation but indicate a
	// likely typo rather than an impossible configuration.
	SeverityMajor Severity = "major"

	// SeverityMinor findings are advisory; the calculation proceeds.
	SeverityMinor Severity = "minor"
)

// Finding is one field-level validation message.
//
// SuggestedFix is a UX contract, not optional metadata: it is rendered
// directly next to the offending parameter field.
type Finding struct {
	Field        string   `json:"field"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	SuggestedFix string   `json:"suggestedFix"`
}

// ValidationResult collects the findings for one parameter set.
//
// Errors (critical/major) block the calculation; Warnings (minor) do not.
type ValidationResult struct {
	IsValid  bool      `json:"isValid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

func (r *ValidationResult) addError(sev Severity, field, msg, fix string) {
	r.Errors = append(r.Errors, Finding{Field: field, Severity: sev, Message: msg, SuggestedFix: fix})
	r.IsValid = false
}

func (r *ValidationResult) addWarning(field, msg, fix string) {
	r.Warnings = append(r.Warnings, Finding{Field: field, Severity: SeverityMinor, Message: msg, SuggestedFix: fix})
}

// ValidateParameters checks the fields relevant to one calculation type.
//
// # Description
//
// Dispatches to the per-type validator. Findings carry human-readable
// messages and suggested fixes for direct display; blocking findings make
// IsValid false and cause Compute to fail with ErrInvalidParameters.
//
// # Inputs
//
//   - t: Calculation type.
//   - p: Fully-resolved parameter record.
//
// # Outputs
//
//   - ValidationResult: IsValid true when no critical/major findings exist.
func ValidateParameters(t Type, p Parameters) ValidationResult {
	switch t {
	case TypePorosity:
		return ValidatePorosityParameters(p)
	case TypeShaleVolume:
		return ValidateShaleParameters(p)
	case TypeSaturation:
		return ValidateSaturationParameters(p)
	case TypePermeability:
		return ValidatePermeabilityParameters(p)
	}
	r := ValidationResult{}
	r.addError(SeverityCritical, "type", fmt.Sprintf("unknown calculation type %q", t),
		"use one of: porosity, shale_volume, saturation, permeability")
	return r
}

// ValidatePorosityParameters checks matrix/fluid density and method.
func ValidatePorosityParameters(p Parameters) ValidationResult {
	r := ValidationResult{IsValid: true}

	switch p.PorosityMethod {
	case MethodDensity, MethodNeutron, MethodEffective, MethodTotal:
	default:
		r.addError(SeverityCritical, "porosityMethod",
			fmt.Sprintf("unsupported porosity method %q", p.PorosityMethod),
			"use one of: density, neutron, effective, total")
	}

	if p.MatrixDensity < 1.0 || p.MatrixDensity > 4.0 {
		r.addError(SeverityMajor, "matrixDensity",
			fmt.Sprintf("matrix density %.3f g/cc is outside the physical range [1.0, 4.0]", p.MatrixDensity),
			"sandstone 2.65, limestone 2.71, dolomite 2.87 g/cc")
	}
	if p.FluidDensity < 0.5 || p.FluidDensity > 1.5 {
		r.addError(SeverityMajor, "fluidDensity",
			fmt.Sprintf("fluid density %.3f g/cc is outside the plausible range [0.5, 1.5]", p.FluidDensity),
			"fresh mud filtrate 1.0, salt mud 1.1, oil-based mud 0.85 g/cc")
	}
	if r.IsValid && p.MatrixDensity <= p.FluidDensity {
		r.addError(SeverityCritical, "matrixDensity",
			"matrix density must exceed fluid density or the density-porosity transform is undefined",
			"set matrixDensity above fluidDensity (e.g. 2.65 vs 1.0)")
	}
	return r
}

// ValidateShaleParameters checks the gamma-ray baselines and method.
//
// grShale <= grClean is critical: the gamma-ray index would be undefined or
// inverted regardless of the other parameters.
func ValidateShaleParameters(p Parameters) ValidationResult {
	r := ValidationResult{IsValid: true}

	switch p.ShaleMethod {
	case MethodLinear, MethodLarionovTertiary, MethodLarionovPreTertiary, MethodClavier:
	default:
		r.addError(SeverityCritical, "shaleMethod",
			fmt.Sprintf("unsupported shale volume method %q", p.ShaleMethod),
			"use one of: linear, larionov_tertiary, larionov_pre_tertiary, clavier")
	}

	if p.GRClean < 0 || p.GRClean > 200 {
		r.addError(SeverityMajor, "grClean",
			fmt.Sprintf("clean-sand baseline %.1f gAPI is outside [0, 200]", p.GRClean),
			"pick the modal GR reading of the cleanest sand, typically 15-40 gAPI")
	}
	if p.GRShale < 50 || p.GRShale > 500 {
		r.addError(SeverityMajor, "grShale",
			fmt.Sprintf("shale baseline %.1f gAPI is outside [50, 500]", p.GRShale),
			"pick the modal GR reading of a clean shale, typically 90-150 gAPI")
	}
	if p.GRShale <= p.GRClean {
		r.addError(SeverityCritical, "grShale",
			fmt.Sprintf("shale baseline (%.1f) must exceed clean baseline (%.1f): the gamma-ray index is undefined or inverted otherwise", p.GRShale, p.GRClean),
			"increase grShale or decrease grClean until grShale > grClean")
	} else if p.GRShale-p.GRClean < 20 {
		r.addWarning("grShale",
			fmt.Sprintf("baseline separation of %.1f gAPI is narrow; Vsh will be very sensitive to GR noise", p.GRShale-p.GRClean),
			"verify both baselines against a histogram of the GR curve")
	}
	return r
}

// ValidateSaturationParameters checks the Archie constants.
func ValidateSaturationParameters(p Parameters) ValidationResult {
	r := ValidationResult{IsValid: true}

	if p.SaturationMethod != MethodArchie {
		r.addError(SeverityCritical, "saturationMethod",
			fmt.Sprintf("unsupported saturation method %q", p.SaturationMethod),
			"use archie")
	}
	if p.RW <= 0 {
		r.addError(SeverityCritical, "rw",
			fmt.Sprintf("formation water resistivity %.4f ohm·m must be positive", p.RW),
			"derive rw from a nearby water zone or water catalog, typically 0.01-1.0 ohm·m")
	}
	if p.A <= 0 {
		r.addError(SeverityCritical, "a",
			fmt.Sprintf("tortuosity factor %.3f must be positive", p.A),
			"use 1.0 for carbonates, 0.62 for unconsolidated sands (Humble)")
	}
	if p.M < 1.3 || p.M > 3.0 {
		r.addWarning("m",
			fmt.Sprintf("cementation exponent %.2f is outside the usual [1.3, 3.0] band", p.M),
			"2.0 fits most consolidated sandstones")
	}
	if p.N < 1.3 || p.N > 3.0 {
		r.addWarning("n",
			fmt.Sprintf("saturation exponent %.2f is outside the usual [1.3, 3.0] band", p.N),
			"2.0 fits most water-wet rocks")
	}
	return r
}

// ValidatePermeabilityParameters checks the correlation coefficients.
func ValidatePermeabilityParameters(p Parameters) ValidationResult {
	r := ValidationResult{IsValid: true}

	switch p.PermeabilityMethod {
	case MethodKozenyCarman, MethodTimur, MethodCoatesDumanoir:
	default:
		r.addError(SeverityCritical, "permeabilityMethod",
			fmt.Sprintf("unsupported permeability method %q", p.PermeabilityMethod),
			"use one of: kozeny_carman, timur, coates_dumanoir")
	}

	if p.PermeabilityMethod == MethodKozenyCarman && p.GrainSize <= 0 {
		r.addError(SeverityCritical, "grainSize",
			fmt.Sprintf("grain size %.4f mm must be positive for Kozeny-Carman", p.GrainSize),
			"fine sand 0.125-0.25 mm, medium sand 0.25-0.5 mm")
	}
	if p.SWI <= 0 || p.SWI >= 1 {
		r.addError(SeverityCritical, "swi",
			fmt.Sprintf("irreducible water saturation %.3f must lie strictly inside (0, 1)", p.SWI),
			"typical clastic reservoirs: 0.15-0.40")
	}
	if p.PermeabilityMethod == MethodCoatesDumanoir {
		if p.CoatesC <= 0 {
			r.addError(SeverityMajor, "c",
				fmt.Sprintf("Coates-Dumanoir coefficient %.1f must be positive", p.CoatesC),
				"the published default is 10000")
		}
		if p.CoatesX <= 0 || p.CoatesY <= 0 {
			r.addError(SeverityMajor, "x",
				"Coates-Dumanoir exponents must be positive",
				"published defaults: x=4.0, y=2.0")
		}
	}
	return r
}
