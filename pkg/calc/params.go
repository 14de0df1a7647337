// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

// Type identifies one of the supported calculation families.
type Type string

const (
	TypePorosity     Type = "porosity"
	TypeShaleVolume  Type = "shale_volume"
	TypeSaturation   Type = "saturation"
	TypePermeability Type = "permeability"
)

// AllTypes returns every supported calculation type in canonical order.
func AllTypes() []Type {
	return []Type{TypePorosity, TypeShaleVolume, TypeSaturation, TypePermeability}
}

// Valid reports whether t names a supported calculation type.
func (t Type) Valid() bool {
	switch t {
	case TypePorosity, TypeShaleVolume, TypeSaturation, TypePermeability:
		return true
	}
	return false
}

// Calculation methods per type.
const (
	MethodDensity   = "density"
	MethodNeutron   = "neutron"
	MethodEffective = "effective"
	MethodTotal     = "total"

	MethodLinear              = "linear"
	MethodLarionovTertiary    = "larionov_tertiary"
	MethodLarionovPreTertiary = "larionov_pre_tertiary"
	MethodClavier             = "clavier"

	MethodArchie = "archie"

	MethodKozenyCarman   = "kozeny_carman"
	MethodTimur          = "timur"
	MethodCoatesDumanoir = "coates_dumanoir"
)

// Parameters is the flat configuration record shared by all calculators.
//
// # Description
//
// Only the fields relevant to a given calculation type participate in
// staleness comparison; WatchedFields lists them per type. Defaults are
// merged once at the call boundary: start from DefaultParameters() and
// overlay user edits (e.g. by YAML-unmarshalling over it). Calculators
// assume a fully-resolved record and never consult hidden instance state.
type Parameters struct {
	// Porosity
	MatrixDensity  float64 `yaml:"matrixDensity"`  // g/cc, sandstone default 2.65
	FluidDensity   float64 `yaml:"fluidDensity"`   // g/cc, fresh mud filtrate 1.0
	PorosityMethod string  `yaml:"porosityMethod"` // density|neutron|effective|total

	// Shale volume
	GRClean     float64 `yaml:"grClean"`     // gAPI, clean-sand baseline
	GRShale     float64 `yaml:"grShale"`     // gAPI, shale baseline
	ShaleMethod string  `yaml:"shaleMethod"` // linear|larionov_tertiary|larionov_pre_tertiary|clavier

	// Water saturation (Archie)
	RW               float64 `yaml:"rw"` // ohm·m, formation water resistivity
	A                float64 `yaml:"a"`  // tortuosity factor
	M                float64 `yaml:"m"`  // cementation exponent
	N                float64 `yaml:"n"`  // saturation exponent
	SaturationMethod string  `yaml:"saturationMethod"`

	// Permeability
	GrainSize          float64 `yaml:"grainSize"` // mm, for Kozeny-Carman
	SWI                float64 `yaml:"swi"`       // fraction, irreducible water saturation default
	CoatesC            float64 `yaml:"c"`         // Coates-Dumanoir coefficient
	CoatesX            float64 `yaml:"x"`         // Coates-Dumanoir porosity exponent
	CoatesY            float64 `yaml:"y"`         // Coates-Dumanoir saturation exponent
	PermeabilityMethod string  `yaml:"permeabilityMethod"`
}

// DefaultParameters returns the fully-resolved default record.
//
// Values are the conventional sandstone/fresh-water defaults carried by the
// individual correlations.
func DefaultParameters() Parameters {
	return Parameters{
		MatrixDensity:  2.65,
		FluidDensity:   1.0,
		PorosityMethod: MethodDensity,

		GRClean:     30,
		GRShale:     120,
		ShaleMethod: MethodLarionovTertiary,

		RW:               0.05,
		A:                1.0,
		M:                2.0,
		N:                2.0,
		SaturationMethod: MethodArchie,

		GrainSize:          0.25,
		SWI:                0.25,
		CoatesC:            10000,
		CoatesX:            4.0,
		CoatesY:            2.0,
		PermeabilityMethod: MethodTimur,
	}
}

// Method returns the configured method for the given calculation type.
func (p Parameters) Method(t Type) string {
	switch t {
	case TypePorosity:
		return p.PorosityMethod
	case TypeShaleVolume:
		return p.ShaleMethod
	case TypeSaturation:
		return p.SaturationMethod
	case TypePermeability:
		return p.PermeabilityMethod
	}
	return ""
}

// WatchedFields lists the parameter fields that make results of the given
// type stale when edited. The change detector compares exactly these.
func WatchedFields(t Type) []string {
	switch t {
	case TypePorosity:
		return []string{"matrixDensity", "fluidDensity", "porosityMethod"}
	case TypeShaleVolume:
		return []string{"grClean", "grShale", "shaleMethod"}
	case TypeSaturation:
		return []string{"rw", "a", "m", "n", "saturationMethod"}
	case TypePermeability:
		return []string{"grainSize", "swi", "c", "x", "y", "permeabilityMethod"}
	}
	return nil
}

// Field returns the value of a named parameter field.
//
// Names match the yaml tags used in configuration files. The second return
// is false for unrecognized names.
func (p Parameters) Field(name string) (any, bool) {
	switch name {
	case "matrixDensity":
		return p.MatrixDensity, true
	case "fluidDensity":
		return p.FluidDensity, true
	case "porosityMethod":
		return p.PorosityMethod, true
	case "grClean":
		return p.GRClean, true
	case "grShale":
		return p.GRShale, true
	case "shaleMethod":
		return p.ShaleMethod, true
	case "rw":
		return p.RW, true
	case "a":
		return p.A, true
	case "m":
		return p.M, true
	case "n":
		return p.N, true
	case "saturationMethod":
		return p.SaturationMethod, true
	case "grainSize":
		return p.GrainSize, true
	case "swi":
		return p.SWI, true
	case "c":
		return p.CoatesC, true
	case "x":
		return p.CoatesX, true
	case "y":
		return p.CoatesY, true
	case "permeabilityMethod":
		return p.PermeabilityMethod, true
	}
	return nil, false
}
