// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lithoscope/lithoscope/pkg/curve"
)

// wellFile is the YAML shape of a raw curve dump.
//
// Samples may carry the file's null sentinel (-999.25 unless overridden);
// translation to the in-memory null happens once, at load.
type wellFile struct {
	Name       string      `yaml:"name"`
	DepthStart float64     `yaml:"depthStart"`
	DepthEnd   float64     `yaml:"depthEnd"`
	NullValue  *float64    `yaml:"nullValue"`
	Curves     []curveFile `yaml:"curves"`
}

type curveFile struct {
	Name    string    `yaml:"name"`
	Unit    string    `yaml:"unit"`
	Quality string    `yaml:"quality"`
	Samples []float64 `yaml:"samples"`
}

// loadWell reads a YAML well file and translates null sentinels.
func loadWell(path string) (*curve.Well, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read well file: %w", err)
	}
	var wf wellFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse well file %s: %w", path, err)
	}
	if wf.Name == "" {
		return nil, fmt.Errorf("well file %s: missing well name", path)
	}
	if len(wf.Curves) == 0 {
		return nil, fmt.Errorf("well file %s: no curves", path)
	}

	nullValue := curve.WireNull
	if wf.NullValue != nil {
		nullValue = *wf.NullValue
	}

	w := curve.NewWell(wf.Name, wf.DepthStart, wf.DepthEnd)
	for _, cf := range wf.Curves {
		quality, err := parseQuality(cf.Quality)
		if err != nil {
			return nil, fmt.Errorf("well %s curve %s: %w", wf.Name, cf.Name, err)
		}
		c := curve.FromRaw(cf.Name, cf.Unit, cf.Samples, nullValue, quality)
		if err := w.AddCurve(c); err != nil {
			return nil, fmt.Errorf("well %s curve %s: %w", wf.Name, cf.Name, err)
		}
	}
	return w, nil
}

// parseQuality maps the YAML quality string to a known flag. Empty means
// good; anything else unknown is rejected rather than silently ranking
// alongside good in confidence derivation.
func parseQuality(s string) (curve.Quality, error) {
	switch q := curve.Quality(s); q {
	case "":
		return curve.QualityGood, nil
	case curve.QualityGood, curve.QualityFair, curve.QualityPoor:
		return q, nil
	default:
		return "", fmt.Errorf("unknown curve quality %q (want good, fair or poor)", s)
	}
}

// loadWells loads every given path in order.
func loadWells(paths []string) ([]*curve.Well, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one --well file is required")
	}
	wells := make([]*curve.Well, 0, len(paths))
	for _, path := range paths {
		w, err := loadWell(path)
		if err != nil {
			return nil, err
		}
		wells = append(wells, w)
	}
	return wells, nil
}
