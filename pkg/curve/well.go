// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package curve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Sentinel errors for well construction.
var (
	// ErrDuplicateCurve is returned when adding a curve whose mnemonic
	// already exists on the well.
	ErrDuplicateCurve = errors.New("duplicate curve mnemonic")

	// ErrCurveLengthMismatch is returned when a curve's sample count does
	// not match the well's established depth axis.
	ErrCurveLengthMismatch = errors.New("curve length does not match well depth axis")
)

// Well groups the curves recorded over one depth interval.
//
// All curves on a well share one uniform depth axis (see DepthAxis); the
// axis length is fixed by the first curve added. Mnemonic lookup is
// case-insensitive.
//
// # Thread Safety
//
// Well is not safe for concurrent mutation. The intended lifecycle is
// build-then-read: add curves during ingestion, then treat as read-only.
type Well struct {
	name       string
	depthStart float64
	depthEnd   float64
	curves     map[string]*Curve
	order      []string
}

// NewWell creates an empty well over the given depth interval.
func NewWell(name string, depthStart, depthEnd float64) *Well {
	return &Well{
		name:       name,
		depthStart: depthStart,
		depthEnd:   depthEnd,
		curves:     make(map[string]*Curve),
	}
}

// Name returns the well identifier.
func (w *Well) Name() string { return w.name }

// DepthRange returns the recorded depth interval.
func (w *Well) DepthRange() (start, end float64) {
	return w.depthStart, w.depthEnd
}

// AddCurve attaches a curve to the well.
//
// # Description
//
// The first curve fixes the well's sample count; later curves must match it
// exactly (one shared depth axis per well).
//
// # Outputs
//
//   - error: ErrDuplicateCurve or ErrCurveLengthMismatch on contract
//     violation, nil otherwise.
func (w *Well) AddCurve(c *Curve) error {
	key := strings.ToUpper(c.Name())
	if _, exists := w.curves[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCurve, c.Name())
	}
	if len(w.order) > 0 && c.Len() != w.SampleCount() {
		return fmt.Errorf("%w: %s has %d samples, well has %d",
			ErrCurveLengthMismatch, c.Name(), c.Len(), w.SampleCount())
	}
	w.curves[key] = c
	w.order = append(w.order, key)
	return nil
}

// Curve looks up a curve by mnemonic, case-insensitively.
func (w *Well) Curve(name string) (*Curve, bool) {
	c, ok := w.curves[strings.ToUpper(name)]
	return c, ok
}

// Curves returns the well's curves in insertion order.
func (w *Well) Curves() []*Curve {
	out := make([]*Curve, 0, len(w.order))
	for _, key := range w.order {
		out = append(out, w.curves[key])
	}
	return out
}

// SampleCount returns the shared depth-axis length, or 0 for an empty well.
func (w *Well) SampleCount() int {
	if len(w.order) == 0 {
		return 0
	}
	return w.curves[w.order[0]].Len()
}

// Depths materializes the well's uniform depth axis.
func (w *Well) Depths() []float64 {
	return DepthAxis(w.depthStart, w.depthEnd, w.SampleCount())
}

// Fingerprint returns a stable digest over the well's name and every
// curve's fingerprint, independent of curve insertion order.
func (w *Well) Fingerprint() string {
	prints := make([]string, 0, len(w.order))
	for _, key := range w.order {
		prints = append(prints, w.curves[key].Fingerprint())
	}
	sort.Strings(prints)

	h := xxhash.New()
	_, _ = h.WriteString(w.name)
	for _, p := range prints {
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(p)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
