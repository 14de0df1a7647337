// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package curve

import (
	"math"
	"testing"
)

func TestFromRaw(t *testing.T) {
	t.Run("translates wire sentinel to null", func(t *testing.T) {
		c := FromRaw("GR", "gAPI", []float64{45, WireNull, 90}, WireNull, QualityGood)
		if !IsNull(c.At(1)) {
			t.Errorf("At(1) = %v, want null", c.At(1))
		}
		if c.At(0) != 45 || c.At(2) != 90 {
			t.Errorf("valid samples corrupted: %v", c.Samples())
		}
	})

	t.Run("normalizes non-finite inputs", func(t *testing.T) {
		c := FromRaw("RHOB", "g/cc", []float64{math.Inf(1), math.NaN(), 2.5}, WireNull, QualityGood)
		if !IsNull(c.At(0)) || !IsNull(c.At(1)) {
			t.Errorf("non-finite inputs not nulled: %v", c.Samples())
		}
	})

	t.Run("does not retain caller slice", func(t *testing.T) {
		raw := []float64{1, 2, 3}
		c := FromRaw("X", "", raw, WireNull, QualityGood)
		raw[0] = 99
		if c.At(0) != 1 {
			t.Errorf("At(0) = %v after caller mutation, want 1", c.At(0))
		}
	})

	t.Run("empty quality defaults to good", func(t *testing.T) {
		c := FromRaw("GR", "gAPI", nil, WireNull, "")
		if c.Quality() != QualityGood {
			t.Errorf("quality = %q, want good", c.Quality())
		}
	})
}

func TestCompleteness(t *testing.T) {
	c := FromRaw("GR", "gAPI", []float64{10, WireNull, 30, WireNull}, WireNull, QualityGood)
	if got := c.ValidCount(); got != 2 {
		t.Errorf("ValidCount = %d, want 2", got)
	}
	if got := c.Completeness(); got != 0.5 {
		t.Errorf("Completeness = %v, want 0.5", got)
	}

	empty := New("E", "", nil, QualityGood)
	if got := empty.Completeness(); got != 0 {
		t.Errorf("empty completeness = %v, want 0", got)
	}
}

func TestDepthAxis(t *testing.T) {
	t.Run("uniform interpolation over range", func(t *testing.T) {
		depths := DepthAxis(1000, 1004, 5)
		want := []float64{1000, 1001, 1002, 1003, 1004}
		for i, d := range want {
			if depths[i] != d {
				t.Errorf("depth(%d) = %v, want %v", i, depths[i], d)
			}
		}
	})

	t.Run("single sample sits at start", func(t *testing.T) {
		depths := DepthAxis(500, 600, 1)
		if len(depths) != 1 || depths[0] != 500 {
			t.Errorf("depths = %v, want [500]", depths)
		}
	})

	t.Run("non-positive count is empty", func(t *testing.T) {
		if depths := DepthAxis(0, 100, 0); depths != nil {
			t.Errorf("depths = %v, want nil", depths)
		}
	})
}

func TestWindowIndices(t *testing.T) {
	depths := DepthAxis(100, 104, 5)

	t.Run("inclusive on both ends", func(t *testing.T) {
		lo, hi, ok := WindowIndices(depths, 101, 103)
		if !ok || lo != 1 || hi != 3 {
			t.Errorf("window = (%d,%d,%v), want (1,3,true)", lo, hi, ok)
		}
	})

	t.Run("no overlap", func(t *testing.T) {
		if _, _, ok := WindowIndices(depths, 200, 300); ok {
			t.Error("expected no window for disjoint range")
		}
	})
}

func TestFingerprint(t *testing.T) {
	t.Run("stable for equal curves", func(t *testing.T) {
		a := FromRaw("GR", "gAPI", []float64{1, WireNull, 3}, WireNull, QualityGood)
		b := FromRaw("GR", "gAPI", []float64{1, WireNull, 3}, WireNull, QualityGood)
		if a.Fingerprint() != b.Fingerprint() {
			t.Errorf("fingerprints differ: %s vs %s", a.Fingerprint(), b.Fingerprint())
		}
	})

	t.Run("changes with a single sample edit", func(t *testing.T) {
		a := New("GR", "gAPI", []float64{1, 2, 3}, QualityGood)
		b := New("GR", "gAPI", []float64{1, 2, 3.0001}, QualityGood)
		if a.Fingerprint() == b.Fingerprint() {
			t.Error("fingerprint did not change with sample edit")
		}
	})

	t.Run("changes with mnemonic", func(t *testing.T) {
		a := New("GR", "gAPI", []float64{1}, QualityGood)
		b := New("SGR", "gAPI", []float64{1}, QualityGood)
		if a.Fingerprint() == b.Fingerprint() {
			t.Error("fingerprint did not change with name")
		}
	})
}

func TestWell(t *testing.T) {
	t.Run("case-insensitive lookup", func(t *testing.T) {
		w := NewWell("W-1", 1000, 1100)
		if err := w.AddCurve(New("GR", "gAPI", []float64{1, 2, 3}, QualityGood)); err != nil {
			t.Fatalf("AddCurve: %v", err)
		}
		if _, ok := w.Curve("gr"); !ok {
			t.Error("lowercase lookup failed")
		}
	})

	t.Run("rejects duplicate mnemonic", func(t *testing.T) {
		w := NewWell("W-1", 0, 10)
		_ = w.AddCurve(New("GR", "gAPI", []float64{1}, QualityGood))
		err := w.AddCurve(New("gr", "gAPI", []float64{2}, QualityGood))
		if err == nil {
			t.Fatal("expected duplicate error")
		}
	})

	t.Run("rejects mismatched sample count", func(t *testing.T) {
		w := NewWell("W-1", 0, 10)
		_ = w.AddCurve(New("GR", "gAPI", []float64{1, 2}, QualityGood))
		err := w.AddCurve(New("RHOB", "g/cc", []float64{1}, QualityGood))
		if err == nil {
			t.Fatal("expected length mismatch error")
		}
	})

	t.Run("depth axis spans well range", func(t *testing.T) {
		w := NewWell("W-1", 2000, 2004)
		_ = w.AddCurve(New("GR", "gAPI", []float64{1, 2, 3, 4, 5}, QualityGood))
		depths := w.Depths()
		if len(depths) != 5 || depths[0] != 2000 || depths[4] != 2004 {
			t.Errorf("depths = %v", depths)
		}
	})

	t.Run("fingerprint ignores curve insertion order", func(t *testing.T) {
		gr := New("GR", "gAPI", []float64{1, 2}, QualityGood)
		rhob := New("RHOB", "g/cc", []float64{2.3, 2.4}, QualityGood)

		a := NewWell("W-1", 0, 1)
		_ = a.AddCurve(gr)
		_ = a.AddCurve(rhob)

		b := NewWell("W-1", 0, 1)
		_ = b.AddCurve(rhob)
		_ = b.AddCurve(gr)

		if a.Fingerprint() != b.Fingerprint() {
			t.Error("well fingerprint depends on insertion order")
		}
	})
}
