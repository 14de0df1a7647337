// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package update keeps calculation results consistent with their inputs.
//
// # Description
//
// Three pieces cooperate:
//
//   - DetectChanges compares two parameter sets against the watched field
//     list of a calculation type and reports exactly which fields differ.
//   - Debouncer coalesces a burst of edits into one scheduled callback.
//   - Orchestrator owns the edit-to-recompute pipeline: detect, invalidate,
//     debounce, batch-recompute, publish.
//
// The pipeline guarantees that a stale result is never served: detection
// and cache invalidation happen synchronously on the edit path, before the
// debounce window even starts.
package update

import (
	"fmt"

	"github.com/lithoscope/lithoscope/pkg/calc"
)

// ParameterChange records one watched field differing between two
// parameter sets.
type ParameterChange struct {
	Type      calc.Type `json:"type"`
	Parameter string    `json:"parameter"`
	OldValue  any       `json:"oldValue"`
	NewValue  any       `json:"newValue"`
}

// String renders the change for logs and event feeds.
func (c ParameterChange) String() string {
	return fmt.Sprintf("%s.%s: %v -> %v", c.Type, c.Parameter, c.OldValue, c.NewValue)
}

// DetectChanges reports the watched fields of one calculation type that
// differ between old and new.
//
// # Description
//
// Comparison is strict inequality per field; there is no epsilon, so a
// numeric edit of any magnitude counts as a change. Fields outside the
// type's watched list are ignored: editing a porosity constant never
// marks shale volume stale.
//
// # Outputs
//
//   - []ParameterChange: One record per differing field, in watched-field
//     order. Empty (nil) when nothing relevant changed.
func DetectChanges(t calc.Type, old, new calc.Parameters) []ParameterChange {
	var changes []ParameterChange
	for _, field := range calc.WatchedFields(t) {
		oldValue, _ := old.Field(field)
		newValue, _ := new.Field(field)
		if oldValue != newValue {
			changes = append(changes, ParameterChange{
				Type:      t,
				Parameter: field,
				OldValue:  oldValue,
				NewValue:  newValue,
			})
		}
	}
	return changes
}

// DetectAllChanges runs DetectChanges for each given type and concatenates
// the results. A field watched by several types yields one record per type.
func DetectAllChanges(types []calc.Type, old, new calc.Parameters) []ParameterChange {
	var changes []ParameterChange
	for _, t := range types {
		changes = append(changes, DetectChanges(t, old, new)...)
	}
	return changes
}
