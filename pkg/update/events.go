// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package update

import (
	"github.com/lithoscope/lithoscope/pkg/cache"
	"github.com/lithoscope/lithoscope/pkg/calc"
)

// Item identifies one unit of batch work: a calculation type applied to
// one well with one method.
type Item struct {
	Well   string    `json:"well"`
	Type   calc.Type `json:"type"`
	Method string    `json:"method"`
}

// Events receives orchestrator notifications.
//
// # Description
//
// Callbacks run synchronously on the orchestrator's pipeline goroutine;
// implementations must not block. Embed NopEvents to receive only the
// callbacks you care about.
//
// Order within one edit-to-recompute cycle:
//
//  1. OnParameterChange (once per edit with relevant diffs)
//  2. OnCacheUpdate (after the eager invalidation)
//  3. OnItemComplete / OnCalculationFailed (per item, cache hits excluded)
//  4. OnCacheUpdate (after each insert)
//  5. OnCalculationComplete (once per batch)
type Events interface {
	// OnParameterChange fires after an edit with at least one relevant
	// field diff, before any recompute is scheduled.
	OnParameterChange(changes []ParameterChange)

	// OnItemComplete fires after one item computes successfully and its
	// result lands in the cache.
	OnItemComplete(item Item, result *calc.Result)

	// OnCalculationFailed fires when one item fails. The batch continues
	// with the remaining items.
	OnCalculationFailed(item Item, err error)

	// OnCalculationComplete fires when a batch finishes, carrying every
	// result the batch produced or served from cache, grouped by type.
	OnCalculationComplete(batchID string, results map[calc.Type][]*calc.Result)

	// OnCacheUpdate fires after every cache mutation with fresh telemetry.
	OnCacheUpdate(stats cache.Stats)
}

// NopEvents implements Events with no-ops, for embedding.
type NopEvents struct{}

func (NopEvents) OnParameterChange([]ParameterChange)                        {}
func (NopEvents) OnItemComplete(Item, *calc.Result)                          {}
func (NopEvents) OnCalculationFailed(Item, error)                            {}
func (NopEvents) OnCalculationComplete(string, map[calc.Type][]*calc.Result) {}
func (NopEvents) OnCacheUpdate(cache.Stats)                                  {}
