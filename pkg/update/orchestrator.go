// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package update

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lithoscope/lithoscope/pkg/cache"
	"github.com/lithoscope/lithoscope/pkg/calc"
	"github.com/lithoscope/lithoscope/pkg/curve"
	"github.com/lithoscope/lithoscope/pkg/logging"
	"github.com/lithoscope/lithoscope/pkg/observability"
)

// Mode selects how recomputes are triggered.
type Mode string

const (
	// ModeAuto schedules a recompute batch automatically after each edit,
	// debounced.
	ModeAuto Mode = "auto"

	// ModeManual records staleness but recomputes only on RunBatch.
	ModeManual Mode = "manual"
)

// Calculation status labels for metrics.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Config configures an Orchestrator.
type Config struct {
	// Types lists the enabled calculation types; nil enables all four.
	// Invalid types are dropped.
	Types []calc.Type

	// Mode is the trigger mode; empty defaults to ModeAuto.
	Mode Mode

	// DebounceWindow is the quiet period after the last edit before an
	// auto recompute fires. Non-positive uses DefaultDebounceWindow.
	DebounceWindow time.Duration

	// CacheTTL bounds result age in the cache. Non-positive disables
	// age-based expiry.
	CacheTTL time.Duration

	// Clock supplies time for cache TTL and batch timestamps; nil uses
	// the system clock.
	Clock cache.Clock

	// Logger receives pipeline logs; nil uses logging.Default().
	Logger *logging.Logger

	// Metrics receives engine instrumentation; nil disables it.
	Metrics *observability.EngineMetrics
}

// Orchestrator owns the edit-to-recompute pipeline.
//
// # Description
//
// The pipeline for one edit:
//
//	UpdateParameters → DetectChanges → eager cache invalidation
//	  → (auto) debounce → RunBatch → per-item compute-or-cache-hit
//	  → cache insert → events
//
// Batches snapshot wells and parameters at start; edits landing while a
// batch runs are absorbed by a later batch, and the cache's batch-start
// ordering keeps a slow older batch from clobbering newer results.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Event callbacks run on the
// goroutine executing the batch (the debounce timer goroutine in auto
// mode, the caller's in manual mode).
type Orchestrator struct {
	mu        sync.Mutex
	types     []calc.Type
	mode      Mode
	params    calc.Parameters
	wells     []*curve.Well
	observers []Events
	inFlight  map[Item]struct{}

	cache     *cache.Cache
	debouncer *Debouncer
	clock     cache.Clock
	log       *logging.Logger
	metrics   *observability.EngineMetrics
}

// New creates an orchestrator with an empty cache and default parameters.
func New(cfg Config) *Orchestrator {
	types := cfg.Types
	if len(types) == 0 {
		types = calc.AllTypes()
	}
	enabled := make([]calc.Type, 0, len(types))
	for _, t := range types {
		if t.Valid() {
			enabled = append(enabled, t)
		}
	}

	mode := cfg.Mode
	if mode != ModeManual {
		mode = ModeAuto
	}
	clock := cfg.Clock
	if clock == nil {
		clock = cache.SystemClock()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}

	return &Orchestrator{
		types:    enabled,
		mode:     mode,
		params:   calc.DefaultParameters(),
		inFlight: make(map[Item]struct{}),
		cache: cache.New(cache.Config{
			TTL:     cfg.CacheTTL,
			Clock:   clock,
			Metrics: cfg.Metrics,
		}),
		debouncer: NewDebouncer(cfg.DebounceWindow),
		clock:     clock,
		log:       log,
		metrics:   cfg.Metrics,
	}
}

// Subscribe registers an event observer. Not removable; subscribe once at
// setup.
func (o *Orchestrator) Subscribe(ev Events) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, ev)
}

// Cache exposes the result cache for telemetry queries.
func (o *Orchestrator) Cache() *cache.Cache { return o.cache }

// Mode returns the current trigger mode.
func (o *Orchestrator) Mode() Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// SetMode switches the trigger mode. Switching to manual cancels any
// pending debounced recompute; already-stale entries were invalidated at
// edit time, so nothing stale is ever served.
func (o *Orchestrator) SetMode(mode Mode) {
	if mode != ModeAuto && mode != ModeManual {
		return
	}
	o.mu.Lock()
	o.mode = mode
	o.mu.Unlock()
	if mode == ModeManual {
		o.debouncer.Stop()
	}
}

// AddWell registers a well for batch recomputes.
func (o *Orchestrator) AddWell(w *curve.Well) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.wells = append(o.wells, w)
}

// Wells returns the registered wells in registration order.
func (o *Orchestrator) Wells() []*curve.Well {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.wells)
}

// Parameters returns the current parameter set.
func (o *Orchestrator) Parameters() calc.Parameters {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.params
}

// UpdateParameters applies an edit.
//
// # Description
//
// Diffs the new parameters against the current ones over every enabled
// type's watched fields. When at least one relevant field changed, the
// affected types' cache entries are invalidated immediately, observers
// are notified, and in auto mode a debounced recompute is scheduled.
// The orchestrator starts from calc.DefaultParameters(), so the first
// call diffs against the defaults like any other edit.
//
// # Outputs
//
//   - []ParameterChange: The relevant diffs, nil when nothing relevant
//     changed (edits to unwatched fields are absorbed silently).
func (o *Orchestrator) UpdateParameters(p calc.Parameters) []ParameterChange {
	o.mu.Lock()
	changes := DetectAllChanges(o.types, o.params, p)
	o.params = p
	auto := o.mode == ModeAuto
	types := slices.Clone(o.types)
	o.mu.Unlock()

	if len(changes) == 0 {
		return nil
	}

	o.notify(func(ev Events) { ev.OnParameterChange(changes) })

	// Eager invalidation: stale entries must be gone before any consumer
	// can look them up, independent of when the recompute lands.
	invalidated := 0
	for _, t := range types {
		if changesAffect(changes, t) {
			invalidated += o.cache.InvalidateType(t)
		}
	}
	if invalidated > 0 {
		stats := o.cache.Snapshot()
		o.notify(func(ev Events) { ev.OnCacheUpdate(stats) })
	}
	o.log.Debug("parameters updated",
		"changes", len(changes), "invalidated", invalidated, "auto", auto)

	if auto {
		o.debouncer.Reset(func() { o.RunBatch() })
	}
	return changes
}

// RunBatch recomputes every enabled calculation for every registered well.
//
// # Description
//
// Each (type, well) pair is one item. Items whose cache entry is live are
// served from cache without recomputation; the rest run through the
// calculation engine. One item failing does not abort the batch. Results
// are inserted with this batch's start time so an older concurrent batch
// can never overwrite them.
//
// In manual mode this is the trigger; in auto mode the debouncer calls it.
//
// # Outputs
//
//   - map[calc.Type][]*calc.Result: Everything the batch produced or
//     served, grouped by type, wells in registration order.
func (o *Orchestrator) RunBatch() map[calc.Type][]*calc.Result {
	o.mu.Lock()
	types := slices.Clone(o.types)
	wells := slices.Clone(o.wells)
	params := o.params
	o.mu.Unlock()

	batchStart := o.clock.Now()
	batchID := uuid.NewString()
	log := o.log.With("batch_id", batchID)
	log.Info("batch start", "types", len(types), "wells", len(wells))

	results := make(map[calc.Type][]*calc.Result, len(types))
	for _, t := range types {
		method := params.Method(t)
		paramFP := calc.ParameterFingerprint(t, params)
		for _, w := range wells {
			key := cache.NewKey(w.Name(), t, method, paramFP, w.Fingerprint())
			if cached, ok := o.cache.Get(key); ok {
				results[t] = append(results[t], cached)
				continue
			}

			item := Item{Well: w.Name(), Type: t, Method: method}
			res, err := o.computeItem(item, t, w, params)
			if err != nil {
				log.Error("calculation failed",
					"well", item.Well, "type", item.Type, "error", err)
				o.notify(func(ev Events) { ev.OnCalculationFailed(item, err) })
				continue
			}

			o.cache.Put(cache.Entry{
				Key:              key,
				Result:           res,
				Parameters:       params,
				CurveFingerprint: w.Fingerprint(),
				InsertedAt:       o.clock.Now(),
				BatchStart:       batchStart,
			})
			results[t] = append(results[t], res)
			stats := o.cache.Snapshot()
			o.notify(func(ev Events) {
				ev.OnItemComplete(item, res)
				ev.OnCacheUpdate(stats)
			})
		}
	}

	if o.metrics != nil {
		o.metrics.BatchesTotal.Inc()
	}
	o.notify(func(ev Events) { ev.OnCalculationComplete(batchID, results) })
	log.Info("batch complete", "results", resultCount(results))
	return results
}

// PendingRecompute reports whether a debounced recompute is scheduled.
func (o *Orchestrator) PendingRecompute() bool {
	return o.debouncer.Pending()
}

// Flush runs any pending debounced recompute immediately on the calling
// goroutine. No-op when nothing is pending.
func (o *Orchestrator) Flush() {
	o.debouncer.Flush()
}

// Close cancels any pending recompute. The orchestrator must not be used
// afterwards.
func (o *Orchestrator) Close() {
	o.debouncer.Stop()
}

// InFlight returns the items currently executing.
func (o *Orchestrator) InFlight() []Item {
	o.mu.Lock()
	defer o.mu.Unlock()
	items := make([]Item, 0, len(o.inFlight))
	for item := range o.inFlight {
		items = append(items, item)
	}
	return items
}

func (o *Orchestrator) computeItem(item Item, t calc.Type, w *curve.Well, params calc.Parameters) (*calc.Result, error) {
	o.mu.Lock()
	o.inFlight[item] = struct{}{}
	o.mu.Unlock()
	if o.metrics != nil {
		o.metrics.ItemsInFlight.Inc()
	}
	started := time.Now()

	res, err := calc.Compute(t, w, params)

	if o.metrics != nil {
		o.metrics.ItemsInFlight.Dec()
		o.metrics.CalculationDurationSeconds.WithLabelValues(string(t)).
			Observe(time.Since(started).Seconds())
		status := statusSuccess
		if err != nil {
			status = statusError
		}
		o.metrics.CalculationsTotal.WithLabelValues(string(t), status).Inc()
	}
	o.mu.Lock()
	delete(o.inFlight, item)
	o.mu.Unlock()
	return res, err
}

func (o *Orchestrator) notify(fn func(Events)) {
	o.mu.Lock()
	observers := slices.Clone(o.observers)
	o.mu.Unlock()
	for _, ev := range observers {
		fn(ev)
	}
}

func changesAffect(changes []ParameterChange, t calc.Type) bool {
	for _, c := range changes {
		if c.Type == t {
			return true
		}
	}
	return false
}

func resultCount(results map[calc.Type][]*calc.Result) int {
	n := 0
	for _, rs := range results {
		n += len(rs)
	}
	return n
}
