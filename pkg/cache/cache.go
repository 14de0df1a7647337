// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package cache stores calculation results keyed by what produced them.
//
// # Description
//
// A key digests (well, calculation type, method, parameter fingerprint,
// curve fingerprint), so any edit that matters produces a different key and
// a cache miss. An entry's lifecycle is:
//
//	absent → cached → (expired | invalidated) → absent
//
// TTL eviction is lazy: expiry is checked on lookup, never by a background
// sweep, so the cache needs no scheduler. Invalidation by parameter change
// is eager: the orchestrator deletes all entries of a calculation type the
// instant a relevant field changes, before any recompute is scheduled.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Keys are unique per
// (well, type, fingerprints), so no two batch items ever write the same key
// concurrently; cross-batch conflicts on one key are resolved by batch
// start time (last-write-wins), not completion order.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/lithoscope/lithoscope/pkg/calc"
	"github.com/lithoscope/lithoscope/pkg/observability"
)

// Clock abstracts time for TTL checks; tests inject a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock { return systemClock{} }

// Key identifies one cached result.
type Key string

// NewKey digests the full identity of a calculation.
func NewKey(well string, t calc.Type, method, paramFingerprint, curveFingerprint string) Key {
	h := xxhash.New()
	for _, part := range []string{well, string(t), method, paramFingerprint, curveFingerprint} {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}
	return Key(fmt.Sprintf("%016x", h.Sum64()))
}

// Entry is one cached result with the provenance needed for staleness
// decisions.
type Entry struct {
	Key              Key
	Result           *calc.Result
	Parameters       calc.Parameters
	CurveFingerprint string
	InsertedAt       time.Time

	// BatchStart is when the producing batch began. Writes from an older
	// batch never overwrite a newer batch's entry, regardless of which
	// finished first.
	BatchStart time.Time
}

// Stats is a point-in-time snapshot of cache accounting, published to
// consumers after every mutation for hit-rate telemetry.
type Stats struct {
	Size          int     `json:"size"`
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	Expired       int64   `json:"expired"`
	Invalidations int64   `json:"invalidations"`
	Inserts       int64   `json:"inserts"`
	HitRate       float64 `json:"hitRate"`
}

// Config configures a Cache.
type Config struct {
	// TTL bounds entry age; entries older than TTL are evicted lazily on
	// lookup. Non-positive disables age-based expiry.
	TTL time.Duration

	// Clock supplies time; nil defaults to the system clock.
	Clock Clock

	// Metrics receives cache-op counters; nil disables instrumentation.
	Metrics *observability.EngineMetrics
}

// Cache is the time-bounded calculation result store.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*Entry

	ttl     time.Duration
	clock   Clock
	metrics *observability.EngineMetrics

	hits          atomic.Int64
	misses        atomic.Int64
	expired       atomic.Int64
	invalidations atomic.Int64
	inserts       atomic.Int64
}

// New creates an empty cache.
func New(cfg Config) *Cache {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}
	return &Cache{
		entries: make(map[Key]*Entry),
		ttl:     cfg.TTL,
		clock:   clock,
		metrics: cfg.Metrics,
	}
}

// Get retrieves the result for a key.
//
// # Description
//
// Lookup is a pure function of the key. An entry past its TTL is evicted
// here (lazy expiry) and reported as a miss; the expiry is also counted
// separately for telemetry.
//
// # Outputs
//
//   - *calc.Result: The cached result, nil on miss.
//   - bool: True on hit.
func (c *Cache) Get(key Key) (*calc.Result, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.ttl > 0 && c.clock.Now().Sub(entry.InsertedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed
		// between the read and here. If so, serve it instead of expiring.
		current, still := c.entries[key]
		if still && current != entry {
			entry = current
			c.mu.Unlock()
		} else {
			if still {
				delete(c.entries, key)
			}
			c.mu.Unlock()
			c.expired.Add(1)
			c.countOp(observability.CacheOpExpired)
			ok = false
		}
	}

	if !ok {
		c.misses.Add(1)
		c.countOp(observability.CacheOpMiss)
		return nil, false
	}
	c.hits.Add(1)
	c.countOp(observability.CacheOpHit)
	return entry.Result, true
}

// Put stores an entry, append-or-replace.
//
// # Description
//
// Cross-batch conflicts resolve by batch start time: an entry produced by
// a batch that started earlier never replaces one from a later batch, even
// if it finishes after it (last-write-wins by timestamp, not completion
// order).
//
// # Outputs
//
//   - bool: True if the entry was stored.
func (c *Cache) Put(entry Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[entry.Key]; ok && existing.BatchStart.After(entry.BatchStart) {
		return false
	}
	stored := entry
	c.entries[entry.Key] = &stored
	c.inserts.Add(1)
	c.countOp(observability.CacheOpInsert)
	return true
}

// InvalidateType eagerly deletes every entry of one calculation type.
//
// Called by the orchestrator the moment a relevant parameter field
// changes, independent of TTL.
//
// # Outputs
//
//   - int: Number of entries removed.
func (c *Cache) InvalidateType(t calc.Type) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.Result != nil && entry.Result.Type == t {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		c.invalidations.Add(int64(removed))
		if c.metrics != nil {
			c.metrics.CacheOpsTotal.WithLabelValues(observability.CacheOpInvalidated).Add(float64(removed))
		}
	}
	return removed
}

// Purge clears all entries and resets accounting.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*Entry)
	c.hits.Store(0)
	c.misses.Store(0)
	c.expired.Store(0)
	c.invalidations.Store(0)
	c.inserts.Store(0)
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns current accounting for telemetry display.
func (c *Cache) Snapshot() Stats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	s := Stats{
		Size:          size,
		Hits:          hits,
		Misses:        misses,
		Expired:       c.expired.Load(),
		Invalidations: c.invalidations.Load(),
		Inserts:       c.inserts.Load(),
	}
	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}
	return s
}

func (c *Cache) countOp(op string) {
	if c.metrics != nil {
		c.metrics.CacheOpsTotal.WithLabelValues(op).Inc()
	}
}
