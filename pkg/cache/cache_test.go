// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoscope/lithoscope/pkg/calc"
)

// fakeClock lets tests drive TTL expiry deterministically.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestResult(t calc.Type) *calc.Result {
	return &calc.Result{Type: t, Values: []float64{0.2, 0.25}, Timestamp: time.Now()}
}

func TestNewKey(t *testing.T) {
	k1 := NewKey("W-1", calc.TypePorosity, "density", "aaaa", "bbbb")
	k2 := NewKey("W-1", calc.TypePorosity, "density", "aaaa", "bbbb")
	k3 := NewKey("W-1", calc.TypePorosity, "density", "aaab", "bbbb")
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestCacheRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New(Config{TTL: time.Minute, Clock: clock})

	res := newTestResult(calc.TypePorosity)
	key := NewKey("W-1", calc.TypePorosity, "density", "p", "c")

	_, ok := c.Get(key)
	require.False(t, ok, "empty cache must miss")

	require.True(t, c.Put(Entry{Key: key, Result: res, InsertedAt: clock.Now(), BatchStart: clock.Now()}))

	got, ok := c.Get(key)
	require.True(t, ok)
	// Identical object, not a value copy: the calculator is not re-invoked.
	assert.Same(t, res, got)

	stats := c.Snapshot()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRate)
}

func TestCacheLazyTTLExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New(Config{TTL: time.Minute, Clock: clock})

	key := NewKey("W-1", calc.TypePorosity, "density", "p", "c")
	c.Put(Entry{Key: key, Result: newTestResult(calc.TypePorosity), InsertedAt: clock.Now(), BatchStart: clock.Now()})

	clock.Advance(59 * time.Second)
	_, ok := c.Get(key)
	assert.True(t, ok, "entry inside TTL must hit")

	clock.Advance(2 * time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok, "entry past TTL must lazily expire")
	assert.Equal(t, 0, c.Len(), "expired entry must be deleted on lookup")
	assert.Equal(t, int64(1), c.Snapshot().Expired)
}

// hookClock runs a one-shot side effect on the next Now call, letting a
// test interleave a write exactly between a reader's unlocked lookup and
// its expiry decision.
type hookClock struct {
	now  time.Time
	hook func()
}

func (h *hookClock) Now() time.Time {
	if h.hook != nil {
		fn := h.hook
		h.hook = nil
		fn()
	}
	return h.now
}

func TestCacheExpiryRaceServesFresherEntry(t *testing.T) {
	clock := &hookClock{now: time.Unix(1000, 0)}
	c := New(Config{TTL: time.Minute, Clock: clock})

	key := NewKey("W-1", calc.TypePorosity, "density", "p", "c")
	stale := newTestResult(calc.TypePorosity)
	c.Put(Entry{Key: key, Result: stale, InsertedAt: clock.now, BatchStart: clock.now})

	// While Get is deciding to expire the stale entry, a fresher one lands.
	clock.now = clock.now.Add(2 * time.Minute)
	fresh := newTestResult(calc.TypePorosity)
	clock.hook = func() {
		c.Put(Entry{Key: key, Result: fresh, InsertedAt: clock.now, BatchStart: clock.now})
	}

	got, ok := c.Get(key)
	require.True(t, ok, "a live replacement must be served, not reported as a miss")
	assert.Same(t, fresh, got)

	stats := c.Snapshot()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
	assert.Equal(t, int64(0), stats.Expired, "replacement is not an expiry")
	assert.Equal(t, 1, c.Len())
}

func TestCacheDisabledTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New(Config{TTL: 0, Clock: clock})

	key := NewKey("W-1", calc.TypePorosity, "density", "p", "c")
	c.Put(Entry{Key: key, Result: newTestResult(calc.TypePorosity), InsertedAt: clock.Now(), BatchStart: clock.Now()})

	clock.Advance(24 * time.Hour)
	_, ok := c.Get(key)
	assert.True(t, ok, "non-positive TTL disables age-based expiry")
}

func TestCacheInvalidateType(t *testing.T) {
	c := New(Config{TTL: time.Minute})

	porKey := NewKey("W-1", calc.TypePorosity, "density", "p", "c")
	shaleKey := NewKey("W-1", calc.TypeShaleVolume, "linear", "p", "c")
	now := time.Now()
	c.Put(Entry{Key: porKey, Result: newTestResult(calc.TypePorosity), InsertedAt: now, BatchStart: now})
	c.Put(Entry{Key: shaleKey, Result: newTestResult(calc.TypeShaleVolume), InsertedAt: now, BatchStart: now})

	removed := c.InvalidateType(calc.TypePorosity)
	assert.Equal(t, 1, removed)

	_, ok := c.Get(porKey)
	assert.False(t, ok)
	_, ok = c.Get(shaleKey)
	assert.True(t, ok, "unrelated type must survive invalidation")
}

func TestCacheLastWriteWinsByBatchStart(t *testing.T) {
	c := New(Config{TTL: time.Minute})
	key := NewKey("W-1", calc.TypePorosity, "density", "p", "c")

	early := time.Unix(1000, 0)
	late := time.Unix(2000, 0)

	newer := newTestResult(calc.TypePorosity)
	require.True(t, c.Put(Entry{Key: key, Result: newer, InsertedAt: late, BatchStart: late}))

	// A straggler from an earlier batch finishes afterwards; it must not
	// clobber the newer batch's entry.
	older := newTestResult(calc.TypePorosity)
	assert.False(t, c.Put(Entry{Key: key, Result: older, InsertedAt: late.Add(time.Second), BatchStart: early}))

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Same(t, newer, got)
}
