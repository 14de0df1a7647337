// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package update

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is how long after the last edit a recompute fires.
// Long enough to absorb slider drags, short enough to feel responsive.
const DefaultDebounceWindow = 1200 * time.Millisecond

// timerFactory schedules fn after d; tests substitute a manual trigger.
type timerFactory func(d time.Duration, fn func()) *time.Timer

// Debouncer coalesces bursts of Reset calls into one callback.
//
// # Description
//
// Each Reset restarts the window; the callback runs once, on the timer
// goroutine, when a full window passes with no further Reset. N edits
// inside one window produce exactly one callback.
//
// # Thread Safety
//
// All methods are safe for concurrent use. The callback runs outside the
// debouncer's lock, so it may call Reset or Stop.
type Debouncer struct {
	mu       sync.Mutex
	window   time.Duration
	timer    *time.Timer
	pending  func()
	schedule timerFactory
}

// NewDebouncer creates a debouncer. Non-positive window falls back to
// DefaultDebounceWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window, schedule: time.AfterFunc}
}

// Reset (re)starts the window with fn as the callback, replacing any
// pending callback from earlier Resets.
func (d *Debouncer) Reset(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = d.schedule(d.window, d.fire)
}

// Stop cancels the pending callback, if any, and reports whether one was
// pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	pending := d.pending != nil
	d.pending = nil
	return pending
}

// Flush runs the pending callback immediately, on the calling goroutine,
// and cancels the timer. No-op when nothing is pending. Used for manual
// triggers and deterministic tests.
func (d *Debouncer) Flush() {
	d.fire()
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
