// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the calculation
// engine.
//
// # Description
//
// Instruments the update orchestrator and the result cache:
//   - Calculation counters by type and status
//   - Calculation latency histograms by type
//   - Cache operation counters (hit, miss, expired, invalidated, insert)
//   - Batch counters and an in-flight gauge
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics.
const metricsNamespace = "lithoscope"

// Subsystem for the calculation engine.
const engineSubsystem = "engine"

// Cache operation label values.
const (
	CacheOpHit         = "hit"
	CacheOpMiss        = "miss"
	CacheOpExpired     = "expired"
	CacheOpInvalidated = "invalidated"
	CacheOpInsert      = "insert"
)

// EngineMetrics holds all Prometheus metrics for the calculation engine.
//
// # Fields
//
//   - CalculationsTotal: Counter by calculation type and status.
//   - CalculationDurationSeconds: Latency histogram by calculation type.
//   - CacheOpsTotal: Counter of cache operations by op.
//   - BatchesTotal: Counter of completed recompute batches.
//   - ItemsInFlight: Gauge of calculations currently executing.
//
// # Thread Safety
//
// All operations are thread-safe.
type EngineMetrics struct {
	// CalculationsTotal counts calculations by type and status.
	// Labels: type (porosity, shale_volume, ...), status (success, error)
	CalculationsTotal *prometheus.CounterVec

	// CalculationDurationSeconds measures per-calculation latency.
	// Labels: type
	CalculationDurationSeconds *prometheus.HistogramVec

	// CacheOpsTotal counts cache operations.
	// Labels: op (hit, miss, expired, invalidated, insert)
	CacheOpsTotal *prometheus.CounterVec

	// BatchesTotal counts completed recompute batches.
	BatchesTotal prometheus.Counter

	// ItemsInFlight tracks calculations currently executing.
	ItemsInFlight prometheus.Gauge
}

// NewEngineMetrics creates and registers the engine metrics.
//
// # Description
//
// Registers against the provided registerer; pass
// prometheus.DefaultRegisterer for production use or a fresh
// prometheus.NewRegistry() in tests to avoid duplicate-registration
// panics.
//
// # Inputs
//
//   - reg: Target registry. Must not be nil.
//
// # Outputs
//
//   - *EngineMetrics: The registered metrics instance.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	factory := promauto.With(reg)
	return &EngineMetrics{
		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: engineSubsystem,
				Name:      "calculations_total",
				Help:      "Total calculations by type and status",
			},
			[]string{"type", "status"},
		),

		CalculationDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: engineSubsystem,
				Name:      "calculation_duration_seconds",
				Help:      "Per-calculation latency by type",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"type"},
		),

		CacheOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: engineSubsystem,
				Name:      "cache_ops_total",
				Help:      "Cache operations by op (hit, miss, expired, invalidated, insert)",
			},
			[]string{"op"},
		),

		BatchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: engineSubsystem,
				Name:      "batches_total",
				Help:      "Completed recompute batches",
			},
		),

		ItemsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: engineSubsystem,
				Name:      "items_in_flight",
				Help:      "Calculations currently executing",
			},
		),
	}
}
