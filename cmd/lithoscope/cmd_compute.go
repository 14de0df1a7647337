// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lithoscope/lithoscope/pkg/cache"
	"github.com/lithoscope/lithoscope/pkg/calc"
	"github.com/lithoscope/lithoscope/pkg/config"
	"github.com/lithoscope/lithoscope/pkg/logging"
	"github.com/lithoscope/lithoscope/pkg/observability"
	"github.com/lithoscope/lithoscope/pkg/update"
)

// buildEngine wires config, logging, metrics, wells and the orchestrator.
func buildEngine(mode update.Mode) (config.Config, *update.Orchestrator, *logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		LogDir:  cfg.LogDir,
		Service: "lithoscope",
		Quiet:   quiet,
	})

	o := update.New(update.Config{
		Types:          cfg.Types(),
		Mode:           mode,
		DebounceWindow: cfg.DebounceWindow(),
		CacheTTL:       cfg.CacheTTL(),
		Logger:         logger,
		Metrics:        observability.NewEngineMetrics(prometheus.NewRegistry()),
	})
	wells, err := loadWells(wellPaths)
	if err != nil {
		o.Close()
		return config.Config{}, nil, nil, err
	}
	for _, w := range wells {
		o.AddWell(w)
	}
	o.UpdateParameters(cfg.Parameters)
	return cfg, o, logger, nil
}

func runCompute(cmd *cobra.Command, _ []string) error {
	_, o, logger, err := buildEngine(update.ModeManual)
	if err != nil {
		return err
	}
	defer o.Close()
	defer logger.Close()

	results := o.RunBatch()
	printResults(cmd.OutOrStdout(), results)
	printCacheStats(cmd.OutOrStdout(), o.Cache().Snapshot())
	return nil
}

// printResults renders one summary row per (type, well) in canonical order.
func printResults(out io.Writer, results map[calc.Type][]*calc.Result) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tWELL\tMETHOD\tVALID\tMEAN\tP50\tCONFIDENCE")
	for _, t := range calc.AllTypes() {
		for _, r := range results[t] {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%.4g\t%.4g\t%s\n",
				r.Type, r.Well, r.Method,
				r.Statistics.ValidCount, r.Statistics.Count,
				r.Statistics.Mean, r.Statistics.Median,
				r.Quality.ConfidenceLevel)
		}
	}
	tw.Flush()
}

func printCacheStats(out io.Writer, s cache.Stats) {
	fmt.Fprintf(out, "\ncache: %d entries, %d hits, %d misses (%.0f%% hit rate), %d expired, %d invalidated\n",
		s.Size, s.Hits, s.Misses, s.HitRate*100, s.Expired, s.Invalidations)
}
