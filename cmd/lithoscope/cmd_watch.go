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
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lithoscope/lithoscope/pkg/calc"
	"github.com/lithoscope/lithoscope/pkg/config"
	"github.com/lithoscope/lithoscope/pkg/update"
)

// consolePrinter renders orchestrator events to the terminal.
type consolePrinter struct {
	update.NopEvents
	out   io.Writer
	stats func() // prints cache telemetry after each batch
}

func (p *consolePrinter) OnParameterChange(changes []update.ParameterChange) {
	for _, c := range changes {
		fmt.Fprintf(p.out, "edit: %s\n", c)
	}
}

func (p *consolePrinter) OnCalculationFailed(item update.Item, err error) {
	fmt.Fprintf(p.out, "failed: %s %s on %s: %v\n", item.Type, item.Method, item.Well, err)
}

func (p *consolePrinter) OnCalculationComplete(_ string, results map[calc.Type][]*calc.Result) {
	printResults(p.out, results)
	p.stats()
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if configPath == "" {
		return fmt.Errorf("watch requires --config")
	}

	_, o, logger, err := buildEngine(update.ModeAuto)
	if err != nil {
		return err
	}
	defer o.Close()
	defer logger.Close()

	out := cmd.OutOrStdout()
	o.Subscribe(&consolePrinter{
		out:   out,
		stats: func() { printCacheStats(out, o.Cache().Snapshot()) },
	})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save and
	// a direct file watch dies on the rename.
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absConfig)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o.RunBatch()
	logger.Info("watching config", "path", absConfig)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if eventPath, err := filepath.Abs(event.Name); err != nil || eventPath != absConfig {
				continue
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				// A half-written or invalid file: keep the last good state.
				logger.Warn("config reload failed", "error", err)
				continue
			}
			o.UpdateParameters(cfg.Parameters)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
