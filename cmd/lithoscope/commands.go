// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	wellPaths  []string
	quiet      bool

	rootCmd = &cobra.Command{
		Use:   "lithoscope",
		Short: "A petrophysical calculation engine for well-log curves",
		Long: `Lithoscope derives porosity, shale volume, water saturation and
permeability from raw well-log curves, and keeps the derived results
consistent with a live-editable parameter set without recomputing
unchanged work.`,
	}

	computeCmd = &cobra.Command{
		Use:   "compute",
		Short: "Run one calculation batch and print per-type summaries",
		RunE:  runCompute, // Defined in cmd_compute.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Recompute automatically whenever the config file is edited",
		RunE:  runWatch, // Defined in cmd_watch.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML configuration file (defaults apply when omitted)")
	rootCmd.PersistentFlags().StringSliceVarP(&wellPaths, "well", "w", nil,
		"YAML well file with raw curves (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress log output, print only results")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(watchCmd)
}
