// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/benchgate/cmd/benchgate/config"
	"github.com/AleutianAI/benchgate/pkg/logging"
	"github.com/AleutianAI/benchgate/pkg/ux"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// --- Global Command Variables ---
var (
	outputFormat     string // report format (console/json)
	prettyJSON       bool   // indent JSON output
	personalityLevel string // UX personality level (full/standard/minimal/machine)
	logLevel         string // diagnostic verbosity on stderr
	logJSON          bool   // structured JSON diagnostics

	configPath  string // target path for config init
	configForce bool   // overwrite an existing config

	rootCmd = newRootCmd()
)

// newRootCmd builds the whole command tree. Registering the flags resets
// the bound variables to their defaults, so tests construct their own tree
// to run with fresh state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "benchgate <baseline.json> <candidate.json> [threshold_percent]",
		Short: "Gate CI on benchmark regressions between two estimate files",
		Long: `Benchgate compares two benchmark estimate files, a baseline and a
candidate, and classifies every benchmark as neutral, regression, or
improvement against a threshold percentage (default 5.0). The report
prints to stdout; the exit code makes the verdict scriptable:

  0  no missing benchmarks and no regressions
  1  missing benchmarks, regressions, or a runtime failure
  2  wrong positional arguments`,
		Version:       Version,
		Args:          compareArgs,
		RunE:          runCompare,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRun()
		},
	}

	root.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"UX personality (full/standard/minimal/machine); empty auto-detects")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"diagnostic log level (debug/info/warn/error)")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"emit diagnostics as JSON on stderr")
	root.Flags().StringVar(&outputFormat, "format", "",
		"report format (console/json)")
	root.Flags().BoolVar(&prettyJSON, "pretty", false,
		"indent JSON output")

	inspectCmd := &cobra.Command{
		Use:   "inspect <estimates.json>",
		Short: "Print the benchmark means found in one estimate file",
		Args:  usageArgs(1, "inspect <estimates.json>"),
		RunE:  runInspect, // Defined in cmd_inspect.go
	}
	inspectCmd.Flags().StringVar(&outputFormat, "format", "",
		"output format (console/json)")
	inspectCmd.Flags().BoolVar(&prettyJSON, "pretty", false,
		"indent JSON output")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the benchgate configuration file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  usageArgs(0, "config init"),
		RunE:  runConfigInit, // Defined in cmd_config.go
	}
	configInitCmd.Flags().StringVar(&configPath, "path", "",
		"config file location (default ~/.benchgate/benchgate.yaml)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)

	root.AddCommand(inspectCmd, configCmd)
	return root
}

// compareArgs enforces the root positional contract: two paths plus an
// optional threshold. Violations exit with the usage code, unlike runtime
// failures.
func compareArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return NewCommandError("usage", ExitUsage,
			fmt.Errorf("expected <baseline.json> <candidate.json> [threshold_percent], got %d argument(s)", len(args)))
	}
	return nil
}

// usageArgs builds a positional validator that exits with the usage code.
func usageArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return NewCommandError("usage", ExitUsage,
				fmt.Errorf("expected %s, got %d argument(s)", usage, len(args)))
		}
		return nil
	}
}

// setupRun loads the user config and initializes personality and logging
// before any command body runs.
func setupRun() error {
	if err := config.Load(); err != nil {
		return NewCommandError("config", ExitFailure, err)
	}

	// Personality: flag beats config beats environment/TTY detection.
	switch {
	case personalityLevel != "":
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
	case config.Global.Output.Personality != "":
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(config.Global.Output.Personality))
	default:
		ux.InitPersonality()
	}

	level := config.Global.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logging.SetDefault(logging.New(logging.Config{
		Service: "benchgate",
		Level:   logging.ParseLevel(level),
		JSON:    logJSON || config.Global.Logging.JSON,
	}))
	return nil
}

// resolveFormat applies flag-beats-config resolution for the report format.
func resolveFormat(cmd *cobra.Command) string {
	if cmd.Flags().Changed("format") {
		return outputFormat
	}
	if config.Global.Output.Format != "" {
		return config.Global.Output.Format
	}
	return "console"
}

// resolvePretty applies flag-beats-config resolution for JSON indenting.
func resolvePretty(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("pretty") {
		return prettyJSON
	}
	return config.Global.Output.Pretty
}
