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
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/benchgate/cmd/benchgate/config"
	"github.com/AleutianAI/benchgate/pkg/logging"
	"github.com/AleutianAI/benchgate/pkg/ux"
	"github.com/AleutianAI/benchgate/services/benchgate/compare"
	"github.com/AleutianAI/benchgate/services/benchgate/estimates"
)

// runCompare is the root command body: load both estimate files, compare,
// render the report to stdout, and map the verdict to the exit code.
func runCompare(cmd *cobra.Command, args []string) error {
	log := logging.Default().With("run_id", uuid.NewString())

	basePath, candPath := args[0], args[1]
	threshold := config.Global.Compare.ThresholdPercent
	if len(args) == 3 {
		parsed, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return NewCommandError("compare", ExitFailure,
				fmt.Errorf("invalid threshold %q: %w", args[2], err))
		}
		threshold = parsed
	}

	reporter, err := newReporter(cmd)
	if err != nil {
		return NewCommandError("compare", ExitFailure, err)
	}

	log.Debug("loading estimate files", "baseline", basePath, "candidate", candPath)
	base, cand, err := estimates.LoadPair(cmd.Context(), basePath, candPath)
	if err != nil {
		return NewCommandError("compare", ExitFailure, err)
	}

	rep := compare.Compare(base, cand, threshold)
	log.Info("comparison complete",
		"verdict", rep.Verdict(),
		"benchmarks", len(rep.Rows),
		"missing", len(rep.Missing),
		"regressions", len(rep.Regressions),
		"threshold_percent", threshold)

	if err := reporter.Report(rep); err != nil {
		return NewCommandError("compare", ExitFailure, err)
	}

	// The post-report summary is stderr garnish for interactive runs; the
	// contractual report above never changes with personality.
	if ux.GetPersonality().Level == ux.PersonalityFull && len(rep.Rows) > 0 {
		regressions, improvements, neutral := rep.Counts()
		ux.Summary(regressions, improvements, neutral)
	}

	if rep.Failed() {
		return NewCommandError("compare", ExitFailure, ErrComparisonFailed)
	}
	return nil
}

// newReporter picks the report renderer from the resolved format.
func newReporter(cmd *cobra.Command) (compare.Reporter, error) {
	switch format := resolveFormat(cmd); format {
	case "console":
		return compare.NewConsoleReporter(cmd.OutOrStdout(), ux.ShouldShowColors()), nil
	case "json":
		return compare.NewJSONReporter(cmd.OutOrStdout(), resolvePretty(cmd)), nil
	default:
		return nil, fmt.Errorf("invalid format %q (expected console or json)", format)
	}
}
