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
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/benchgate/services/benchgate/estimates"
)

type inspectEntry struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
}

type inspectDump struct {
	Path       string         `json:"path"`
	Benchmarks []inspectEntry `json:"benchmarks"`
}

// runInspect loads a single estimate file and prints its name/mean table.
// Useful for eyeballing what the gate will actually compare.
func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	set, err := estimates.Load(path)
	if err != nil {
		return NewCommandError("inspect", ExitFailure, err)
	}

	names := set.Names()
	sort.Strings(names)

	switch format := resolveFormat(cmd); format {
	case "console":
		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "Estimates in %s (%d benchmarks):\n", path, len(set)); err != nil {
			return NewCommandError("inspect", ExitFailure, err)
		}
		for _, name := range names {
			if _, err := fmt.Fprintf(out, "  %-28s mean=%.3f\n", name, set[name]); err != nil {
				return NewCommandError("inspect", ExitFailure, err)
			}
		}
		return nil
	case "json":
		dump := inspectDump{
			Path:       path,
			Benchmarks: make([]inspectEntry, 0, len(names)),
		}
		for _, name := range names {
			dump.Benchmarks = append(dump.Benchmarks, inspectEntry{Name: name, Mean: set[name]})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		if resolvePretty(cmd) {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(dump); err != nil {
			return NewCommandError("inspect", ExitFailure, err)
		}
		return nil
	default:
		return NewCommandError("inspect", ExitFailure,
			fmt.Errorf("invalid format %q (expected console or json)", format))
	}
}
