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
	"errors"
	"fmt"
	"os"

	"github.com/AleutianAI/benchgate/pkg/ux"
)

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	code := ExitCodeFor(err)

	// A failed verdict already printed its report to stdout; repeating it
	// on stderr would just duplicate noise in CI logs.
	if !errors.Is(err, ErrComparisonFailed) {
		ux.Error(err.Error())
		if code == ExitUsage {
			fmt.Fprintln(os.Stderr, rootCmd.UsageString())
		}
	}
	os.Exit(code)
}
