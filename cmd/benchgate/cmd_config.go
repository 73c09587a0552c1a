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
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/benchgate/cmd/benchgate/config"
	"github.com/AleutianAI/benchgate/pkg/ux"
)

// runConfigInit writes the default config file. Creation is explicit so a
// gate run never touches $HOME on its own.
func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return NewCommandError("config init", ExitFailure, err)
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return NewCommandError("config init", ExitFailure,
			fmt.Errorf("config already exists at %s (use --force to overwrite)", path))
	}

	if err := config.CreateDefault(path); err != nil {
		return NewCommandError("config init", ExitFailure, err)
	}

	ux.Success(fmt.Sprintf("wrote default config to %s", path))
	return nil
}
