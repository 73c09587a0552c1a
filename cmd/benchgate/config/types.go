// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

type BenchgateConfig struct {
	// Compare: regression gate defaults
	Compare CompareConfig `yaml:"compare"`

	// Output: report rendering defaults
	Output OutputConfig `yaml:"output"`

	// Logging: diagnostic stream settings
	Logging LoggingConfig `yaml:"logging"`
}

type CompareConfig struct {
	ThresholdPercent float64 `yaml:"threshold_percent"` // e.g. 5.0
}

type OutputConfig struct {
	Personality string `yaml:"personality,omitempty"` // full|standard|minimal|machine; empty = auto
	Format      string `yaml:"format"`                // console|json
	Pretty      bool   `yaml:"pretty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
	JSON  bool   `yaml:"json"`
}

func DefaultConfig() BenchgateConfig {
	return BenchgateConfig{
		Compare: CompareConfig{
			ThresholdPercent: 5.0,
		},
		Output: OutputConfig{
			Personality: "",
			Format:      "console",
			Pretty:      false,
		},
		Logging: LoggingConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
