// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// =============================================================================
// Icon.Render Tests
// =============================================================================

func TestIcon_Render_Styled(t *testing.T) {
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconPending} {
		if icon.Render() == "" {
			t.Errorf("expected non-empty result for %q", icon)
		}
	}
}

func TestIcon_Render_Default(t *testing.T) {
	// Icons without specific styling render as themselves
	for _, icon := range []Icon{IconArrow, IconBullet} {
		result := icon.Render()
		if result != string(icon) {
			t.Errorf("expected %q for %q, got %q", string(icon), icon, result)
		}
	}
}

// =============================================================================
// Helper Output Tests
// =============================================================================

func TestTitle_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStderr(func() {
		Title("Benchmark Estimates")
	})

	// In machine mode, Title should output nothing
	if output != "" {
		t.Errorf("expected no output in machine mode, got %q", output)
	}
}

func TestTitle_FullMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	output := captureStderr(func() {
		Title("Benchmark Estimates")
	})

	if output == "" {
		t.Error("expected styled output in full mode")
	}
}

func TestSuccess_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStderr(func() {
		Success("config written")
	})

	if output != "OK: config written\n" {
		t.Errorf("expected 'OK: config written', got %q", output)
	}
}

func TestError_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStderr(func() {
		Error("baseline.json: missing 'benchmarks' key")
	})

	if output != "ERROR: baseline.json: missing 'benchmarks' key\n" {
		t.Errorf("unexpected machine-mode error output %q", output)
	}
}

func TestWarning_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStderr(func() {
		Warning("config unreadable, using defaults")
	})

	if output != "WARN: config unreadable, using defaults\n" {
		t.Errorf("unexpected machine-mode warning output %q", output)
	}
}

func TestInfo_Modes(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)
	output := captureStderr(func() {
		Info("loading candidate")
	})
	if output != "loading candidate\n" {
		t.Errorf("machine-mode Info = %q", output)
	}

	SetPersonalityLevel(PersonalityFull)
	output = captureStderr(func() {
		Info("loading candidate")
	})
	if !strings.Contains(output, "loading candidate") {
		t.Errorf("full-mode Info should contain message, got %q", output)
	}
}

func TestMuted_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)
	output := captureStderr(func() {
		Muted("threshold 5.00%")
	})
	if output != "" {
		t.Errorf("expected no muted output in machine mode, got %q", output)
	}
}

func TestSummary(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	t.Run("machine mode", func(t *testing.T) {
		SetPersonalityLevel(PersonalityMachine)
		output := captureStderr(func() {
			Summary(2, 1, 4)
		})
		if output != "SUMMARY: regressions=2 improvements=1 neutral=4\n" {
			t.Errorf("unexpected summary %q", output)
		}
	})

	t.Run("full mode", func(t *testing.T) {
		SetPersonalityLevel(PersonalityFull)
		output := captureStderr(func() {
			Summary(2, 1, 4)
		})
		for _, want := range []string{"2", "regressions", "1", "improvements", "4", "neutral"} {
			if !strings.Contains(output, want) {
				t.Errorf("summary should contain %q, got %q", want, output)
			}
		}
	})
}

// Helpers must never touch stdout; it carries the comparison report.
func TestHelpers_StdoutStaysClean(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	output := captureStdout(func() {
		Title("t")
		Success("s")
		Warning("w")
		Error("e")
		Info("i")
		Muted("m")
		Summary(1, 1, 1)
	})

	if output != "" {
		t.Errorf("helpers wrote %q to stdout", output)
	}
}
