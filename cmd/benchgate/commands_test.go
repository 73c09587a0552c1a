// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// These tests drive the command tree in-process: a fresh tree per
// invocation, stdout captured through cobra's writer, and the exit code
// taken from the returned error exactly as main would.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/benchgate/services/benchgate/estimates"
)

// =============================================================================
// Test Harness
// =============================================================================

// gateResult captures one in-process CLI invocation.
type gateResult struct {
	stdout string
	err    error
}

// exitCode resolves the code main would exit with.
func (r gateResult) exitCode() int {
	return ExitCodeFor(r.err)
}

// runGate executes a fresh command tree. HOME is pointed at an empty temp
// directory so a developer's real config can never leak into assertions,
// and the personality is pinned so output never depends on the test TTY.
func runGate(t *testing.T, args ...string) gateResult {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BENCHGATE_PERSONALITY", "machine")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.Execute()
	return gateResult{stdout: out.String(), err: err}
}

// writeEstimates writes a harness-shaped estimate file and returns its path.
func writeEstimates(t *testing.T, name string, benchmarks map[string]float64) string {
	t.Helper()

	entries := make(map[string]any, len(benchmarks))
	for benchName, mean := range benchmarks {
		entries[benchName] = map[string]any{
			"criterion_estimates_v1": map[string]any{
				"mean": map[string]any{"point_estimate": mean},
			},
		}
	}
	data, err := json.Marshal(map[string]any{"benchmarks": entries})
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// writeRaw writes literal file content and returns its path.
func writeRaw(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// =============================================================================
// Root Command: verdicts and exit codes
// =============================================================================

func TestGate_RegressionFails(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"insert": 10.0, "lookup": 5.0})
	cand := writeEstimates(t, "cand.json", map[string]float64{"insert": 10.6, "lookup": 4.0})

	res := runGate(t, base, cand, "5.0")

	if res.err == nil {
		t.Fatal("expected a failing verdict")
	}
	if !errors.Is(res.err, ErrComparisonFailed) {
		t.Errorf("expected ErrComparisonFailed, got %v", res.err)
	}
	if res.exitCode() != ExitFailure {
		t.Errorf("exit code = %d, want %d", res.exitCode(), ExitFailure)
	}

	for _, want := range []string{
		"Benchmark comparison (ratios > 1.0 are slower):",
		"REGRESSION",
		"IMPROVEMENT",
		"Detected regressions over baseline (threshold 5.00%):",
		"  insert: 1.060x slower (+6.00%), candidate mean 10.600",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestGate_CleanRunPasses(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"serialize": 1.0})
	cand := writeEstimates(t, "cand.json", map[string]float64{"serialize": 1.02})

	res := runGate(t, base, cand, "5.0")

	if res.err != nil {
		t.Fatalf("expected success, got %v", res.err)
	}
	if res.exitCode() != ExitOK {
		t.Errorf("exit code = %d, want %d", res.exitCode(), ExitOK)
	}
	if !strings.Contains(res.stdout, "No regressions detected.") {
		t.Errorf("stdout missing closing line:\n%s", res.stdout)
	}
	if strings.Contains(res.stdout, "REGRESSION") {
		t.Errorf("neutral run must not print a regression tag:\n%s", res.stdout)
	}
}

func TestGate_MissingBenchmarkFailsFast(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"a": 1.0, "b": 2.0})
	cand := writeEstimates(t, "cand.json", map[string]float64{"b": 2.0})

	res := runGate(t, base, cand, "5.0")

	if !errors.Is(res.err, ErrComparisonFailed) {
		t.Fatalf("expected ErrComparisonFailed, got %v", res.err)
	}
	if res.exitCode() != ExitFailure {
		t.Errorf("exit code = %d, want %d", res.exitCode(), ExitFailure)
	}

	want := "missing benchmark in candidate: a\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestGate_DefaultThresholdIsFivePercent(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"parse": 100.0})

	// 2% slower: inside the default band.
	cand := writeEstimates(t, "cand.json", map[string]float64{"parse": 102.0})
	res := runGate(t, base, cand)
	if res.err != nil {
		t.Fatalf("2%% drift should pass at the default threshold, got %v", res.err)
	}

	// 10% slower: outside it.
	cand = writeEstimates(t, "cand.json", map[string]float64{"parse": 110.0})
	res = runGate(t, base, cand)
	if !errors.Is(res.err, ErrComparisonFailed) {
		t.Fatalf("10%% drift should fail at the default threshold, got %v", res.err)
	}
}

// =============================================================================
// Root Command: argument and input errors
// =============================================================================

func TestGate_WrongArgumentCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no_args", []string{}},
		{"one_arg", []string{"only-baseline.json"}},
		{"four_args", []string{"a.json", "b.json", "5.0", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runGate(t, tt.args...)
			if res.exitCode() != ExitUsage {
				t.Errorf("exit code = %d, want %d (err: %v)", res.exitCode(), ExitUsage, res.err)
			}
		})
	}
}

func TestGate_InvalidThreshold(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"x": 1.0})
	cand := writeEstimates(t, "cand.json", map[string]float64{"x": 1.0})

	res := runGate(t, base, cand, "not_a_number")

	if res.err == nil {
		t.Fatal("expected an error")
	}
	if res.exitCode() != ExitFailure {
		t.Errorf("exit code = %d, want %d (a bad value is not a usage error)", res.exitCode(), ExitFailure)
	}
	if errors.Is(res.err, ErrComparisonFailed) {
		t.Error("a bad threshold is a runtime failure, not a verdict")
	}
	if !strings.Contains(res.err.Error(), `invalid threshold "not_a_number"`) {
		t.Errorf("error should name the bad value, got %v", res.err)
	}
}

func TestGate_MalformedCandidate(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"x": 1.0})
	cand := writeRaw(t, "cand.json", `{}`)

	res := runGate(t, base, cand, "5.0")

	if res.err == nil {
		t.Fatal("expected an error")
	}
	if res.exitCode() != ExitFailure {
		t.Errorf("exit code = %d, want %d", res.exitCode(), ExitFailure)
	}
	if !errors.Is(res.err, estimates.ErrMissingBenchmarks) {
		t.Errorf("expected ErrMissingBenchmarks in chain, got %v", res.err)
	}
	if !strings.Contains(res.err.Error(), cand) {
		t.Errorf("error should identify the offending file, got %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("no report should print on a load failure, got:\n%s", res.stdout)
	}
}

func TestGate_UnreadableBaseline(t *testing.T) {
	cand := writeEstimates(t, "cand.json", map[string]float64{"x": 1.0})

	res := runGate(t, filepath.Join(t.TempDir(), "absent.json"), cand, "5.0")

	if res.exitCode() != ExitFailure {
		t.Errorf("exit code = %d, want %d", res.exitCode(), ExitFailure)
	}
	if !errors.Is(res.err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", res.err)
	}
}

// =============================================================================
// Root Command: output formats
// =============================================================================

func TestGate_JSONReport(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"insert": 10.0})
	cand := writeEstimates(t, "cand.json", map[string]float64{"insert": 10.6})

	res := runGate(t, "--format", "json", base, cand, "5.0")

	if !errors.Is(res.err, ErrComparisonFailed) {
		t.Fatalf("expected ErrComparisonFailed, got %v", res.err)
	}

	var envelope struct {
		Verdict     string   `json:"verdict"`
		Regressions []string `json:"regressions"`
		Rows        []struct {
			Name string `json:"name"`
		} `json:"rows"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &envelope); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, res.stdout)
	}
	if envelope.Verdict != "FAIL" {
		t.Errorf("verdict = %q, want FAIL", envelope.Verdict)
	}
	if len(envelope.Regressions) != 1 || envelope.Regressions[0] != "insert" {
		t.Errorf("regressions = %v, want [insert]", envelope.Regressions)
	}
}

func TestGate_JSONPretty(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"x": 1.0})
	cand := writeEstimates(t, "cand.json", map[string]float64{"x": 1.0})

	res := runGate(t, "--format", "json", "--pretty", base, cand, "5.0")

	if res.err != nil {
		t.Fatalf("expected success, got %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "{\n  \"id\"") {
		t.Errorf("pretty JSON should be indented:\n%s", res.stdout)
	}
}

func TestGate_InvalidFormat(t *testing.T) {
	base := writeEstimates(t, "base.json", map[string]float64{"x": 1.0})
	cand := writeEstimates(t, "cand.json", map[string]float64{"x": 1.0})

	res := runGate(t, "--format", "xml", base, cand, "5.0")

	if res.exitCode() != ExitFailure {
		t.Errorf("exit code = %d, want %d", res.exitCode(), ExitFailure)
	}
	if !strings.Contains(res.err.Error(), `invalid format "xml"`) {
		t.Errorf("error should name the bad format, got %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("an invalid format must fail before any report prints:\n%s", res.stdout)
	}
}

// =============================================================================
// Inspect Command
// =============================================================================

func TestInspect_Console(t *testing.T) {
	path := writeEstimates(t, "estimates.json", map[string]float64{"zz": 1.0, "alloc": 42.5})

	res := runGate(t, "inspect", path)

	if res.err != nil {
		t.Fatalf("inspect failed: %v", res.err)
	}

	want := fmt.Sprintf("Estimates in %s (2 benchmarks):\n", path) +
		fmt.Sprintf("  %-28s mean=%.3f\n", "alloc", 42.5) +
		fmt.Sprintf("  %-28s mean=%.3f\n", "zz", 1.0)
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestInspect_JSON(t *testing.T) {
	path := writeEstimates(t, "estimates.json", map[string]float64{"b": 2.0, "a": 1.0})

	res := runGate(t, "inspect", "--format", "json", path)

	if res.err != nil {
		t.Fatalf("inspect failed: %v", res.err)
	}

	var dump struct {
		Path       string `json:"path"`
		Benchmarks []struct {
			Name string  `json:"name"`
			Mean float64 `json:"mean"`
		} `json:"benchmarks"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &dump); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, res.stdout)
	}
	if dump.Path != path {
		t.Errorf("path = %q, want %q", dump.Path, path)
	}
	if len(dump.Benchmarks) != 2 || dump.Benchmarks[0].Name != "a" || dump.Benchmarks[1].Name != "b" {
		t.Errorf("benchmarks must be sorted ascending, got %v", dump.Benchmarks)
	}
}

func TestInspect_MalformedFile(t *testing.T) {
	path := writeRaw(t, "broken.json", `{not json`)

	res := runGate(t, "inspect", path)

	if res.exitCode() != ExitFailure {
		t.Errorf("exit code = %d, want %d", res.exitCode(), ExitFailure)
	}
	if !strings.Contains(res.err.Error(), path) {
		t.Errorf("error should identify the file, got %v", res.err)
	}
}

func TestInspect_WrongArgumentCount(t *testing.T) {
	res := runGate(t, "inspect")
	if res.exitCode() != ExitUsage {
		t.Errorf("exit code = %d, want %d (err: %v)", res.exitCode(), ExitUsage, res.err)
	}
}

// =============================================================================
// Config Command
// =============================================================================

func TestConfigInit_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchgate.yaml")

	res := runGate(t, "config", "init", "--path", path)
	if res.err != nil {
		t.Fatalf("config init failed: %v", res.err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file was not written: %v", err)
	}
	if !strings.Contains(string(data), "threshold_percent: 5") {
		t.Errorf("written config missing default threshold:\n%s", data)
	}
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchgate.yaml")
	if err := os.WriteFile(path, []byte("compare:\n  threshold_percent: 9.0\n"), 0o644); err != nil {
		t.Fatalf("failed to seed config: %v", err)
	}

	res := runGate(t, "config", "init", "--path", path)
	if res.err == nil {
		t.Fatal("expected an error without --force")
	}
	if !strings.Contains(res.err.Error(), "already exists") {
		t.Errorf("error should mention the existing file, got %v", res.err)
	}

	res = runGate(t, "config", "init", "--path", path, "--force")
	if res.err != nil {
		t.Fatalf("config init --force failed: %v", res.err)
	}
}

// =============================================================================
// Global surface
// =============================================================================

func TestRoot_HelpListsSubcommands(t *testing.T) {
	res := runGate(t, "--help")
	if res.err != nil {
		t.Fatalf("--help failed: %v", res.err)
	}
	for _, want := range []string{"Usage", "inspect", "config", "threshold_percent"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("help output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestRoot_VersionFlag(t *testing.T) {
	res := runGate(t, "--version")
	if res.err != nil {
		t.Fatalf("--version failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, Version) {
		t.Errorf("version output missing %q:\n%s", Version, res.stdout)
	}
}
