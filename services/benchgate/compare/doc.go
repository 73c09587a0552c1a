// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package compare classifies candidate benchmark results against a baseline.
//
// # Overview
//
// The compare package is the decision core of the regression gate. Given two
// estimate sets (baseline and candidate) and a threshold percentage, it
// produces a Report that classifies every benchmark as NEUTRAL, REGRESSION,
// or IMPROVEMENT and carries an overall PASS/FAIL verdict. Reporters then
// render the Report for humans or machines without re-deriving any result.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                        Comparison Pipeline                        │
//	├──────────────────────────────────────────────────────────────────┤
//	│                                                                   │
//	│   baseline Set ──┐                                                │
//	│                  ├──▶  Compare  ──▶  Report  ──▶  Reporter        │
//	│  candidate Set ──┘        │             │             │           │
//	│                           │             │      ┌──────┴──────┐    │
//	│                     per-benchmark   verdict    │  Console    │    │
//	│                     classification  PASS/FAIL  │  JSON       │    │
//	│                                                └─────────────┘    │
//	│                                                                   │
//	└──────────────────────────────────────────────────────────────────┘
//
// # Semantics
//
// For every benchmark in the baseline:
//
//   - ratio = candidate mean / baseline mean (ratios above 1.0 are slower)
//   - delta percent = (ratio - 1) * 100
//   - REGRESSION when delta percent exceeds the threshold (strict)
//   - IMPROVEMENT when delta percent is below the negated threshold (strict)
//   - NEUTRAL otherwise
//
// A zero baseline mean yields a ratio of +Inf, which classifies as a
// regression under any finite threshold. Benchmarks present in the
// baseline but absent from the candidate are terminal: the Report carries
// only the missing names, no ratios are computed, and the verdict is FAIL.
// Benchmarks that exist only in the candidate are ignored.
//
// # Usage
//
//	rep := compare.Compare(base, cand, 5.0)
//	if err := compare.NewConsoleReporter(os.Stdout, false).Report(rep); err != nil {
//	    return err
//	}
//	if rep.Failed() {
//	    os.Exit(1)
//	}
//
// # Determinism
//
// Compare is a pure function. Rows and missing names are always ordered
// ascending by benchmark name, so two runs over identical inputs produce
// byte-identical console output.
//
// # Thread Safety
//
// Compare is stateless. Reports are immutable once returned. Reporters are
// safe for concurrent use only if their underlying writers are.
package compare
