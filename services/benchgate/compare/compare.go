// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package compare

import (
	"math"
	"sort"

	"github.com/AleutianAI/benchgate/services/benchgate/estimates"
)

// Compare classifies every baseline benchmark against the candidate.
//
// Description:
//
//	Compare walks the baseline benchmarks in ascending name order and
//	produces one Row per benchmark. If any baseline benchmark is absent
//	from the candidate, the comparison is terminal: the Report carries the
//	sorted missing names and nothing else, since a partial comparison
//	could mask a regression in the dropped benchmark. Candidate-only
//	benchmarks are ignored.
//
// Inputs:
//   - base: Baseline estimates. May be empty.
//   - cand: Candidate estimates. May be empty.
//   - thresholdPercent: Regression threshold in percent. Any finite value
//     is accepted; the inequalities are strict, so a zero threshold flags
//     every nonzero delta and a negative threshold flags everything.
//
// Outputs:
//   - *Report: Never nil. Deterministic for identical inputs.
//
// Thread Safety: Pure function, safe for concurrent use.
func Compare(base, cand estimates.Set, thresholdPercent float64) *Report {
	rep := &Report{ThresholdPercent: thresholdPercent}

	names := base.Names()
	sort.Strings(names)

	for _, name := range names {
		if _, ok := cand[name]; !ok {
			rep.Missing = append(rep.Missing, name)
		}
	}
	if len(rep.Missing) > 0 {
		return rep
	}

	rep.Rows = make([]Row, 0, len(names))
	for _, name := range names {
		baseMean := base[name]
		candMean := cand[name]

		// A zero baseline gives +Inf regardless of the candidate mean.
		// The slowdown is unquantifiable, so it surfaces as a regression
		// under any finite threshold rather than passing silently.
		ratio := math.Inf(1)
		if baseMean != 0 {
			ratio = candMean / baseMean
		}
		deltaPercent := (ratio - 1) * 100

		classification := Neutral
		switch {
		case deltaPercent > thresholdPercent:
			classification = Regression
		case deltaPercent < -thresholdPercent:
			classification = Improvement
		}

		row := Row{
			Name:           name,
			BaselineMean:   baseMean,
			CandidateMean:  candMean,
			Ratio:          ratio,
			DeltaPercent:   deltaPercent,
			Classification: classification,
		}
		rep.Rows = append(rep.Rows, row)
		if classification == Regression {
			rep.Regressions = append(rep.Regressions, row)
		}
	}
	return rep
}
