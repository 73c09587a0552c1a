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

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// Classification labels a benchmark's movement relative to the baseline.
type Classification int

const (
	// Neutral indicates the delta stayed within the threshold band.
	Neutral Classification = iota

	// Regression indicates the candidate slowed down past the threshold.
	Regression

	// Improvement indicates the candidate sped up past the threshold.
	Improvement
)

// String returns the canonical label for the classification.
func (c Classification) String() string {
	switch c {
	case Neutral:
		return "NEUTRAL"
	case Regression:
		return "REGRESSION"
	case Improvement:
		return "IMPROVEMENT"
	default:
		return "UNKNOWN"
	}
}

// Tag returns the trailing status tag for console rows. Neutral rows carry
// no tag.
func (c Classification) Tag() string {
	if c == Neutral {
		return ""
	}
	return c.String()
}

// -----------------------------------------------------------------------------
// Report
// -----------------------------------------------------------------------------

// Row holds the comparison result for a single benchmark.
//
// Description:
//
//	Row captures both the raw means and the derived ratio and delta so
//	reporters never re-derive values. Ratio is +Inf when the baseline mean
//	is zero; DeltaPercent follows it.
//
// Thread Safety: Immutable after creation.
type Row struct {
	// Name is the benchmark name.
	Name string

	// BaselineMean is the baseline mean point estimate.
	BaselineMean float64

	// CandidateMean is the candidate mean point estimate.
	CandidateMean float64

	// Ratio is CandidateMean / BaselineMean, or +Inf for a zero baseline.
	Ratio float64

	// DeltaPercent is (Ratio - 1) * 100.
	DeltaPercent float64

	// Classification is the threshold verdict for this row.
	Classification Classification
}

// Report holds the full result of one baseline/candidate comparison.
//
// Description:
//
//	Report is the comparator's sole output. When Missing is non-empty the
//	comparison stopped before computing any ratios, so Rows and Regressions
//	are empty. Rows and Missing are ordered ascending by benchmark name;
//	Regressions preserves row order.
//
// Thread Safety: Immutable after creation.
type Report struct {
	// ThresholdPercent is the regression threshold the comparison used.
	ThresholdPercent float64

	// Rows holds one entry per baseline benchmark, ascending by name.
	// Empty when Missing is non-empty.
	Rows []Row

	// Missing lists baseline benchmarks absent from the candidate,
	// ascending by name.
	Missing []string

	// Regressions holds the Rows classified as Regression, in row order.
	Regressions []Row
}

// Failed reports whether the comparison should gate the build.
func (r *Report) Failed() bool {
	return len(r.Missing) > 0 || len(r.Regressions) > 0
}

// Verdict returns "FAIL" when the report failed and "PASS" otherwise.
func (r *Report) Verdict() string {
	if r.Failed() {
		return "FAIL"
	}
	return "PASS"
}

// Counts returns the number of rows per classification.
func (r *Report) Counts() (regressions, improvements, neutral int) {
	for _, row := range r.Rows {
		switch row.Classification {
		case Regression:
			regressions++
		case Improvement:
			improvements++
		default:
			neutral++
		}
	}
	return regressions, improvements, neutral
}
