// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package estimates loads benchmark estimate files produced by criterion-style
// benchmark runs.
//
// An estimate file is a JSON document whose benchmarks object maps benchmark
// names to statistical estimates. Only the mean point estimate is extracted;
// every other statistic in the document is ignored. The nested field names
// (benchmarks -> criterion_estimates_v1 -> mean -> point_estimate) are an
// interop contract with the external benchmark harness and must not change.
package estimates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrMissingBenchmarks indicates the document has no 'benchmarks' object.
	ErrMissingBenchmarks = errors.New("missing 'benchmarks' key")

	// ErrMissingMean indicates a benchmark entry has no mean point estimate.
	ErrMissingMean = errors.New("missing mean point estimate")
)

// MalformedInputError reports an estimate file that could not be decoded.
//
// Description:
//
//	MalformedInputError identifies the offending file and, when the failure
//	is scoped to a single entry, the offending benchmark name. It wraps the
//	underlying cause so callers can test for ErrMissingBenchmarks and
//	ErrMissingMean with errors.Is.
//
// Thread Safety: Immutable after creation.
type MalformedInputError struct {
	// Path is the estimate file that failed to decode.
	Path string

	// Benchmark is the entry that failed, or empty for document-level failures.
	Benchmark string

	// Err is the underlying cause.
	Err error
}

// Error returns a message identifying the file and, if known, the benchmark.
func (e *MalformedInputError) Error() string {
	if e.Benchmark != "" {
		return fmt.Sprintf("%s: missing mean for benchmark '%s'", e.Path, e.Benchmark)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// -----------------------------------------------------------------------------
// Types
// -----------------------------------------------------------------------------

// Set maps benchmark names to their mean point estimates.
//
// Description:
//
//	Set is the in-memory form of one estimate file. Values are opaque
//	magnitudes (typically nanoseconds per iteration) and are never
//	validated or normalized; comparison logic treats them as-is.
//
// Thread Safety: Treated as immutable after Load returns.
type Set map[string]float64

// Names returns the benchmark names in the set, in unspecified order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

// The wire shapes below mirror the harness output. Pointer fields
// distinguish absent or null nodes from zero values.
type document struct {
	Benchmarks map[string]entry `json:"benchmarks"`
}

type entry struct {
	Estimates *estimatesV1 `json:"criterion_estimates_v1"`
}

type estimatesV1 struct {
	Mean *statistic `json:"mean"`
}

type statistic struct {
	PointEstimate *float64 `json:"point_estimate"`
}

// -----------------------------------------------------------------------------
// Loading
// -----------------------------------------------------------------------------

// Load reads and decodes a single estimate file.
//
// Description:
//
//	Load parses the JSON document at path and extracts the mean point
//	estimate for every benchmark entry. The result is all-or-nothing: any
//	malformed entry fails the whole load and no partial Set is returned.
//	An empty benchmarks object decodes to an empty, non-nil Set.
//
// Inputs:
//   - path: Filesystem path of the estimate file.
//
// Outputs:
//   - Set: Benchmark name to mean point estimate. Nil on error.
//   - error: A *MalformedInputError for decode failures (unparsable JSON,
//     absent benchmarks object, entry without a mean). File-read failures
//     are returned as ordinary wrapped errors.
//
// Thread Safety: Stateless and safe for concurrent use.
func Load(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading estimates file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &MalformedInputError{Path: path, Err: err}
	}

	// A nil map means the key was absent or explicitly null. An empty
	// object decodes to an empty non-nil map and is legal.
	if doc.Benchmarks == nil {
		return nil, &MalformedInputError{Path: path, Err: ErrMissingBenchmarks}
	}

	set := make(Set, len(doc.Benchmarks))
	for name, e := range doc.Benchmarks {
		if e.Estimates == nil || e.Estimates.Mean == nil || e.Estimates.Mean.PointEstimate == nil {
			return nil, &MalformedInputError{Path: path, Benchmark: name, Err: ErrMissingMean}
		}
		set[name] = *e.Estimates.Mean.PointEstimate
	}
	return set, nil
}

// LoadPair loads a baseline and a candidate estimate file concurrently.
//
// Description:
//
//	LoadPair runs two Load calls in parallel. The loads are independent
//	and side-effect-free, so ordering does not matter; the first failure
//	cancels the pair and no partial result is returned.
//
// Inputs:
//   - ctx: Cancels the pair load. Checked before each file is read.
//   - basePath: Baseline estimate file.
//   - candPath: Candidate estimate file.
//
// Outputs:
//   - Set: Baseline estimates. Nil on error.
//   - Set: Candidate estimates. Nil on error.
//   - error: The first load failure, or the context error if cancelled.
//
// Thread Safety: Stateless and safe for concurrent use.
func LoadPair(ctx context.Context, basePath, candPath string) (Set, Set, error) {
	var base, cand Set

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		s, err := Load(basePath)
		if err != nil {
			return err
		}
		base = s
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		s, err := Load(candPath)
		if err != nil {
			return err
		}
		cand = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return base, cand, nil
}
