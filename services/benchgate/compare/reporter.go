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
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Reporter renders a comparison report to some destination.
type Reporter interface {
	// Report renders rep. Implementations must not mutate it.
	Report(rep *Report) error
}

// -----------------------------------------------------------------------------
// Console
// -----------------------------------------------------------------------------

// Status tag colors match the rest of the CLI surface.
var (
	regressionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	improvementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// ConsoleReporter writes the human-readable comparison table.
//
// Description:
//
//	ConsoleReporter reproduces the canonical gate output. Missing
//	benchmarks short-circuit the report: one line per missing name and
//	nothing else. Otherwise a header, one aligned row per benchmark, and a
//	closing section that either lists regressions or states that none were
//	detected. With color enabled only the status tags are styled; the
//	content bytes are identical either way.
//
// Thread Safety: Safe for concurrent use only if out is.
type ConsoleReporter struct {
	out   io.Writer
	color bool
}

// NewConsoleReporter creates a console reporter writing to out.
func NewConsoleReporter(out io.Writer, color bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, color: color}
}

// Report writes the comparison table to the reporter's writer.
func (r *ConsoleReporter) Report(rep *Report) error {
	if len(rep.Missing) > 0 {
		for _, name := range rep.Missing {
			if _, err := fmt.Fprintf(r.out, "missing benchmark in candidate: %s\n", name); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := fmt.Fprintln(r.out, "Benchmark comparison (ratios > 1.0 are slower):"); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		_, err := fmt.Fprintf(r.out, "  %-28s %6.3fx  (%+7.2f%%)  baseline=%.3f  candidate=%.3f %s\n",
			row.Name, row.Ratio, row.DeltaPercent, row.BaselineMean, row.CandidateMean,
			r.renderTag(row.Classification))
		if err != nil {
			return err
		}
	}

	if len(rep.Regressions) > 0 {
		if _, err := fmt.Fprintf(r.out, "\nDetected regressions over baseline (threshold %.2f%%):\n", rep.ThresholdPercent); err != nil {
			return err
		}
		for _, row := range rep.Regressions {
			_, err := fmt.Fprintf(r.out, "  %s: %.3fx slower (+%.2f%%), candidate mean %.3f\n",
				row.Name, row.Ratio, row.DeltaPercent, row.CandidateMean)
			if err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintln(r.out, "\nNo regressions detected.")
	return err
}

// renderTag returns the status tag, styled when color is on. The tag sits
// at end of line so styling never disturbs column alignment.
func (r *ConsoleReporter) renderTag(c Classification) string {
	tag := c.Tag()
	if !r.color || tag == "" {
		return tag
	}
	switch c {
	case Regression:
		return regressionStyle.Render(tag)
	case Improvement:
		return improvementStyle.Render(tag)
	default:
		return tag
	}
}

// -----------------------------------------------------------------------------
// JSON
// -----------------------------------------------------------------------------

// jsonFloat marshals non-finite values as strings. JSON has no encoding for
// Inf or NaN and encoding/json rejects them outright.
type jsonFloat float64

// MarshalJSON implements json.Marshaler.
func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	default:
		return json.Marshal(v)
	}
}

type jsonRow struct {
	Name           string    `json:"name"`
	BaselineMean   jsonFloat `json:"baseline_mean"`
	CandidateMean  jsonFloat `json:"candidate_mean"`
	Ratio          jsonFloat `json:"ratio"`
	DeltaPercent   jsonFloat `json:"delta_percent"`
	Classification string    `json:"classification"`
}

type jsonReport struct {
	ID               string    `json:"id"`
	GeneratedAt      string    `json:"generated_at"`
	ThresholdPercent float64   `json:"threshold_percent"`
	Verdict          string    `json:"verdict"`
	Rows             []jsonRow `json:"rows"`
	Missing          []string  `json:"missing"`
	Regressions      []string  `json:"regressions"`
}

// JSONReporter writes a machine-readable report envelope.
//
// Description:
//
//	JSONReporter emits one JSON document per report: a unique id, a UTC
//	timestamp, the threshold, the verdict, all rows (ascending by name),
//	the missing names, and the regression names. The id and timestamp are
//	assigned at render time, so they are the only non-deterministic bytes
//	in the output.
//
// Thread Safety: Safe for concurrent use only if out is.
type JSONReporter struct {
	out    io.Writer
	pretty bool
}

// NewJSONReporter creates a JSON reporter writing to out.
func NewJSONReporter(out io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{out: out, pretty: pretty}
}

// Report encodes the report envelope to the reporter's writer.
func (r *JSONReporter) Report(rep *Report) error {
	env := jsonReport{
		ID:               uuid.NewString(),
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
		ThresholdPercent: rep.ThresholdPercent,
		Verdict:          rep.Verdict(),
		Rows:             make([]jsonRow, 0, len(rep.Rows)),
		Missing:          make([]string, 0, len(rep.Missing)),
		Regressions:      make([]string, 0, len(rep.Regressions)),
	}
	for _, row := range rep.Rows {
		env.Rows = append(env.Rows, jsonRow{
			Name:           row.Name,
			BaselineMean:   jsonFloat(row.BaselineMean),
			CandidateMean:  jsonFloat(row.CandidateMean),
			Ratio:          jsonFloat(row.Ratio),
			DeltaPercent:   jsonFloat(row.DeltaPercent),
			Classification: row.Classification.String(),
		})
	}
	env.Missing = append(env.Missing, rep.Missing...)
	for _, row := range rep.Regressions {
		env.Regressions = append(env.Regressions, row.Name)
	}

	enc := json.NewEncoder(r.out)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(env)
}
