// Package report aggregates corpus scan results and batch outcomes
// into a coverage report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/renameio"
	"github.com/tarjemkit/tarjem/scan"
)

// Failure names a document that did not receive a full translation
// during a batch run, and why.
type Failure struct {
	Path   string
	Reason string
}

// Report is the coverage summary for one audit invocation. It is
// computed fresh each time; the file tree stays the single source of
// truth.
type Report struct {
	// TotalSource is the number of English source files.
	TotalSource int
	// TotalTarget is the number of existing translation files.
	TotalTarget int
	// Matched, Missing, Suspect are the per-class pair counts.
	Matched int
	Missing int
	Suspect int

	// MissingPaths and SuspectPaths list the affected source /
	// target paths, sorted lexicographically.
	MissingPaths []string
	SuspectPaths []string
	// SuspectReasons maps a suspect target path to the heuristic
	// reason it was flagged.
	SuspectReasons map[string]string

	// Failures lists documents a batch run could not fully
	// translate, sorted by path.
	Failures []Failure
}

// Build aggregates classified pairs into a Report.
func Build(pairs []scan.Pair) *Report {
	r := &Report{SuspectReasons: make(map[string]string)}
	for _, p := range pairs {
		r.TotalSource++
		switch p.Class {
		case scan.Missing:
			r.Missing++
			r.MissingPaths = append(r.MissingPaths, p.Source)
		case scan.Suspect:
			r.TotalTarget++
			r.Suspect++
			r.SuspectPaths = append(r.SuspectPaths, p.Target)
			r.SuspectReasons[p.Target] = p.Reason
		default:
			r.TotalTarget++
			r.Matched++
		}
	}
	sort.Strings(r.MissingPaths)
	sort.Strings(r.SuspectPaths)
	return r
}

// AddFailures merges batch failures into the report, keeping the list
// sorted by path.
func (r *Report) AddFailures(failures []Failure) {
	r.Failures = append(r.Failures, failures...)
	sort.Slice(r.Failures, func(i, j int) bool {
		return r.Failures[i].Path < r.Failures[j].Path
	})
}

// Coverage returns the matched share of source files in percent.
func (r *Report) Coverage() float64 {
	if r.TotalSource == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.TotalSource) * 100
}

// Render writes the human-readable report.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Translation Coverage Audit\n\n")
	fmt.Fprintf(&b, "- Total source files: %d\n", r.TotalSource)
	fmt.Fprintf(&b, "- Total translated files: %d\n", r.TotalTarget)
	fmt.Fprintf(&b, "- Matched: %d\n", r.Matched)
	fmt.Fprintf(&b, "- Missing: %d\n", r.Missing)
	fmt.Fprintf(&b, "- Suspect: %d\n", r.Suspect)
	fmt.Fprintf(&b, "- Coverage: %.1f%%\n", r.Coverage())

	if len(r.MissingPaths) > 0 {
		b.WriteString("\n## Missing translations\n\n")
		for _, p := range r.MissingPaths {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	if len(r.SuspectPaths) > 0 {
		b.WriteString("\n## Suspect translations\n\n")
		for _, p := range r.SuspectPaths {
			if reason := r.SuspectReasons[p]; reason != "" {
				fmt.Fprintf(&b, "- %s (%s)\n", p, reason)
			} else {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
	}

	if len(r.Failures) > 0 {
		b.WriteString("\n## Translation failures\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "- %s: %s\n", f.Path, f.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile renders the report and writes it atomically to path.
func (r *Report) WriteFile(path string) error {
	var b strings.Builder
	if err := r.Render(&b); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
