package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Diagnostic System
// -----------------------------------------------------------------------------
//
// Validation collects every schema violation instead of stopping at the first
// one. Each violation is a Diagnostic tagged with the pipeline stage that
// produced it; a Report gathers them with summary counts and renders them as
// "row N: reason" lines or JSON.

// Severity classifies how serious a diagnostic issue is.
type Severity int

const (
	SevWarning Severity = iota // Reported, does not fail validation
	SevError                   // Schema violation, fails validation
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Stage identifies the validation stage that produced a diagnostic.
type Stage int

const (
	StageShape     Stage = iota + 1 // Column count
	StageAlignment                  // Cell offsets vs header
	StagePresence                   // Non-empty name
	StageLexical                    // Code and name patterns
	StageParse                      // Code decoding
	StageMime                       // MIME range and tag consistency
	StageOrder                      // Non-decreasing codes
	StageUnique                     // Duplicate names and codes
	StageReserved                   // Private Use Area
)

func (s Stage) String() string {
	switch s {
	case StageShape:
		return "SHAPE"
	case StageAlignment:
		return "ALIGNMENT"
	case StagePresence:
		return "PRESENCE"
	case StageLexical:
		return "LEXICAL"
	case StageParse:
		return "PARSE"
	case StageMime:
		return "MIME"
	case StageOrder:
		return "ORDER"
	case StageUnique:
		return "UNIQUE"
	case StageReserved:
		return "RESERVED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the stage by name in JSON reports.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a single schema violation found in the table.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Stage    Stage    `json:"stage"`

	// Location
	Row  int `json:"row"`            // Record index, header is row 0
	Line int `json:"line,omitempty"` // 1-based source line, 0 for in-memory rows

	// Subject
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`

	Issue string `json:"issue"` // Human-readable reason
}

// String renders the diagnostic as "row N: reason".
func (d Diagnostic) String() string {
	return fmt.Sprintf("row %d: %s", d.Row, d.Issue)
}

// Report collects all diagnostics found during a validation pass.
type Report struct {
	// Metadata
	FilePath string        `json:"file_path,omitempty"`
	Schema   string        `json:"schema"`
	Rows     int           `json:"rows"`    // Data rows examined
	Skipped  int           `json:"skipped"` // Separator rows skipped
	ScanTime time.Duration `json:"scan_time"`

	Diagnostics []Diagnostic `json:"diagnostics"`

	Summary ReportSummary `json:"summary"`
}

// ReportSummary provides quick statistics.
type ReportSummary struct {
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	ByStage  map[Stage]int `json:"by_stage,omitempty"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		Diagnostics: []Diagnostic{},
		Summary:     ReportSummary{ByStage: make(map[Stage]int)},
	}
}

// Add appends a diagnostic and updates the summary.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	switch d.Severity {
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	}
	r.Summary.ByStage[d.Stage]++
}

// Finalize orders diagnostics by row, keeping stage order within a row.
func (r *Report) Finalize() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		return r.Diagnostics[i].Row < r.Diagnostics[j].Row
	})
}

// OK reports whether validation passed.
func (r *Report) OK() bool {
	return r.Summary.Errors == 0
}

// ForRow returns the diagnostics reported against a row index.
func (r *Report) ForRow(row int) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Row == row {
			out = append(out, d)
		}
	}
	return out
}

// ByStage returns the diagnostics produced by one stage.
func (r *Report) ByStage(stage Stage) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Stage == stage {
			out = append(out, d)
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Output Formatters
// -----------------------------------------------------------------------------

// FormatJSON returns the report as formatted JSON (2-space indentation).
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatLines returns one "row N: reason" line per diagnostic.
func (r *Report) FormatLines() string {
	var b strings.Builder
	for _, d := range r.Diagnostics {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatSummary returns a short human-readable summary.
func (r *Report) FormatSummary() string {
	var b strings.Builder
	if r.FilePath != "" {
		fmt.Fprintf(&b, "File:     %s\n", r.FilePath)
	}
	fmt.Fprintf(&b, "Schema:   %s\n", r.Schema)
	fmt.Fprintf(&b, "Rows:     %d (%d separators skipped)\n", r.Rows, r.Skipped)
	fmt.Fprintf(&b, "Errors:   %d\n", r.Summary.Errors)
	if r.Summary.Warnings > 0 {
		fmt.Fprintf(&b, "Warnings: %d\n", r.Summary.Warnings)
	}

	stages := make([]Stage, 0, len(r.Summary.ByStage))
	for s := range r.Summary.ByStage {
		stages = append(stages, s)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })
	for _, s := range stages {
		fmt.Fprintf(&b, "  %-10s %d\n", s, r.Summary.ByStage[s])
	}
	return b.String()
}
