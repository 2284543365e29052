// Package validate runs the staged integrity checks over a parsed registry
// table and collects every violation into a report.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/joshuapare/codectable/internal/codec"
	"github.com/joshuapare/codectable/pkg/types"
)

// Options configures a validation pass.
type Options struct {
	// Schema selects the table generation and the checks it enables.
	Schema types.Schema

	// Catalog supplies alias groups and MIME sections. Nil uses the default.
	Catalog *types.Catalog

	// FilePath is copied into the report for display.
	FilePath string
}

// scanner holds the cross-row state of one validation pass.
type scanner struct {
	schema types.Schema
	cat    *types.Catalog
	report *types.Report

	headerOffsets []int

	names map[string]uint64 // name -> first code seen
	codes map[uint64]string // code -> first name seen

	lastCode uint64
	haveLast bool
}

// Table validates every data row of t. It never stops at the first
// violation: each stage that fails suppresses only the checks depending on
// it, and the scan always continues with the next row.
func Table(t *types.Table, opts Options) *types.Report {
	start := time.Now()

	cat := opts.Catalog
	if cat == nil {
		cat = types.DefaultCatalog()
	}

	s := &scanner{
		schema: opts.Schema,
		cat:    cat,
		report: types.NewReport(),
		names:  make(map[string]uint64),
		codes:  make(map[uint64]string),
	}
	s.report.FilePath = opts.FilePath
	s.report.Schema = opts.Schema.Name

	s.checkHeader(t.Header)
	for pos, row := range t.Rows {
		s.checkRow(types.RowNumber(pos), row)
	}

	s.report.ScanTime = time.Since(start)
	s.report.Finalize()
	return s.report
}

// checkHeader records column offsets for the alignment stage. The header is
// not data; a mismatch with the schema's column names is only a warning.
func (s *scanner) checkHeader(h types.Row) {
	if len(h.Offsets) == len(h.Cells) {
		s.headerOffsets = h.Offsets
	}
	if len(h.Cells) != s.schema.Arity() {
		s.report.Add(types.Diagnostic{
			Severity: types.SevWarning,
			Stage:    types.StageShape,
			Line:     h.Line,
			Issue:    fmt.Sprintf("header has %d columns, %s schema has %d", len(h.Cells), s.schema.Name, s.schema.Arity()),
		})
	}
	for i, want := range s.schema.Columns {
		got := h.Cell(i)
		if !strings.EqualFold(strings.TrimSpace(got), want) {
			s.report.Add(types.Diagnostic{
				Severity: types.SevWarning,
				Stage:    types.StageShape,
				Row:      0,
				Line:     h.Line,
				Issue:    fmt.Sprintf("header column %d is '%s', %s schema expects '%s'", i, got, s.schema.Name, want),
			})
		}
	}
}

func (s *scanner) fail(row types.Row, idx int, stage types.Stage, name, code, format string, args ...any) {
	s.report.Add(types.Diagnostic{
		Severity: types.SevError,
		Stage:    stage,
		Row:      idx,
		Line:     row.Line,
		Name:     name,
		Code:     code,
		Issue:    fmt.Sprintf(format, args...),
	})
}

func (s *scanner) checkRow(idx int, row types.Row) {
	if row.Separator() {
		s.report.Skipped++
		return
	}
	s.report.Rows++

	// Stage 1: shape. Nothing else can be read from a ragged row.
	if n := len(row.Cells); n != s.schema.Arity() {
		s.fail(row, idx, types.StageShape, row.Cell(0), "", "expected %d items, got %d", s.schema.Arity(), n)
		return
	}

	name := s.schema.RowName(row)
	tag := s.schema.RowTag(row)
	raw := s.schema.RowCode(row)

	// Stage 2: alignment.
	if s.schema.CheckAlignment {
		s.checkAlignment(idx, row)
	}

	// Stage 3: presence.
	hasName := name != ""
	if !hasName {
		s.fail(row, idx, types.StagePresence, name, raw, "empty protocol name for code '%s'", raw)
	}

	// Stage 4: lexical.
	if hasName && s.schema.NamePattern != nil && tag != types.TagMimetype && !s.schema.NamePattern.MatchString(name) {
		s.fail(row, idx, types.StageLexical, name, raw, "name '%s' violates naming restrictions (%s)", name, s.schema.NamePattern)
	}
	if !codec.Valid(raw) {
		s.fail(row, idx, types.StageLexical, name, raw, "code for '%s' does not look like a byte sequence: '%s'", name, raw)
		return
	}

	// Stage 5: numeric parse.
	code, err := codec.Decode(raw)
	if err != nil {
		s.fail(row, idx, types.StageParse, name, raw, "failed to parse code '%s' for '%s': %v", raw, name, err)
		return
	}

	// Stage 6: MIME range and tag.
	if s.schema.HasTag() {
		s.checkMime(idx, row, name, hasName, tag, raw, code)
	}

	// Stage 7: ordering.
	if s.schema.CheckOrder {
		if s.haveLast && code < s.lastCode {
			s.fail(row, idx, types.StageOrder, name, raw, "code 0x%x is out of order, previous code was 0x%x", code, s.lastCode)
		}
		s.lastCode = code
		s.haveLast = true
	}

	// Stage 8: uniqueness.
	if hasName {
		s.checkUnique(idx, row, name, raw, code)
	}

	// Stage 9: reserved range.
	if s.schema.CheckReserved && types.InPrivateUse(code) {
		s.fail(row, idx, types.StageReserved, name, raw, "code 0x%x is in the private use area 0x%x-0x%x",
			code, types.PrivateUseStart, types.PrivateUseEnd-1)
	}
}

// checkAlignment compares each non-empty cell's offset with the header's.
// Empty cells have no visible start and are not compared. One diagnostic is
// reported per row, for the first misaligned column.
func (s *scanner) checkAlignment(idx int, row types.Row) {
	if s.headerOffsets == nil || len(row.Offsets) != len(row.Cells) {
		return
	}
	for i, cell := range row.Cells {
		if cell == "" || i >= len(s.headerOffsets) {
			continue
		}
		if row.Offsets[i] != s.headerOffsets[i] {
			col := s.schema.Columns[i]
			s.fail(row, idx, types.StageAlignment, s.schema.RowName(row), s.schema.RowCode(row),
				"column '%s' starts at offset %d, header starts it at %d", col, row.Offsets[i], s.headerOffsets[i])
			return
		}
	}
}

func (s *scanner) checkMime(idx int, row types.Row, name string, hasName bool, tag, raw string, code uint64) {
	inRange := types.InMimeRange(code)
	tagged := tag == types.TagMimetype

	switch {
	case inRange && !tagged:
		s.fail(row, idx, types.StageMime, name, raw, "code 0x%x is in the MIME range but has tag '%s'", code, tag)
		return
	case !inRange && tagged:
		s.fail(row, idx, types.StageMime, name, raw, "code 0x%x is not in the MIME range but has tag '%s'", code, types.TagMimetype)
		return
	case !inRange:
		return
	}

	if !hasName {
		return
	}

	section, subtype, hasSubtype := types.SplitMediaType(name)
	sec, ok := s.cat.Section(section)
	if !ok {
		s.fail(row, idx, types.StageMime, name, raw, "not a known mimetype %s", name)
		return
	}
	if !hasSubtype {
		if code != sec.Base {
			s.fail(row, idx, types.StageMime, name, raw, "expected code 0x%x for section '%s', got 0x%x", sec.Base, section, code)
		}
		return
	}
	if subtype == "" || strings.Contains(subtype, "/") {
		s.fail(row, idx, types.StageMime, name, raw, "invalid mimetype name %s", name)
		return
	}
	if !sec.Contains(code) {
		s.fail(row, idx, types.StageMime, name, raw, "expected mimetype '%s' to be in range 0x%x-0x%x, got 0x%x",
			name, sec.Base, sec.Last(), code)
	}
}

// checkUnique reports repeated names and repeated codes. A repeated name
// suppresses the code check for the row; a code shared within an alias group
// is accepted without updating the code map.
func (s *scanner) checkUnique(idx int, row types.Row, name, raw string, code uint64) {
	if prev, dup := s.names[name]; dup {
		s.fail(row, idx, types.StageUnique, name, raw, "found duplicate %s: 0x%x and 0x%x", name, code, prev)
		return
	}
	s.names[name] = code

	other, dup := s.codes[code]
	if !dup {
		s.codes[code] = name
		return
	}
	if s.cat.Aliased(name, other) {
		return
	}
	s.fail(row, idx, types.StageUnique, name, raw, "found duplicate for code 0x%x for '%s' and '%s'", code, other, name)
}

// Validate runs Table with the given schema and catalog.
func Validate(t *types.Table, schema types.Schema, cat *types.Catalog) *types.Report {
	return Table(t, Options{Schema: schema, Catalog: cat})
}
