package types

import (
	"fmt"
	"regexp"
	"strings"
)

// ============================================================================
// Registry Code Space Constants
// ============================================================================

const (
	// MimeRangeStart is the first code of the range reserved for mimetype rows.
	MimeRangeStart = 0x200000

	// MimeRangeEnd is one past the last code of the MIME range.
	MimeRangeEnd = 0x300000

	// PrivateUseStart is the first code of the Private Use Area.
	PrivateUseStart = 0x300000

	// PrivateUseEnd is one past the last code of the Private Use Area.
	PrivateUseEnd = 0x400000

	// SectionSpan is the number of codes owned by one MIME section.
	SectionSpan = 0x10000

	// TagMimetype marks rows whose code must lie in the MIME range.
	TagMimetype = "mimetype"

	// SectionMarker starts a first-column section header row.
	SectionMarker = '#'

	// DefaultStatus is the status given to rows created by the synchronizer
	// when the schema carries a status column.
	DefaultStatus = "draft"
)

// Column names as they appear in table headers.
const (
	ColName        = "name"
	ColTag         = "tag"
	ColCode        = "code"
	ColStatus      = "status"
	ColDescription = "description"
)

// Schema generation names.
const (
	SchemaLegacy = "legacy"
	SchemaTagged = "tagged"
	SchemaStrict = "strict"
)

// namePattern is the identifier rule of the strict generation.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]+$`)

// Schema is one generation of the table format: the column layout plus the
// set of checks the validator runs against it. Column indices are -1 when the
// generation has no such column.
type Schema struct {
	// Name identifies the generation ("legacy", "tagged", "strict").
	Name string

	// Columns are the header names in order; len(Columns) is the arity.
	Columns []string

	NameCol        int
	TagCol         int
	CodeCol        int
	StatusCol      int
	DescriptionCol int

	// CheckAlignment compares every cell offset against the header's.
	CheckAlignment bool

	// CheckOrder requires codes to be non-decreasing top to bottom.
	CheckOrder bool

	// CheckReserved rejects codes in the Private Use Area.
	CheckReserved bool

	// NamePattern, when set, is matched against every non-mimetype name.
	NamePattern *regexp.Regexp
}

// Arity returns the number of columns each row must have.
func (s Schema) Arity() int {
	return len(s.Columns)
}

// HasTag reports whether the generation carries a tag column.
func (s Schema) HasTag() bool {
	return s.TagCol >= 0
}

// RowName returns the row's name.
func (s Schema) RowName(r Row) string { return r.Cell(s.NameCol) }

// RowTag returns the row's tag, or "" when the generation has no tag column.
func (s Schema) RowTag(r Row) string { return r.Cell(s.TagCol) }

// RowCode returns the row's raw code text.
func (s Schema) RowCode(r Row) string { return r.Cell(s.CodeCol) }

// RowDescription returns the row's description text.
func (s Schema) RowDescription(r Row) string { return r.Cell(s.DescriptionCol) }

// NewRow builds a data row for this schema. Columns the schema lacks are
// ignored; status is DefaultStatus when the schema has a status column.
func (s Schema) NewRow(name, tag, code, description string) Row {
	cells := make([]string, s.Arity())
	set := func(i int, v string) {
		if i >= 0 && i < len(cells) {
			cells[i] = v
		}
	}
	set(s.NameCol, name)
	set(s.TagCol, tag)
	set(s.CodeCol, code)
	set(s.StatusCol, DefaultStatus)
	set(s.DescriptionCol, description)
	return Row{Cells: cells}
}

// Header returns a header row for this schema.
func (s Schema) Header() Row {
	return NewRow(append([]string(nil), s.Columns...)...)
}

// LegacySchema returns the earliest generation: name, code, description.
// No tag column, so MIME checks cannot apply.
func LegacySchema() Schema {
	return Schema{
		Name:           SchemaLegacy,
		Columns:        []string{ColName, ColCode, ColDescription},
		NameCol:        0,
		TagCol:         -1,
		CodeCol:        1,
		StatusCol:      -1,
		DescriptionCol: 2,
	}
}

// TaggedSchema returns the four-column generation: name, tag, code,
// description. Shape, presence, code format, MIME and uniqueness checks.
func TaggedSchema() Schema {
	return Schema{
		Name:           SchemaTagged,
		Columns:        []string{ColName, ColTag, ColCode, ColDescription},
		NameCol:        0,
		TagCol:         1,
		CodeCol:        2,
		StatusCol:      -1,
		DescriptionCol: 3,
	}
}

// StrictSchema returns the canonical five-column generation with every
// check enabled.
func StrictSchema() Schema {
	return Schema{
		Name:           SchemaStrict,
		Columns:        []string{ColName, ColTag, ColCode, ColStatus, ColDescription},
		NameCol:        0,
		TagCol:         1,
		CodeCol:        2,
		StatusCol:      3,
		DescriptionCol: 4,
		CheckAlignment: true,
		CheckOrder:     true,
		CheckReserved:  true,
		NamePattern:    namePattern,
	}
}

// DefaultSchema returns the canonical generation.
func DefaultSchema() Schema {
	return StrictSchema()
}

// SchemaByName resolves a generation by name. The empty string selects the
// default generation.
func SchemaByName(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultSchema(), nil
	case SchemaLegacy:
		return LegacySchema(), nil
	case SchemaTagged:
		return TaggedSchema(), nil
	case SchemaStrict:
		return StrictSchema(), nil
	default:
		return Schema{}, fmt.Errorf("%w: %q (must be legacy, tagged, or strict)", ErrUnknownSchema, name)
	}
}

// InMimeRange reports whether code lies in the range reserved for mimetypes.
func InMimeRange(code uint64) bool {
	return code >= MimeRangeStart && code < MimeRangeEnd
}

// InPrivateUse reports whether code lies in the Private Use Area.
func InPrivateUse(code uint64) bool {
	return code >= PrivateUseStart && code < PrivateUseEnd
}
