package types

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTable indicates the table text could not be parsed into rows.
	ErrMalformedTable = errors.New("malformed table")
	// ErrInvalidCodeFormat indicates a code is not "0x" followed by hex byte pairs.
	ErrInvalidCodeFormat = errors.New("invalid code format")
	// ErrConsistency indicates existing mimetype rows disagree with their expected codes.
	ErrConsistency = errors.New("mimetype block inconsistent")
	// ErrLayout indicates mimetype rows are not one contiguous block.
	ErrLayout = errors.New("mimetype block layout")
	// ErrUnknownSection indicates a media type names a section outside the catalog.
	ErrUnknownSection = errors.New("unknown mime section")
	// ErrSourceIdentity indicates the external document is not the media-types registry.
	ErrSourceIdentity = errors.New("unexpected source registry")
	// ErrInvalidMediaType indicates an externally sourced name is not "section/subtype".
	ErrInvalidMediaType = errors.New("invalid media type")
	// ErrNoTagColumn indicates the schema cannot hold mimetype rows.
	ErrNoTagColumn = errors.New("schema has no tag column")
	// ErrUnknownSchema indicates a schema generation name was not recognised.
	ErrUnknownSchema = errors.New("unknown schema")
)

// MalformedTableError reports where table parsing failed.
type MalformedTableError struct {
	Line    int // 1-based line, 0 if unknown
	Column  int // 1-based byte column, 0 if unknown
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *MalformedTableError) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed table%s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed table%s: %s", loc, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *MalformedTableError) Unwrap() error { return e.Cause }

// Is matches ErrMalformedTable.
func (e *MalformedTableError) Is(target error) bool { return target == ErrMalformedTable }

// InvalidCodeFormatError reports a code string that could not be decoded.
type InvalidCodeFormatError struct {
	Code  string
	Cause error
}

// Error implements the error interface.
func (e *InvalidCodeFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid code %q: %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("invalid code %q: expected 0x followed by hex byte pairs", e.Code)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *InvalidCodeFormatError) Unwrap() error { return e.Cause }

// Is matches ErrInvalidCodeFormat.
func (e *InvalidCodeFormatError) Is(target error) bool { return target == ErrInvalidCodeFormat }

// ConsistencyError reports an existing mimetype row whose code does not match
// what replaying the block expects.
type ConsistencyError struct {
	Row     int // diagnostic row index
	Name    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("row %d (%s): %s: %v", e.Row, e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("row %d (%s): %s", e.Row, e.Name, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ConsistencyError) Unwrap() error { return e.Cause }

// Is matches ErrConsistency.
func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }

// LayoutError reports a mimetype row found outside the contiguous block.
type LayoutError struct {
	Row        int
	Name       string
	BlockStart int
	BlockEnd   int
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("row %d (%s): mimetype row outside the mimetype block (rows %d-%d)",
		e.Row, e.Name, e.BlockStart, e.BlockEnd)
}

// Is matches ErrLayout.
func (e *LayoutError) Is(target error) bool { return target == ErrLayout }

// UnknownSectionError reports a media type whose section is not in the catalog.
type UnknownSectionError struct {
	Section  string
	MimeType string
}

// Error implements the error interface.
func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown mime base type %q in %q", e.Section, e.MimeType)
}

// Is matches ErrUnknownSection.
func (e *UnknownSectionError) Is(target error) bool { return target == ErrUnknownSection }

// SourceIdentityError reports an external document with the wrong root id.
type SourceIdentityError struct {
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *SourceIdentityError) Error() string {
	return fmt.Sprintf("expected root registry id %q, got %q", e.Expected, e.Actual)
}

// Is matches ErrSourceIdentity.
func (e *SourceIdentityError) Is(target error) bool { return target == ErrSourceIdentity }
