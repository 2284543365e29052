// Package table reads and writes the registry's column-aligned CSV text.
//
// Parsing drops the alignment padding but records where every cell started
// so the validator can check alignment. Serializing recomputes the padding
// from the widest rendered cell of each column, so hand-edited input is
// realigned on save. Round trips are therefore compared by re-parsing, not
// byte for byte.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/codectable/pkg/types"
)

// Parse converts table text into a header and data rows. A leading byte
// order mark is honoured and removed. Text that is not well-formed CSV fails
// with *types.MalformedTableError.
func Parse(data []byte) (*types.Table, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader is Parse over a stream.
func ParseReader(in io.Reader) (*types.Table, error) {
	r := csv.NewReader(transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	t := &types.Table{}
	first := true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		row := types.Row{Cells: record, Offsets: make([]int, len(record))}
		for i := range record {
			line, col := r.FieldPos(i)
			if i == 0 {
				row.Line = line
			}
			row.Offsets[i] = col - 1
		}

		if first {
			t.Header = row
			first = false
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	if first {
		return nil, &types.MalformedTableError{Message: "missing header row"}
	}
	return t, nil
}

func malformed(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &types.MalformedTableError{
			Line:    pe.Line,
			Column:  pe.Column,
			Message: "unparsable record",
			Cause:   pe.Err,
		}
	}
	return &types.MalformedTableError{Message: "read failed", Cause: err}
}
