package table

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joshuapare/codectable/pkg/types"
)

const (
	fieldSep = ','
	quote    = '"'
	newline  = '\n'
)

// Serialize renders the table as aligned CSV. Each column is as wide as its
// widest rendered cell; cell i starts after a comma and
// 1+width[i-1]-len(cell[i-1]) spaces, which puts every cell of a column at the
// same byte offset. Padding sits outside quotes so it never becomes data.
func Serialize(t *types.Table) []byte {
	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, renderRow(t.Header))
	for _, r := range t.Rows {
		rows = append(rows, renderRow(r))
	}

	widths := Widths(rows)

	var buf bytes.Buffer
	for _, cells := range rows {
		for i, cell := range cells {
			if i > 0 {
				buf.WriteByte(fieldSep)
				buf.WriteString(strings.Repeat(" ", 1+widths[i-1]-len(cells[i-1])))
			}
			buf.WriteString(cell)
		}
		buf.WriteByte(newline)
	}
	return buf.Bytes()
}

// Widths returns the widest cell of each column across rendered rows.
func Widths(rows [][]string) []int {
	var widths []int
	for _, cells := range rows {
		for i, cell := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := len(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// Offsets returns the byte offset at which each column starts once
// serialized with the given widths.
func Offsets(widths []int) []int {
	out := make([]int, len(widths))
	pos := 0
	for i, w := range widths {
		out[i] = pos
		pos += w + 2 // cell, comma, one separating space
	}
	return out
}

// Aligned reports whether data is byte-identical to its own serialization.
func Aligned(data []byte) (bool, error) {
	t, err := Parse(data)
	if err != nil {
		return false, err
	}
	return bytes.Equal(data, Serialize(t)), nil
}

func renderRow(r types.Row) []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = RenderCell(c)
	}
	return out
}

// RenderCell applies CSV quoting to a cell value.
func RenderCell(cell string) string {
	if !needsQuotes(cell) {
		return cell
	}
	var b strings.Builder
	b.Grow(len(cell) + 2)
	b.WriteByte(quote)
	for _, r := range cell {
		if r == quote {
			b.WriteByte(quote)
		}
		b.WriteRune(r)
	}
	b.WriteByte(quote)
	return b.String()
}

func needsQuotes(cell string) bool {
	if cell == "" {
		return false
	}
	if strings.ContainsAny(cell, "\",\r\n") {
		return true
	}
	// Leading space would be trimmed on read.
	r, _ := utf8.DecodeRuneInString(cell)
	return unicode.IsSpace(r)
}
