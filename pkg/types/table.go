package types

// Row is one record of the registry table.
//
// Cells hold the parsed field values with alignment padding removed. Line is
// the 1-based source line the record started on and Offsets the 0-based byte
// offset of each cell within that line. Rows built in memory have Line == 0
// and no Offsets.
type Row struct {
	Cells   []string
	Line    int
	Offsets []int
}

// NewRow creates an in-memory row from cell values.
func NewRow(cells ...string) Row {
	return Row{Cells: cells}
}

// Cell returns the cell at index i, or "" if the row is too short or i < 0.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Blank reports whether every cell is empty.
func (r Row) Blank() bool {
	for _, c := range r.Cells {
		if c != "" {
			return false
		}
	}
	return true
}

// Separator reports whether the row is a visual separator rather than data:
// either blank, or a section marker ("# ...") in the first cell with every
// other cell empty.
func (r Row) Separator() bool {
	if r.Blank() {
		return true
	}
	if len(r.Cells) == 0 || len(r.Cells[0]) == 0 || r.Cells[0][0] != SectionMarker {
		return false
	}
	for _, c := range r.Cells[1:] {
		if c != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := Row{Line: r.Line}
	out.Cells = append([]string(nil), r.Cells...)
	if r.Offsets != nil {
		out.Offsets = append([]int(nil), r.Offsets...)
	}
	return out
}

// Table is the parsed registry: a header row followed by data rows.
type Table struct {
	Header Row
	Rows   []Row
}

// RowNumber converts a data row position to the row index reported in
// diagnostics (the header is row 0).
func RowNumber(pos int) int {
	return pos + 1
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Header: t.Header.Clone(), Rows: make([]Row, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}
