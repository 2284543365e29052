package writer

// MemWriter captures table bytes in memory. Dry runs and tests use it in
// place of a FileWriter.
type MemWriter struct {
	Buf    []byte
	Writes int
}

// WriteTable stores a copy of buf, replacing anything written before.
func (w *MemWriter) WriteTable(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	w.Writes++
	return nil
}
