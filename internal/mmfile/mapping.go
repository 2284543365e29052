// Package mmfile gives read-only access to a table file's bytes, mapped into
// memory where the platform supports it.
package mmfile

// Mapping is a read-only view of a file's contents. Bytes is valid until
// Close; callers copy out anything they keep.
type Mapping struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the file contents.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Len returns the size of the view in bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Close releases the view. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.data == nil || m.unmap == nil {
		m.data = nil
		return nil
	}
	data := m.data
	m.data = nil
	return m.unmap(data)
}
