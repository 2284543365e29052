package registry

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/codectable/internal/table"
	"github.com/joshuapare/codectable/internal/writer"
)

// FormatFile rewrites the table at path with every column aligned to its
// widest cell. It reports whether the file's bytes differ from the formatted
// form; with opts.Check set nothing is written.
func FormatFile(path string, opts *FormatOptions) (changed bool, err error) {
	if opts == nil {
		opts = &FormatOptions{}
	}

	t, raw, err := load(path)
	if err != nil {
		return false, err
	}

	formatted := table.Serialize(t)
	if bytes.Equal(formatted, raw) {
		return false, nil
	}
	if opts.Check {
		return true, nil
	}

	sink := opts.Sink
	if sink == nil {
		sink = &writer.FileWriter{Path: path}
	}
	if err := sink.WriteTable(formatted); err != nil {
		return true, fmt.Errorf("failed to write table: %w", err)
	}
	return true, nil
}
