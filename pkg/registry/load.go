package registry

import (
	"fmt"

	"github.com/joshuapare/codectable/internal/mmfile"
	"github.com/joshuapare/codectable/internal/table"
	"github.com/joshuapare/codectable/internal/validate"
	"github.com/joshuapare/codectable/pkg/types"
)

// Load reads and parses the table at path.
func Load(path string) (*types.Table, error) {
	t, _, err := load(path)
	return t, err
}

// load returns the parsed table together with a copy of the raw bytes.
func load(path string) (*types.Table, []byte, error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer m.Close()

	raw := append([]byte(nil), m.Bytes()...)
	t, err := table.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse table %s: %w", path, err)
	}
	return t, raw, nil
}

// ValidateFile loads the table at path and runs every check the schema
// enables. A nil catalog uses types.DefaultCatalog(). The error is non-nil
// only when the file cannot be read or parsed; violations are in the report.
func ValidateFile(path string, schema types.Schema, cat *types.Catalog) (*types.Report, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	return validate.Table(t, validate.Options{
		Schema:   schemaOrDefault(schema),
		Catalog:  cat,
		FilePath: path,
	}), nil
}
