package registry

import (
	"github.com/rs/zerolog"

	"github.com/joshuapare/codectable/internal/writer"
	"github.com/joshuapare/codectable/pkg/types"
)

// SyncOptions controls SyncFile.
type SyncOptions struct {
	// Schema is the table generation. The zero value selects
	// types.DefaultSchema().
	Schema types.Schema

	// Catalog supplies MIME sections and alias groups. If nil,
	// types.DefaultCatalog() is used.
	Catalog *types.Catalog

	// DryRun computes the result without writing. The serialized table is
	// still returned in SyncResult.Output.
	DryRun bool

	// CreateBackup copies the table to <path>.bak before replacing it.
	CreateBackup bool

	// Sink overrides the destination. If nil, the table file is replaced
	// atomically.
	Sink writer.Sink

	Logger zerolog.Logger
}

// FormatOptions controls FormatFile.
type FormatOptions struct {
	// Check reports whether the file needs formatting without writing.
	Check bool

	// Sink overrides the destination. If nil, the table file is replaced
	// atomically.
	Sink writer.Sink
}

func schemaOrDefault(s types.Schema) types.Schema {
	if s.Name == "" && len(s.Columns) == 0 {
		return types.DefaultSchema()
	}
	return s
}
