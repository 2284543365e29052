package registry

import (
	"bytes"
	"context"
	"fmt"

	"github.com/joshuapare/codectable/internal/iana"
	"github.com/joshuapare/codectable/internal/mimesync"
	"github.com/joshuapare/codectable/internal/table"
	"github.com/joshuapare/codectable/internal/writer"
)

// SyncResult is the outcome of SyncFile.
type SyncResult struct {
	*mimesync.Result

	// Output is the serialized table.
	Output []byte

	// Written reports whether the table file (or Sink) was written. A run
	// that leaves the bytes unchanged writes nothing.
	Written bool
}

// SyncFile loads the table at path, fetches media type names from src, merges
// them into the mimetype block and writes the result back atomically.
//
// Example:
//
//	res, err := registry.SyncFile(ctx, "table.csv", &iana.HTTPSource{}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d new media types\n", len(res.Added))
func SyncFile(ctx context.Context, path string, src iana.Source, opts *SyncOptions) (*SyncResult, error) {
	if opts == nil {
		opts = &SyncOptions{}
	}
	schema := schemaOrDefault(opts.Schema)
	log := opts.Logger

	t, raw, err := load(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("table", path).Int("rows", len(t.Rows)).Msg("loaded table")

	names, err := src.MediaTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media types: %w", err)
	}

	res, err := mimesync.Sync(t, names, mimesync.Options{
		Schema:  schema,
		Catalog: opts.Catalog,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sync %s: %w", path, err)
	}

	out := &SyncResult{Result: res, Output: table.Serialize(res.Table)}
	if bytes.Equal(out.Output, raw) {
		log.Debug().Str("table", path).Msg("table unchanged")
		return out, nil
	}

	sink := opts.Sink
	switch {
	case opts.DryRun:
		sink = &writer.MemWriter{}
	case sink == nil:
		sink = &writer.FileWriter{Path: path}
	}

	if opts.CreateBackup && !opts.DryRun {
		if err := copyFile(path, path+".bak"); err != nil {
			return nil, fmt.Errorf("failed to create backup: %w", err)
		}
	}

	if err := sink.WriteTable(out.Output); err != nil {
		return nil, fmt.Errorf("failed to write table: %w", err)
	}
	out.Written = !opts.DryRun
	return out, nil
}
