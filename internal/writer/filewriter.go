// Package writer exposes sinks for serialized tables.
package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Sink receives a fully serialized table.
type Sink interface {
	WriteTable(buf []byte) error
}

// defaultMode is used when the destination does not exist yet.
const defaultMode fs.FileMode = 0o644

// FileWriter replaces a table file atomically. Readers see either the old
// contents or the new, never a partial write.
type FileWriter struct {
	Path string
}

// WriteTable writes buf to a temp file beside Path, syncs it, renames it over
// Path and syncs the directory. The temp file is removed on any failure.
// An existing file's permissions are carried over.
func (w *FileWriter) WriteTable(buf []byte) error {
	mode := defaultMode
	if info, err := os.Stat(w.Path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", w.Path, err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(w.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}

	if chmodErr := tmpFile.Chmod(mode); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	if syncErr := syncDir(dir); syncErr != nil {
		return fmt.Errorf("sync directory: %w", syncErr)
	}
	return nil
}
