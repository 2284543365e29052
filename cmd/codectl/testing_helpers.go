package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/codectable/internal/table"
	"github.com/joshuapare/codectable/pkg/types"
)

// resetFlags restores every global flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, noColor = false, false, false, true
	configPath, tablePath, schemaName = "", "", ""
	syncSource, syncDryRun, syncBackup = "", false, false
	fmtCheck = false
	t.Setenv("CODECTL_LOG_LEVEL", "")
	t.Setenv("CODECTL_LOG_NOCOLOR", "true")
	t.Cleanup(func() {
		verbose, quiet, jsonOut, noColor = false, false, false, false
		configPath, tablePath, schemaName = "", "", ""
		syncSource, syncDryRun, syncBackup = "", false, false
		fmtCheck = false
	})
}

// writeTable serializes rows under the schema's header into a temp file.
func writeTable(t *testing.T, schema types.Schema, rows ...[]string) string {
	t.Helper()
	tbl := &types.Table{Header: schema.Header()}
	for _, r := range rows {
		tbl.Rows = append(tbl.Rows, types.NewRow(r...))
	}
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, table.Serialize(tbl), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// captureOutput captures stdout and stderr while running a function
func captureOutput(t *testing.T, fn func() error) (string, string, error) {
	t.Helper()

	origStdout, origStderr := os.Stdout, os.Stderr

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	os.Stdout, os.Stderr = outW, errW

	// Drain both pipes concurrently so large output cannot block fn.
	var stdout, stderr bytes.Buffer
	done := make(chan struct{}, 2)
	go func() { _, _ = stdout.ReadFrom(outR); done <- struct{}{} }()
	go func() { _, _ = stderr.ReadFrom(errR); done <- struct{}{} }()

	fnErr := fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origStdout, origStderr
	<-done
	<-done

	return stdout.String(), stderr.String(), fnErr
}

// assertJSON checks that output is valid JSON and decodes it
func assertJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
