package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const messyTable = "name,tag,code,status,description\nidentity,multihash,0x00,permanent,raw binary\n"

const alignedTable = "name,     tag,       code, status,    description\n" +
	"identity, multihash, 0x00, permanent, raw binary\n"

func messyFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte(messyTable), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFmtCommand(t *testing.T) {
	resetFlags(t)
	path := messyFile(t)

	stdout, _, err := captureOutput(t, func() error {
		return runFmt([]string{path})
	})
	if err != nil {
		t.Fatalf("runFmt() error = %v", err)
	}
	assertContains(t, stdout, []string{"formatted"})
	if got := readString(t, path); got != alignedTable {
		t.Errorf("unexpected table:\n%s", got)
	}

	verbose = true
	stdout, _, err = captureOutput(t, func() error {
		return runFmt([]string{path})
	})
	if err != nil {
		t.Fatalf("second runFmt() error = %v", err)
	}
	assertContains(t, stdout, []string{"already formatted"})
}

func TestFmtCommand_Check(t *testing.T) {
	resetFlags(t)
	fmtCheck = true
	path := messyFile(t)

	_, _, err := captureOutput(t, func() error {
		return runFmt([]string{path})
	})
	if !errors.Is(err, errNotFormatted) {
		t.Fatalf("runFmt() error = %v, want errNotFormatted", err)
	}
	if got := readString(t, path); got != messyTable {
		t.Errorf("--check modified the table:\n%s", got)
	}
}

func TestFmtCommand_TableFlag(t *testing.T) {
	resetFlags(t)
	tablePath = messyFile(t)
	jsonOut = true

	stdout, _, err := captureOutput(t, func() error {
		return runFmt(nil)
	})
	if err != nil {
		t.Fatalf("runFmt() error = %v", err)
	}
	result := assertJSON(t, stdout)
	if result["changed"] != true {
		t.Errorf("expected changed=true, got %v", result["changed"])
	}
}
