package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/codectable/pkg/types"
)

func TestValidateCommand(t *testing.T) {
	good := [][]string{
		{"identity", "multihash", "0x00", "permanent", "raw binary"},
		{"image", "mimetype", "0x00230000", "draft", ""},
	}
	bad := [][]string{
		{"sha2-256", "multihash", "0x12", "permanent", ""},
		{"identity", "multihash", "0x00", "permanent", ""},
		{"Bad Name", "multihash", "0x13", "permanent", ""},
	}

	tests := []struct {
		name           string
		rows           [][]string
		json           bool
		wantErr        bool
		wantStdout     []string
		wantStderr     []string
		wantNotContain []string
	}{
		{
			name:       "valid table",
			rows:       good,
			wantStdout: []string{"OK (2 rows)"},
		},
		{
			name:    "violations",
			rows:    bad,
			wantErr: true,
			wantStderr: []string{
				"row 2: code 0x0 is out of order, previous code was 0x12",
				"row 3: name 'Bad Name' violates naming restrictions",
			},
			wantNotContain: []string{"OK"},
		},
		{
			name:       "json report",
			rows:       bad,
			json:       true,
			wantErr:    true,
			wantStdout: []string{`"schema": "strict"`, `"stage": "ORDER"`, `"errors": 2`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			jsonOut = tt.json
			path := writeTable(t, types.StrictSchema(), tt.rows...)

			stdout, stderr, err := captureOutput(t, func() error {
				return runValidate([]string{path})
			})

			if (err != nil) != tt.wantErr {
				t.Fatalf("runValidate() error = %v, wantErr %v\nStderr: %s", err, tt.wantErr, stderr)
			}
			if tt.wantErr && !errors.Is(err, errValidationFailed) {
				t.Errorf("expected errValidationFailed, got %v", err)
			}
			if tt.json {
				assertJSON(t, stdout)
			}
			assertContains(t, stdout, tt.wantStdout)
			assertContains(t, stderr, tt.wantStderr)
			assertNotContains(t, stdout, tt.wantNotContain)
		})
	}
}

func TestValidateCommand_SchemaFlag(t *testing.T) {
	resetFlags(t)
	schemaName = "tagged"
	path := writeTable(t, types.TaggedSchema(),
		[]string{"sha2-256", "multihash", "0x12", ""},
		[]string{"identity", "multihash", "0x00", ""},
	)

	// Ordering is only enforced by the strict generation.
	stdout, stderr, err := captureOutput(t, func() error {
		return runValidate([]string{path})
	})
	if err != nil {
		t.Fatalf("runValidate() error = %v\nStderr: %s", err, stderr)
	}
	assertContains(t, stdout, []string{"OK (2 rows)"})
}

func TestValidateCommand_ConfigFile(t *testing.T) {
	resetFlags(t)
	path := writeTable(t, types.TaggedSchema(), []string{"identity", "multihash", "0x00", ""})

	cfgPath := filepath.Join(t.TempDir(), "codectl.toml")
	body := "table = \"" + filepath.ToSlash(path) + "\"\nschema = \"tagged\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	configPath = cfgPath

	stdout, stderr, err := captureOutput(t, func() error {
		return runValidate(nil)
	})
	if err != nil {
		t.Fatalf("runValidate() error = %v\nStderr: %s", err, stderr)
	}
	assertContains(t, stdout, []string{"OK (1 rows)"})
}

func TestValidateCommand_Errors(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		resetFlags(t)
		_, _, err := captureOutput(t, func() error {
			return runValidate([]string{filepath.Join(t.TempDir(), "missing.csv")})
		})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("unknown schema", func(t *testing.T) {
		resetFlags(t)
		schemaName = "newest"
		path := writeTable(t, types.StrictSchema())
		_, _, err := captureOutput(t, func() error {
			return runValidate([]string{path})
		})
		if !errors.Is(err, types.ErrUnknownSchema) {
			t.Errorf("expected ErrUnknownSchema, got %v", err)
		}
	})

	t.Run("missing explicit config", func(t *testing.T) {
		resetFlags(t)
		configPath = filepath.Join(t.TempDir(), "nope.toml")
		_, _, err := captureOutput(t, func() error {
			return runValidate(nil)
		})
		if err == nil {
			t.Error("expected error for missing --config file")
		}
	})
}
