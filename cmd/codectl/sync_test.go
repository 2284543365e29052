package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/codectable/pkg/types"
)

const registryXML = `<?xml version='1.0' encoding='UTF-8'?>
<registry xmlns="http://www.iana.org/assignments" id="media-types">
  <registry id="image">
    <record><name>png</name><file type="template">image/png</file></record>
    <record><name>newfmt</name><file type="template">image/newfmt</file></record>
  </registry>
  <registry id="text">
    <record><name>plain</name><file type="template">text/plain</file></record>
  </registry>
</registry>
`

func syncRows() [][]string {
	return [][]string{
		{"identity", "multihash", "0x00", "permanent", "raw binary"},
		{"image", "mimetype", "0x00230000", "draft", ""},
		{"image/png", "mimetype", "0x00230001", "draft", ""},
	}
}

func registryFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "media-types.xml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestSyncCommand(t *testing.T) {
	tests := []struct {
		name        string
		dryRun      bool
		verbose     bool
		json        bool
		wantWritten bool
		wantStdout  []string
	}{
		{
			name:        "writes table",
			wantWritten: true,
			wantStdout:  []string{"added 2 media type(s), 2 existing"},
		},
		{
			name:        "verbose lists assignments",
			verbose:     true,
			wantWritten: true,
			wantStdout:  []string{"0x00230002  image/newfmt", "0x00270001  text/plain"},
		},
		{
			name:       "dry run",
			dryRun:     true,
			wantStdout: []string{"would add 2 media type(s)"},
		},
		{
			name:        "json summary",
			json:        true,
			wantWritten: true,
			wantStdout:  []string{`"existing": 2`, `"code": "0x00230002"`, `"written": true`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			verbose = tt.verbose
			jsonOut = tt.json
			syncDryRun = tt.dryRun
			syncSource = registryFile(t, registryXML)
			path := writeTable(t, types.StrictSchema(), syncRows()...)
			before := readString(t, path)

			stdout, stderr, err := captureOutput(t, func() error {
				return runSync(context.Background(), []string{path})
			})
			if err != nil {
				t.Fatalf("runSync() error = %v\nStderr: %s", err, stderr)
			}
			if tt.json {
				assertJSON(t, stdout)
			}
			assertContains(t, stdout, tt.wantStdout)

			after := readString(t, path)
			if tt.wantWritten {
				assertContains(t, after, []string{"image/newfmt", "text/plain"})
			} else if after != before {
				t.Errorf("dry run modified the table:\n%s", after)
			}
		})
	}
}

func TestSyncCommand_UpToDate(t *testing.T) {
	resetFlags(t)
	syncSource = registryFile(t, registryXML)
	path := writeTable(t, types.StrictSchema(), syncRows()...)

	if _, _, err := captureOutput(t, func() error {
		return runSync(context.Background(), []string{path})
	}); err != nil {
		t.Fatalf("first runSync() error = %v", err)
	}
	first := readString(t, path)

	stdout, _, err := captureOutput(t, func() error {
		return runSync(context.Background(), []string{path})
	})
	if err != nil {
		t.Fatalf("second runSync() error = %v", err)
	}
	assertContains(t, stdout, []string{"up to date (4 media types)"})
	if got := readString(t, path); got != first {
		t.Errorf("second run changed the table:\n%s", got)
	}
}

func TestSyncCommand_HTTPSource(t *testing.T) {
	resetFlags(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(registryXML))
	}))
	defer srv.Close()
	syncSource = srv.URL
	path := writeTable(t, types.StrictSchema(), syncRows()...)

	stdout, stderr, err := captureOutput(t, func() error {
		return runSync(context.Background(), []string{path})
	})
	if err != nil {
		t.Fatalf("runSync() error = %v\nStderr: %s", err, stderr)
	}
	assertContains(t, stdout, []string{"added 2 media type(s)"})
}

func TestSyncCommand_FailuresLeaveTable(t *testing.T) {
	tests := []struct {
		name     string
		registry string
		rows     [][]string
		wantErr  string
	}{
		{
			name:     "wrong registry",
			registry: strings.Replace(registryXML, `id="media-types"`, `id="uri-schemes"`, 1),
			rows:     syncRows(),
			wantErr:  "uri-schemes",
		},
		{
			name:     "gap in block",
			registry: registryXML,
			rows: [][]string{
				{"image", "mimetype", "0x00230000", "draft", ""},
				{"image/png", "mimetype", "0x00230002", "draft", ""},
			},
			wantErr: "expected code 0x230001, got 0x230002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			syncSource = registryFile(t, tt.registry)
			path := writeTable(t, types.StrictSchema(), tt.rows...)
			before := readString(t, path)

			_, stderr, err := captureOutput(t, func() error {
				return runSync(context.Background(), []string{path})
			})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("runSync() error = %v, want it to contain %q", err, tt.wantErr)
			}
			assertContains(t, stderr, []string{"was not modified"})
			if got := readString(t, path); got != before {
				t.Errorf("failed sync modified the table:\n%s", got)
			}
		})
	}
}

func TestSyncCommand_NoTagColumn(t *testing.T) {
	resetFlags(t)
	schemaName = "legacy"
	syncSource = registryFile(t, registryXML)
	path := writeTable(t, types.LegacySchema(), []string{"identity", "0x00", "raw binary"})

	_, _, err := captureOutput(t, func() error {
		return runSync(context.Background(), []string{path})
	})
	if err == nil || !strings.Contains(err.Error(), "no tag column") {
		t.Fatalf("runSync() error = %v, want no tag column", err)
	}
}
