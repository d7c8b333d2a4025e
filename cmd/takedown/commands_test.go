package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/catalog"
)

// execute runs the root command with an isolated HOME so no user config is read.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"TAKEDOWN_SOURCE", "TAKEDOWN_CATALOG_PATH", "TAKEDOWN_REMOTE_URL", "TAKEDOWN_LAYOUT"} {
		t.Setenv(key, "")
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	out, err := execute(t, "search", "BURR")
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if !strings.Contains(out, `1 result for "BURR"`) || !strings.Contains(out, "0Y4KrP3a43fZbBiL") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "search", "zzz")
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if strings.TrimSpace(out) != `No results for "zzz"` {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestShowCommand_ExternalJSONHidesSensitiveRows(t *testing.T) {
	out, err := execute(t, "show", "--external", "--json")
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	var got showOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Mode != "external" || len(got.Comparisons) != 2 {
		t.Fatalf("mode %q with %d comparisons", got.Mode, len(got.Comparisons))
	}
	if _, ok := got.Profile.Row("DOB"); ok {
		t.Fatal("external profile card shows DOB")
	}
	if strings.Contains(out, "1988-07-08") {
		t.Fatal("DOB leaked into external output")
	}
}

func TestShowCommand_Text(t *testing.T) {
	out, err := execute(t, "show")
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	for _, want := range []string{"CURRENT PROFILE: Jordan Burroughs", "MERGED PROFILE: J. Burroughs", "Lat/Lng"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCatalog_RoundTripsThroughFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if _, err := execute(t, "export-catalog", path); err != nil {
		t.Fatalf("export-catalog returned error: %v", err)
	}
	loaded, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(athlete.Fixture(), loaded); diff != "" {
		t.Fatalf("catalog changed on export (-want +got):\n%s", diff)
	}

	out, err := execute(t, "--catalog", path, "search", "jordan")
	if err != nil {
		t.Fatalf("search against file returned error: %v", err)
	}
	if !strings.Contains(out, "Jordan Burroughs") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLogsCommand_MissingFilePrintsNothing(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	logPath := filepath.Join(t.TempDir(), "missing.log")
	if err := os.WriteFile(cfgPath, []byte("log_file = \""+logPath+"\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := execute(t, "--config", cfgPath, "logs", "-n", "5")
	if err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
	if out != "" {
		t.Fatalf("output = %q, want empty", out)
	}
}

func TestInvalidSourceFails(t *testing.T) {
	if _, err := execute(t, "--source", "database", "search", "x"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
