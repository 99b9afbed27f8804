package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movieshelf/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckReadableDir_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckReadableDir("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputFile(t *testing.T) {
	dir := t.TempDir()
	if result := CheckOutputFile("out", filepath.Join(dir, "catalog.json")); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckOutputFile("out", dir); result.Passed {
		t.Fatal("expected failure when output is a directory")
	}
	if result := CheckOutputFile("out", filepath.Join(dir, "missing", "catalog.json")); result.Passed {
		t.Fatal("expected failure when parent directory is missing")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReportsEachLocation(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Locations = []config.Location{
		{Name: "datahome", Path: t.TempDir(), Layout: config.LayoutOrganized},
		{Name: "multimedia", Path: filepath.Join(t.TempDir(), "gone"), Layout: config.LayoutFlat},
	}

	results := RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Passed || !results[1].Passed {
		t.Fatalf("expected log dir and datahome to pass: %+v", results)
	}
	if results[2].Passed {
		t.Fatal("expected missing location to fail")
	}
	if !Failed(results) {
		t.Fatal("Failed should report the missing location")
	}
}
