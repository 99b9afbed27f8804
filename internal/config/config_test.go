package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"movieshelf/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "movieshelf", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Catalog.MetadataFile != "metadata-file.json" {
		t.Fatalf("unexpected metadata file: %q", cfg.Catalog.MetadataFile)
	}
	if cfg.Catalog.Sort != config.SortNone {
		t.Fatalf("expected traversal order to be preserved by default, got %q", cfg.Catalog.Sort)
	}
	if !cfg.Catalog.Strict {
		t.Fatal("expected strict mode by default")
	}
	if len(cfg.Locations) != 0 {
		t.Fatalf("expected no locations by default, got %v", cfg.Locations)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
log_dir = "~/logs"

[[locations]]
name = "datahome"
path = "~/Movies/ByYear"

[[locations]]
name = "usb"
path = "/mnt/usb/Movies"
layout = "FLAT"

[catalog]
sort = "Collated"
strict = false
lock_timeout_seconds = 3

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to exist, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if len(cfg.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(cfg.Locations))
	}
	if cfg.Locations[0].Layout != config.LayoutOrganized {
		t.Fatalf("expected organized default layout, got %q", cfg.Locations[0].Layout)
	}
	if cfg.Locations[0].Path != filepath.Join(tempHome, "Movies", "ByYear") {
		t.Fatalf("unexpected location path: %q", cfg.Locations[0].Path)
	}
	if cfg.Locations[1].Layout != config.LayoutFlat {
		t.Fatalf("expected flat layout, got %q", cfg.Locations[1].Layout)
	}
	if cfg.Catalog.Sort != config.SortCollated {
		t.Fatalf("unexpected sort: %q", cfg.Catalog.Sort)
	}
	if cfg.Catalog.Strict {
		t.Fatal("expected lenient mode")
	}
	if cfg.Catalog.LockTimeoutSeconds != 3 {
		t.Fatalf("unexpected lock timeout: %d", cfg.Catalog.LockTimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name: "reserved location name",
			mutate: func(c *config.Config) {
				c.Locations = []config.Location{{Name: "all", Path: "/a", Layout: config.LayoutFlat}}
			},
			wantErr: "reserved",
		},
		{
			name: "duplicate location name",
			mutate: func(c *config.Config) {
				c.Locations = []config.Location{
					{Name: "a", Path: "/a", Layout: config.LayoutFlat},
					{Name: "a", Path: "/b", Layout: config.LayoutFlat},
				}
			},
			wantErr: "duplicated",
		},
		{
			name: "missing location path",
			mutate: func(c *config.Config) {
				c.Locations = []config.Location{{Name: "a", Layout: config.LayoutFlat}}
			},
			wantErr: "path must be set",
		},
		{
			name: "unknown layout",
			mutate: func(c *config.Config) {
				c.Locations = []config.Location{{Name: "a", Path: "/a", Layout: "nested"}}
			},
			wantErr: "unsupported layout",
		},
		{
			name:    "unknown sort",
			mutate:  func(c *config.Config) { c.Catalog.Sort = "random" },
			wantErr: "catalog.sort",
		},
		{
			name:    "metadata file with directory",
			mutate:  func(c *config.Config) { c.Catalog.MetadataFile = "meta/data.json" },
			wantErr: "bare file name",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResolveLocations(t *testing.T) {
	cfg := config.Default()
	cfg.Locations = []config.Location{
		{Name: "datahome", Path: "/d", Layout: config.LayoutOrganized},
		{Name: "multimedia", Path: "/m", Layout: config.LayoutOrganized},
	}

	all, err := cfg.ResolveLocations("all")
	if err != nil {
		t.Fatalf("ResolveLocations(all): %v", err)
	}
	if len(all) != 2 || all[0].Name != "datahome" || all[1].Name != "multimedia" {
		t.Fatalf("unexpected locations: %+v", all)
	}

	one, err := cfg.ResolveLocations("multimedia")
	if err != nil {
		t.Fatalf("ResolveLocations(multimedia): %v", err)
	}
	if len(one) != 1 || one[0].Path != "/m" {
		t.Fatalf("unexpected location: %+v", one)
	}

	if _, err := cfg.ResolveLocations("elsewhere"); err == nil {
		t.Fatal("expected error for unknown location")
	}

	empty := config.Default()
	if _, err := empty.ResolveLocations("all"); err == nil {
		t.Fatal("expected error when no locations are configured")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if got := cfg.LocationNames(); len(got) != 2 || got[0] != "datahome" || got[1] != "multimedia" {
		t.Fatalf("unexpected sample locations: %v", got)
	}
}
