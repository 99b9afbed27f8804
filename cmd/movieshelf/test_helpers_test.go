package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"movieshelf/internal/config"
	"movieshelf/internal/testsupport"
	"movieshelf/internal/textutil"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	organized  string
	flat       string
}

// setupCLITestEnv builds an organized library, a flat library, and a config
// file naming them "datahome" and "multimedia".
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	organized := filepath.Join(base, "MoviesByYear")
	testsupport.Tree(t, organized,
		"2010/Inception (2010)/Inception.mkv",
		"2010/Tron Legacy (2010)/Tron.Legacy.mkv",
		"2011/Drive (2011)/Drive.mkv",
	)
	flat := filepath.Join(base, "Movies")
	testsupport.Tree(t, flat,
		"Inception (2010)/Inception.mkv",
		"Heat (1995)/Heat.mkv",
		"Heat (1995)/Heat.srt",
	)

	cfg := testsupport.NewConfig(t,
		testsupport.WithSort(textutil.OrderLexical),
		testsupport.WithLocation("datahome", organized, config.LayoutOrganized),
		testsupport.WithLocation("multimedia", flat, config.LayoutFlat),
	)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(homeDir, ".config", "movieshelf", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		organized:  organized,
		flat:       flat,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteText(t, path, string(data))
}

func writeLegacy(t *testing.T, dir, title, year string) {
	t.Helper()
	testsupport.WriteJSON(t, filepath.Join(dir, "metadata-file.json"), map[string]any{
		"title":   title,
		"year":    year,
		"quality": "1080p",
		"tmdbid":  "27205",
		"details": map[string]any{
			"imdbid":      "tt1375666",
			"poster_path": "/poster.jpg",
			"tagline":     "Your mind is the scene of the crime.",
			"genres":      []string{"Action", "Sci-Fi"},
		},
		"cast": []map[string]any{
			{"id": 6193, "name": "Leonardo DiCaprio", "cast_id": 1, "credit_id": "52fe4534", "character": "Cobb", "profile_path": nil},
		},
	})
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
