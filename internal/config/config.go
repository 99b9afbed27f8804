package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Layout names the directory convention used by a library root.
type Layout string

const (
	// LayoutOrganized is year -> movie folder -> files.
	LayoutOrganized Layout = "organized"
	// LayoutFlat is movie folder -> files.
	LayoutFlat Layout = "flat"
)

// Sort modes applied to directory listings before records are built.
const (
	SortNone     = "none"
	SortLexical  = "lexical"
	SortCollated = "collated"
)

// AllLocations is the reserved location selector meaning every configured location.
const AllLocations = "all"

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Location is a named library root.
type Location struct {
	Name   string `toml:"name"`
	Path   string `toml:"path"`
	Layout Layout `toml:"layout"`
}

// Catalog contains settings for building and collecting catalogs.
type Catalog struct {
	MetadataFile       string `toml:"metadata_file"`
	Sort               string `toml:"sort"`
	Strict             bool   `toml:"strict"`
	LockTimeoutSeconds int    `toml:"lock_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for movieshelf.
//
// Configuration sections:
//   - Paths: log directory
//   - Locations: named library roots used by the count command
//   - Catalog: metadata file name, traversal ordering, strictness, lock timeout
//   - Logging: log format and level
type Config struct {
	Paths     Paths      `toml:"paths"`
	Locations []Location `toml:"locations"`
	Catalog   Catalog    `toml:"catalog"`
	Logging   Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/movieshelf/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("movieshelf.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories movieshelf writes into.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// Location returns the configured location with the given name.
func (c *Config) Location(name string) (Location, bool) {
	name = strings.TrimSpace(name)
	for _, loc := range c.Locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return Location{}, false
}

// ResolveLocations maps a selector to configured locations. The selector
// AllLocations returns every location in configuration order.
func (c *Config) ResolveLocations(selector string) ([]Location, error) {
	selector = strings.TrimSpace(selector)
	if selector == AllLocations {
		if len(c.Locations) == 0 {
			return nil, errors.New("no locations configured; add [[locations]] entries to the config file")
		}
		out := make([]Location, len(c.Locations))
		copy(out, c.Locations)
		return out, nil
	}
	loc, ok := c.Location(selector)
	if !ok {
		return nil, fmt.Errorf("unknown location %q (configured: %s)", selector, strings.Join(c.LocationNames(), ", "))
	}
	return []Location{loc}, nil
}

// LocationNames lists configured location names in order.
func (c *Config) LocationNames() []string {
	names := make([]string, 0, len(c.Locations))
	for _, loc := range c.Locations {
		names = append(names, loc.Name)
	}
	return names
}

// LogFilePath returns the log file location, or "" when file logging is disabled.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "movieshelf.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
