package testsupport

import (
	"path/filepath"
	"testing"

	"movieshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp log directory per test.
// It applies any provided options after the defaults.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLocation appends a named library location.
func WithLocation(name, path string, layout config.Layout) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Locations = append(b.cfg.Locations, config.Location{Name: name, Path: path, Layout: layout})
	}
}

// WithSort sets the catalog traversal order.
func WithSort(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Sort = mode
	}
}

// WithLenient disables strict catalog collection.
func WithLenient() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Strict = false
	}
}
