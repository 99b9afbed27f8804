package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"movieshelf/internal/catalog"
	"movieshelf/internal/config"
	"movieshelf/internal/logging"
	"movieshelf/internal/walker"
)

type globalFlags struct {
	config   string
	logLevel string
	sort     string
	lenient  bool
	output   string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	runID      string
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if level := strings.ToLower(strings.TrimSpace(c.flags.logLevel)); level != "" {
			cfg.Logging.Level = level
		}
		if mode := strings.ToLower(strings.TrimSpace(c.flags.sort)); mode != "" {
			cfg.Catalog.Sort = mode
		}
		if c.flags.lenient {
			cfg.Catalog.Strict = false
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the invocation logger once, tagged with a fresh run id.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		c.runID = uuid.NewString()
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger.With(logging.String(logging.FieldRunID, c.runID))
	})
	return c.logger
}

// runContext returns the command's context carrying the run id.
func (c *commandContext) runContext(cmd *cobra.Command) context.Context {
	c.ensureLogger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithRunID(ctx, c.runID)
}

func (c *commandContext) newWalker() (*walker.Walker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return walker.New(walker.Options{
		Sort:    cfg.Catalog.Sort,
		Lenient: !cfg.Catalog.Strict,
		Logger:  c.ensureLogger(),
	}), nil
}

func (c *commandContext) newBuilder() (*catalog.Builder, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	w, err := c.newWalker()
	if err != nil {
		return nil, err
	}
	return catalog.NewBuilder(w,
		catalog.WithMetadataFile(cfg.Catalog.MetadataFile),
		catalog.WithLenient(!cfg.Catalog.Strict),
		catalog.WithLogger(c.ensureLogger()),
	), nil
}

func (c *commandContext) catalogStore(path string) (*catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.Catalog.LockTimeoutSeconds) * time.Second
	var opts []catalog.StoreOption
	if cfg.Paths.LogDir != "" {
		opts = append(opts, catalog.WithLockDir(filepath.Join(cfg.Paths.LogDir, "locks")))
	}
	return catalog.NewStore(path, timeout, c.ensureLogger(), opts...), nil
}

func (c *commandContext) outputMode(cmd *cobra.Command) string {
	return resolveOutputMode(c.flags.output, cmd.OutOrStdout())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func passFail(passed bool) string {
	if passed {
		return "ok"
	}
	return "FAIL"
}
