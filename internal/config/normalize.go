package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLocations(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLocations() error {
	for i := range c.Locations {
		loc := &c.Locations[i]
		loc.Name = strings.TrimSpace(loc.Name)
		loc.Layout = Layout(strings.ToLower(strings.TrimSpace(string(loc.Layout))))
		if loc.Layout == "" {
			loc.Layout = LayoutOrganized
		}
		path := strings.TrimSpace(loc.Path)
		if path == "" {
			continue
		}
		expanded, err := expandPath(path)
		if err != nil {
			return fmt.Errorf("locations[%d].path: %w", i, err)
		}
		loc.Path = expanded
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.MetadataFile = strings.TrimSpace(c.Catalog.MetadataFile)
	if c.Catalog.MetadataFile == "" {
		c.Catalog.MetadataFile = defaultMetadataFile
	}
	c.Catalog.Sort = strings.ToLower(strings.TrimSpace(c.Catalog.Sort))
	if c.Catalog.Sort == "" {
		c.Catalog.Sort = defaultSort
	}
	if c.Catalog.LockTimeoutSeconds <= 0 {
		c.Catalog.LockTimeoutSeconds = defaultLockTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
