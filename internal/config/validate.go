package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLocations(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLocations() error {
	seen := make(map[string]struct{}, len(c.Locations))
	for i, loc := range c.Locations {
		if loc.Name == "" {
			return fmt.Errorf("locations[%d].name must be set", i)
		}
		if loc.Name == AllLocations {
			return fmt.Errorf("locations[%d].name %q is reserved", i, AllLocations)
		}
		if _, dup := seen[loc.Name]; dup {
			return fmt.Errorf("locations[%d].name %q is duplicated", i, loc.Name)
		}
		seen[loc.Name] = struct{}{}
		if loc.Path == "" {
			return fmt.Errorf("locations[%d] (%s): path must be set", i, loc.Name)
		}
		switch loc.Layout {
		case LayoutOrganized, LayoutFlat:
		default:
			return fmt.Errorf("locations[%d] (%s): unsupported layout %q (expected organized or flat)", i, loc.Name, loc.Layout)
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Sort {
	case SortNone, SortLexical, SortCollated:
	default:
		return fmt.Errorf("catalog.sort: unsupported value %q (expected none, lexical, or collated)", c.Catalog.Sort)
	}
	if strings.ContainsAny(c.Catalog.MetadataFile, `/\`) {
		return errors.New("catalog.metadata_file must be a bare file name")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
