package config

const (
	defaultLogDir             = "~/.local/share/movieshelf/logs"
	defaultMetadataFile       = "metadata-file.json"
	defaultSort               = SortNone
	defaultStrict             = true
	defaultLockTimeoutSeconds = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Catalog: Catalog{
			MetadataFile:       defaultMetadataFile,
			Sort:               defaultSort,
			Strict:             defaultStrict,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
