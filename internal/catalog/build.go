package catalog

import (
	"context"
	"errors"
	"log/slog"

	"movieshelf/internal/logging"
	"movieshelf/internal/walker"
)

// DefaultMetadataFile is the legacy metadata file name looked up in each movie folder.
const DefaultMetadataFile = "metadata-file.json"

// Builder turns library layouts into catalog records.
type Builder struct {
	walker       *walker.Walker
	logger       *slog.Logger
	metadataFile string
	lenient      bool
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithMetadataFile overrides the legacy metadata file name.
func WithMetadataFile(name string) BuilderOption {
	return func(b *Builder) {
		if name != "" {
			b.metadataFile = name
		}
	}
}

// WithLenient makes Collect skip malformed metadata files instead of failing.
// Unreadable folders are governed by the walker's own options.
func WithLenient(lenient bool) BuilderOption {
	return func(b *Builder) {
		b.lenient = lenient
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder over w.
func NewBuilder(w *walker.Walker, opts ...BuilderOption) *Builder {
	b := &Builder{walker: w, metadataFile: DefaultMetadataFile}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.NewComponentLogger(b.logger, "catalog")
	return b
}

// BuildFlat emits one record per movie folder in a flat root with only the
// folder name set.
func (b *Builder) BuildFlat(ctx context.Context, root string) ([]MovieRecord, error) {
	movies, err := b.walker.Movies(root)
	if err != nil {
		return nil, err
	}
	records := make([]MovieRecord, 0, len(movies))
	for _, movie := range movies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record := MovieRecord{FolderName: Str(movie)}
		record.normalize()
		records = append(records, record)
	}
	logging.WithContext(ctx, b.logger).Info("built flat catalog",
		logging.String("root", root),
		logging.Int("records", len(records)))
	return records, nil
}

// BuildOrganized emits one record per (year, movie) folder pair in an
// organized root with the folder name and year set.
func (b *Builder) BuildOrganized(ctx context.Context, root string) ([]MovieRecord, error) {
	pairs, err := b.walker.Pairs(root)
	if err != nil {
		return nil, err
	}
	records := make([]MovieRecord, 0, len(pairs))
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record := MovieRecord{FolderName: Str(pair.Movie), Year: Str(pair.Year)}
		record.normalize()
		records = append(records, record)
	}
	logging.WithContext(ctx, b.logger).Info("built organized catalog",
		logging.String("root", root),
		logging.Int("records", len(records)))
	return records, nil
}

// CollectReport summarizes a Collect run.
type CollectReport struct {
	Folders   int
	Collected int
	// Missing lists movie folders without a metadata file.
	Missing []string
	// Invalid lists metadata files skipped in lenient mode.
	Invalid []*MetadataError
	// Skipped lists folders the walker could not read in lenient mode.
	Skipped []walker.Skipped
}

// Collect reads the legacy metadata file from every movie folder of an
// organized root and migrates it. Folders without the file are left out.
// A malformed file aborts the run unless the builder is lenient.
func (b *Builder) Collect(ctx context.Context, root string) ([]MovieRecord, CollectReport, error) {
	var report CollectReport
	logger := logging.WithContext(ctx, b.logger)

	pairs, err := b.walker.Pairs(root)
	if err != nil {
		return nil, report, err
	}
	report.Folders = len(pairs)

	records := make([]MovieRecord, 0, len(pairs))
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		path, found, err := b.walker.FindFile(pair.Path, b.metadataFile)
		if err != nil {
			if !b.lenient {
				return nil, report, err
			}
			report.Skipped = append(report.Skipped, walker.Skipped{Path: pair.Path, Err: err})
			logging.WarnWithContext(logger, "skipping unreadable movie folder", "collect_folder_unreadable",
				logging.String("path", pair.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check folder permissions"),
				logging.String(logging.FieldImpact, "movie left out of the catalog"))
			continue
		}
		if !found {
			report.Missing = append(report.Missing, pair.Path)
			logger.Debug("no metadata file in movie folder",
				logging.String("path", pair.Path),
				logging.String("metadata_file", b.metadataFile))
			continue
		}

		legacy, err := ReadLegacyFile(path)
		if err != nil {
			if !b.lenient {
				return nil, report, err
			}
			var metaErr *MetadataError
			if !errors.As(err, &metaErr) {
				metaErr = &MetadataError{Path: path, Err: err}
			}
			report.Invalid = append(report.Invalid, metaErr)
			logging.WarnWithContext(logger, "skipping malformed metadata file", "collect_metadata_invalid",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix or remove the metadata file"),
				logging.String(logging.FieldImpact, "movie left out of the catalog"))
			continue
		}
		records = append(records, Migrate(legacy))
	}

	report.Collected = len(records)
	report.Skipped = append(b.walker.Skipped(), report.Skipped...)
	logger.Info("collected legacy metadata",
		logging.String("root", root),
		logging.Int("folders", report.Folders),
		logging.Int("records", report.Collected),
		logging.Int("missing", len(report.Missing)),
		logging.Int("invalid", len(report.Invalid)),
		logging.Int("skipped", len(report.Skipped)))
	return records, report, nil
}
