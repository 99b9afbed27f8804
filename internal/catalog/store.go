package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"movieshelf/internal/fileutil"
	"movieshelf/internal/logging"
)

const (
	defaultLockTimeout = 10 * time.Second
	lockRetryDelay     = 100 * time.Millisecond
)

// Store reads and writes one catalog file.
type Store struct {
	path        string
	lockDir     string
	lockPath    string
	lockTimeout time.Duration
	logger      *slog.Logger
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithLockDir keeps the writer lock in dir instead of beside the catalog. The
// lock file name is derived from the catalog's absolute path, so every writer
// of one catalog agrees on it.
func WithLockDir(dir string) StoreOption {
	return func(s *Store) {
		if dir == "" {
			return
		}
		key := s.path
		if abs, err := filepath.Abs(s.path); err == nil {
			key = abs
		}
		s.lockDir = dir
		h := fnv.New64a()
		_, _ = h.Write([]byte(key))
		s.lockPath = filepath.Join(dir, fmt.Sprintf("%s-%016x.lock", filepath.Base(key), h.Sum64()))
	}
}

// NewStore returns a store for the catalog at path. A non-positive lockTimeout
// uses the default. Without WithLockDir the lock is <path>.lock.
func NewStore(path string, lockTimeout time.Duration, logger *slog.Logger, opts ...StoreOption) *Store {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	s := &Store{
		path:        path,
		lockPath:    path + ".lock",
		lockTimeout: lockTimeout,
		logger:      logging.NewComponentLogger(logger, "catalog_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LockPath returns the file writers lock while persisting.
func (s *Store) LockPath() string {
	return s.lockPath
}

// Path returns the catalog file location.
func (s *Store) Path() string {
	return s.path
}

// Persist overwrites the catalog with records as a pretty-printed JSON array.
// Writers serialize on a lock file and the replacement is atomic, so
// concurrent writers resolve to last-writer-wins without torn files.
func (s *Store) Persist(ctx context.Context, records []MovieRecord) error {
	out := make([]MovieRecord, len(records))
	for i, record := range records {
		record.normalize()
		out[i] = record
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if s.lockDir != "" {
		if err := os.MkdirAll(s.lockDir, 0o755); err != nil {
			return fmt.Errorf("create lock directory %q: %w", s.lockDir, err)
		}
	}
	lock := flock.New(s.lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("write catalog %q: %w", s.path, ErrLocked)
		}
		return fmt.Errorf("lock catalog %q: %w", s.path, err)
	}
	if !locked {
		return fmt.Errorf("write catalog %q: %w", s.path, ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release catalog lock", logging.String("lock", s.lockPath), logging.Error(err))
		}
	}()

	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %q: %w", s.path, err)
	}

	logging.WithContext(ctx, s.logger).Info("catalog written",
		logging.String("path", s.path),
		logging.Int("records", len(out)))
	return nil
}

// Load reads the whole catalog. Unknown fields are ignored and absent optional
// fields stay nil; type mismatches and non-array documents are errors.
func (s *Store) Load() ([]MovieRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var entries []*MovieRecord
	dec := json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", s.path, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("parse catalog %q: %w", s.path, ErrNotArray)
	}
	if err := expectEOF(dec); err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", s.path, err)
	}
	records := make([]MovieRecord, len(entries))
	for i, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("parse catalog %q: %w at index %d", s.path, ErrNullRecord, i)
		}
		entry.normalize()
		records[i] = *entry
	}

	s.logger.Debug("catalog loaded", logging.String("path", s.path), logging.Int("records", len(records)))
	return records, nil
}
