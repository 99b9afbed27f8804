package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"movieshelf/internal/catalog"
	"movieshelf/internal/fileutil"
)

// Store is a SQLite-backed catalog index.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open creates or connects to the index database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("ensure index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// ErrNoIndex is returned by OpenExisting when no index file exists at the path.
var ErrNoIndex = errors.New("index does not exist")

// OpenExisting connects to an index that Open created earlier. Unlike Open it
// never creates the file or its directory.
func OpenExisting(ctx context.Context, path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoIndex, path)
		}
		return nil, fmt.Errorf("stat index: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open index %s: is a directory", path)
	}
	return Open(ctx, path)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Replace discards the current contents and indexes records in catalog order.
func (s *Store) Replace(ctx context.Context, catalogPath string, records []catalog.MovieRecord) error {
	return retryOnBusy(ctx, func() error {
		return s.replace(ctx, catalogPath, records)
	})
}

func (s *Store) replace(ctx context.Context, catalogPath string, records []catalog.MovieRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO movies (
            position, folder_name, title, year, tmdb_id, imdb_id, record_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			i,
			nullableString(record.FolderName),
			nullableString(record.Title),
			nullableString(record.Year),
			nullableString(record.TMDBID),
			nullableString(record.IMDBID),
			string(payload),
		); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (id, catalog_path, indexed_at) VALUES (1, ?, ?)
         ON CONFLICT(id) DO UPDATE SET catalog_path = excluded.catalog_path, indexed_at = excluded.indexed_at`,
		catalogPath, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("record source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Count reports how many records are indexed.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// Source returns the catalog path the index was last built from. The path is
// empty when nothing has been indexed yet.
func (s *Store) Source(ctx context.Context) (string, time.Time, error) {
	var (
		path      string
		indexedAt string
	)
	err := s.db.QueryRowContext(ctx, "SELECT catalog_path, indexed_at FROM sources WHERE id = 1").Scan(&path, &indexedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read source: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, indexedAt)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse indexed_at: %w", err)
	}
	return path, ts, nil
}

// FindByYear returns indexed records whose year equals year exactly, in catalog order.
func (s *Store) FindByYear(ctx context.Context, year string) ([]catalog.MovieRecord, error) {
	return s.find(ctx, "year", year)
}

// FindByTitle returns indexed records whose title equals title exactly, in catalog order.
func (s *Store) FindByTitle(ctx context.Context, title string) ([]catalog.MovieRecord, error) {
	return s.find(ctx, "title", title)
}

func (s *Store) find(ctx context.Context, column, value string) ([]catalog.MovieRecord, error) {
	// column is one of two fixed names, never user input.
	rows, err := s.db.QueryContext(ctx,
		"SELECT record_json FROM movies WHERE "+column+" = ? ORDER BY position", value)
	if err != nil {
		return nil, fmt.Errorf("query by %s: %w", column, err)
	}
	defer rows.Close()

	matches := make([]catalog.MovieRecord, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var record catalog.MovieRecord
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		matches = append(matches, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return matches, nil
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
