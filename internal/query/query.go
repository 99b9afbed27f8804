// Package query answers exact-match lookups against a loaded catalog.
package query

import (
	"context"
	"fmt"
	"io"

	"movieshelf/internal/catalog"
	"movieshelf/internal/textutil"
)

// Finder looks records up by year or title. Both the in-memory catalog and
// the SQLite index satisfy it.
type Finder interface {
	FindByYear(ctx context.Context, year string) ([]catalog.MovieRecord, error)
	FindByTitle(ctx context.Context, title string) ([]catalog.MovieRecord, error)
}

// FindByYear returns records whose year equals year exactly, in catalog order.
// Records without a year never match.
func FindByYear(records []catalog.MovieRecord, year string) []catalog.MovieRecord {
	return filter(records, func(r catalog.MovieRecord) bool {
		return r.Year != nil && *r.Year == year
	})
}

// FindByTitle returns records whose title equals title exactly, in catalog order.
func FindByTitle(records []catalog.MovieRecord, title string) []catalog.MovieRecord {
	return filter(records, func(r catalog.MovieRecord) bool {
		return r.Title != nil && *r.Title == title
	})
}

func filter(records []catalog.MovieRecord, keep func(catalog.MovieRecord) bool) []catalog.MovieRecord {
	matches := make([]catalog.MovieRecord, 0)
	for _, r := range records {
		if keep(r) {
			matches = append(matches, r)
		}
	}
	return matches
}

// Catalog is a Finder over records already loaded into memory.
type Catalog struct {
	Records []catalog.MovieRecord
}

// FindByYear implements Finder.
func (c Catalog) FindByYear(_ context.Context, year string) ([]catalog.MovieRecord, error) {
	return FindByYear(c.Records, year), nil
}

// FindByTitle implements Finder.
func (c Catalog) FindByTitle(_ context.Context, title string) ([]catalog.MovieRecord, error) {
	return FindByTitle(c.Records, title), nil
}

// PrintTitles writes one title per line, or "unknown" for records without one.
func PrintTitles(w io.Writer, matches []catalog.MovieRecord) error {
	for _, m := range matches {
		if _, err := fmt.Fprintln(w, textutil.OrUnknown(m.Title)); err != nil {
			return err
		}
	}
	return nil
}

// PrintTitleYears writes a "title:" and "year:" line per record, substituting
// "unknown" for absent values.
func PrintTitleYears(w io.Writer, matches []catalog.MovieRecord) error {
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "title: %s\nyear: %s\n", textutil.OrUnknown(m.Title), textutil.OrUnknown(m.Year)); err != nil {
			return err
		}
	}
	return nil
}
