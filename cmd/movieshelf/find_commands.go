package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"movieshelf/internal/catalog"
	"movieshelf/internal/index"
	"movieshelf/internal/logging"
	"movieshelf/internal/query"
	"movieshelf/internal/textutil"
)

func newFindYearCommand(ctx *commandContext) *cobra.Command {
	var indexPath string
	cmd := &cobra.Command{
		Use:   "find-year <catalog> <year>",
		Short: "List the titles of every catalog record from a year",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, year := args[0], args[1]
			matches, err := ctx.find(cmd, catalogPath, indexPath, func(c context.Context, f query.Finder) ([]catalog.MovieRecord, error) {
				return f.FindByYear(c, year)
			})
			if err != nil {
				return err
			}
			switch ctx.outputMode(cmd) {
			case outputJSON:
				return writeJSON(cmd, matches)
			case outputTable:
				printMatches(cmd, matches)
				return nil
			default:
				return query.PrintTitles(cmd.OutOrStdout(), matches)
			}
		},
	}
	cmd.Flags().StringVar(&indexPath, "index", "", "Query this SQLite index instead of reading the catalog file")
	return cmd
}

func newFindMovieCommand(ctx *commandContext) *cobra.Command {
	var indexPath string
	cmd := &cobra.Command{
		Use:   "find-movie <catalog> <title>",
		Short: "Show the year of every catalog record with a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, title := args[0], args[1]
			matches, err := ctx.find(cmd, catalogPath, indexPath, func(c context.Context, f query.Finder) ([]catalog.MovieRecord, error) {
				return f.FindByTitle(c, title)
			})
			if err != nil {
				return err
			}
			switch ctx.outputMode(cmd) {
			case outputJSON:
				return writeJSON(cmd, matches)
			case outputTable:
				printMatches(cmd, matches)
				return nil
			default:
				return query.PrintTitleYears(cmd.OutOrStdout(), matches)
			}
		},
	}
	cmd.Flags().StringVar(&indexPath, "index", "", "Query this SQLite index instead of reading the catalog file")
	return cmd
}

type findFunc func(context.Context, query.Finder) ([]catalog.MovieRecord, error)

// find runs lookup against the SQLite index when indexPath is set and against
// the catalog file otherwise.
func (c *commandContext) find(cmd *cobra.Command, catalogPath, indexPath string, lookup findFunc) ([]catalog.MovieRecord, error) {
	runCtx := c.runContext(cmd)
	logger := logging.WithContext(runCtx, c.ensureLogger())

	if indexPath == "" {
		store, err := c.catalogStore(catalogPath)
		if err != nil {
			return nil, err
		}
		records, err := store.Load()
		if err != nil {
			return nil, err
		}
		matches, err := lookup(runCtx, query.Catalog{Records: records})
		if err != nil {
			return nil, err
		}
		logger.Debug("catalog queried",
			logging.String("catalog", catalogPath),
			logging.Int("records", len(records)),
			logging.Int("matches", len(matches)))
		return matches, nil
	}

	idx, err := index.OpenExisting(runCtx, indexPath)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	source, _, err := idx.Source(runCtx)
	if err != nil {
		return nil, err
	}
	if source == "" {
		return nil, fmt.Errorf("index %s is empty; run 'movieshelf index %s %s' first", indexPath, catalogPath, indexPath)
	}
	if !samePath(source, catalogPath) {
		logging.WarnWithContext(logger, "index was built from a different catalog", "index_source_mismatch",
			logging.String("index", indexPath),
			logging.String("indexed_catalog", source),
			logging.String("catalog", catalogPath),
			logging.String(logging.FieldErrorHint, "rebuild the index from this catalog"),
			logging.String(logging.FieldImpact, "results reflect the indexed catalog"))
	}
	matches, err := lookup(runCtx, idx)
	if err != nil {
		return nil, err
	}
	logger.Debug("index queried",
		logging.String("index", indexPath),
		logging.Int("matches", len(matches)))
	return matches, nil
}

func printMatches(cmd *cobra.Command, matches []catalog.MovieRecord) {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{textutil.OrUnknown(m.Title), textutil.OrUnknown(m.Year), textutil.OrUnknown(m.FolderName)})
	}
	printTable(cmd, []string{"Title", "Year", "Folder"}, rows, nil)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
