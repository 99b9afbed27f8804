package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"movieshelf/internal/index"
	"movieshelf/internal/logging"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "index <catalog> <database>",
		Short: "Load a catalog into a SQLite index for find-year and find-movie",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, dbPath := args[0], args[1]
			runCtx := ctx.runContext(cmd)

			store, err := ctx.catalogStore(catalogPath)
			if err != nil {
				return err
			}
			records, err := store.Load()
			if err != nil {
				return err
			}

			idx, err := index.Open(runCtx, dbPath)
			if err != nil {
				return err
			}
			defer idx.Close()

			source := catalogPath
			if abs, err := filepath.Abs(catalogPath); err == nil {
				source = abs
			}
			if err := idx.Replace(runCtx, source, records); err != nil {
				return fmt.Errorf("index catalog: %w", err)
			}
			logging.WithContext(runCtx, ctx.ensureLogger()).Info("catalog indexed",
				logging.String("catalog", source),
				logging.String("index", dbPath),
				logging.Int("records", len(records)))

			if ctx.outputMode(cmd) == outputJSON {
				return writeJSON(cmd, map[string]any{"catalog": source, "index": dbPath, "records": len(records)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d records into %s\n", len(records), dbPath)
			return nil
		},
	}
}
