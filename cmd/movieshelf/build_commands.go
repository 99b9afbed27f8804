package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"movieshelf/internal/catalog"
	"movieshelf/internal/logging"
	"movieshelf/internal/preflight"
	"movieshelf/internal/textutil"
)

const writeLockNote = "Concurrent writers of one catalog serialize on a lock file kept under\n" +
	"<log_dir>/locks. Nothing besides the catalog is written next to <output>."

func newGenerateOrderedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "generate-ordered <folder> <output>",
		Aliases: []string{"build"},
		Short:   "Build a catalog from an organized year/movie folder",
		Long: "Build one record per movie folder of an organized library, with the folder\n" +
			"name and year set, and replace <output> with the catalog.\n\n" + writeLockNote,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, output := args[0], args[1]
			if err := checkOutput(output); err != nil {
				return err
			}
			builder, err := ctx.newBuilder()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			records, err := builder.BuildOrganized(runCtx, root)
			if err != nil {
				return fmt.Errorf("build catalog: %w", err)
			}
			if err := ctx.persist(cmd, output, records); err != nil {
				return err
			}
			return ctx.reportWritten(cmd, output, len(records))
		},
	}
}

func newGenerateFlatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generate-flat <folder> <output>",
		Short: "Build a folder-name-only catalog from a flat movie folder",
		Long: "Build one record per movie folder of a flat library, with only the folder\n" +
			"name set, and replace <output> with the catalog.\n\n" + writeLockNote,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, output := args[0], args[1]
			if err := checkOutput(output); err != nil {
				return err
			}
			builder, err := ctx.newBuilder()
			if err != nil {
				return err
			}
			records, err := builder.BuildFlat(ctx.runContext(cmd), root)
			if err != nil {
				return fmt.Errorf("build catalog: %w", err)
			}
			if err := ctx.persist(cmd, output, records); err != nil {
				return err
			}
			return ctx.reportWritten(cmd, output, len(records))
		},
	}
}

func newCollectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "collect <folder> <output>",
		Short: "Collect per-movie legacy metadata into a unified catalog",
		Long: "Read the legacy metadata file from every movie folder of an organized\n" +
			"library, migrate each to the unified record shape, and write the catalog.\n" +
			"Folders without a metadata file are left out.\n\n" + writeLockNote,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, output := args[0], args[1]
			if err := checkOutput(output); err != nil {
				return err
			}
			builder, err := ctx.newBuilder()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			records, report, err := builder.Collect(runCtx, root)
			if err != nil {
				var metaErr *catalog.MetadataError
				if errors.As(err, &metaErr) {
					return fmt.Errorf("collect metadata: %w (rerun with --lenient to skip it)", err)
				}
				return fmt.Errorf("collect metadata: %w", err)
			}
			if err := ctx.persist(cmd, output, records); err != nil {
				return err
			}

			logger := logging.WithContext(runCtx, ctx.ensureLogger())
			if skipped := len(report.Skipped) + len(report.Invalid); skipped > 0 {
				logging.WarnWithContext(logger, "collect skipped entries", "collect_partial",
					logging.Int("skipped_folders", len(report.Skipped)),
					logging.Int("invalid_files", len(report.Invalid)),
					logging.String(logging.FieldErrorHint, "see earlier warnings for the affected paths"),
					logging.String(logging.FieldImpact, "catalog is missing those movies"))
			}
			if ctx.outputMode(cmd) == outputJSON {
				return writeJSON(cmd, collectSummary(output, report))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d records to %s\n", len(records), output)
			fmt.Fprintf(out, "Collected %d of %d movie folders\n", report.Collected, report.Folders)
			if n := len(report.Missing); n > 0 {
				fmt.Fprintf(out, "%d %s no metadata file\n", n, textutil.Ternary(n == 1, "folder had", "folders had"))
			}
			if n := len(report.Skipped) + len(report.Invalid); n > 0 {
				fmt.Fprintf(out, "%d %s skipped\n", n, textutil.Ternary(n == 1, "entry", "entries"))
			}
			return nil
		},
	}
}

type collectJSON struct {
	Path      string   `json:"path"`
	Folders   int      `json:"folders"`
	Collected int      `json:"collected"`
	Missing   []string `json:"missing"`
	Invalid   []string `json:"invalid"`
	Skipped   []string `json:"skipped"`
}

func collectSummary(output string, report catalog.CollectReport) collectJSON {
	summary := collectJSON{
		Path:      output,
		Folders:   report.Folders,
		Collected: report.Collected,
		Missing:   append([]string{}, report.Missing...),
		Invalid:   make([]string, 0, len(report.Invalid)),
		Skipped:   make([]string, 0, len(report.Skipped)),
	}
	for _, inv := range report.Invalid {
		summary.Invalid = append(summary.Invalid, inv.Path)
	}
	for _, s := range report.Skipped {
		summary.Skipped = append(summary.Skipped, s.Path)
	}
	return summary
}

func checkOutput(path string) error {
	if result := preflight.CheckOutputFile("output", path); !result.Passed {
		return fmt.Errorf("cannot write catalog: %s", result.Detail)
	}
	return nil
}

func (c *commandContext) persist(cmd *cobra.Command, output string, records []catalog.MovieRecord) error {
	store, err := c.catalogStore(output)
	if err != nil {
		return err
	}
	if err := store.Persist(c.runContext(cmd), records); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}

func (c *commandContext) reportWritten(cmd *cobra.Command, output string, records int) error {
	if c.outputMode(cmd) == outputJSON {
		return writeJSON(cmd, map[string]any{"path": output, "records": records})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", records, output)
	return nil
}
