package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"movieshelf/internal/reconcile"
)

func newUniqueCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "unique <reference> <candidate>",
		Short: "List files in a flat library copy that the organized copy lacks",
		Long: "Compare file names under an organized reference library (year/movie/file)\n" +
			"with a flat candidate library (movie/file) and print each candidate file\n" +
			"name that never appears in the reference. Matching is exact and case-sensitive.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := ctx.newWalker()
			if err != nil {
				return err
			}
			if outputPath != "" {
				if err := checkOutput(outputPath); err != nil {
					return err
				}
			}
			engine := reconcile.NewEngine(w, ctx.ensureLogger())
			result, err := engine.Unique(ctx.runContext(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			if outputPath != "" {
				if err := reconcile.WriteNames(outputPath, result.Unique); err != nil {
					return err
				}
			}

			switch ctx.outputMode(cmd) {
			case outputJSON:
				return writeJSON(cmd, result.Unique)
			case outputTable:
				rows := make([][]string, 0, len(result.Unique))
				for _, name := range result.Unique {
					rows = append(rows, []string{name})
				}
				printTable(cmd, []string{"Unique file"}, rows, nil)
				fmt.Fprintf(cmd.OutOrStdout(), "%d unique of %d candidate files (%d reference files)\n",
					len(result.Unique), result.CandidateFiles, result.ReferenceFiles)
			default:
				if len(result.Unique) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), strings.Join(result.Unique, "\n"))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outputPath, "output", "", "Also write the unique file names as a JSON array to this path")
	return cmd
}

func newExtensionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions <folder>",
		Short: "List the distinct file extensions in a flat movie folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := ctx.newWalker()
			if err != nil {
				return err
			}
			engine := reconcile.NewEngine(w, ctx.ensureLogger())
			extensions, err := engine.Extensions(args[0])
			if err != nil {
				return err
			}
			switch ctx.outputMode(cmd) {
			case outputJSON:
				return writeJSON(cmd, extensions)
			case outputTable:
				rows := make([][]string, 0, len(extensions))
				for _, ext := range extensions {
					rows = append(rows, []string{ext})
				}
				printTable(cmd, []string{"Extension"}, rows, nil)
			default:
				for _, ext := range extensions {
					fmt.Fprintln(cmd.OutOrStdout(), ext)
				}
			}
			return nil
		},
	}
}
