package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"movieshelf/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify configured locations and the log directory are accessible",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg)

			switch ctx.outputMode(cmd) {
			case outputJSON:
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			case outputTable:
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.Name, passFail(r.Passed), r.Detail})
				}
				printTable(cmd, []string{"Check", "Status", "Detail"}, rows, nil)
			default:
				for _, r := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", r.Name, passFail(r.Passed), r.Detail)
				}
			}
			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
