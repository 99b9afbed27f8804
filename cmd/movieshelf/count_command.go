package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"movieshelf/internal/catalog"
	"movieshelf/internal/config"
	"movieshelf/internal/logging"
)

type locationCount struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Layout string `json:"layout"`
	Movies int    `json:"movies"`
}

func newCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count [all|<location>...]",
		Short: "Count movie folders in configured library locations",
		Long: "Count movie folders in the named locations from the config file.\n" +
			"Organized locations count movie folders across all year folders; flat\n" +
			"locations count their immediate subdirectories. Defaults to \"all\".",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			selectors := args
			if len(selectors) == 0 {
				selectors = []string{config.AllLocations}
			}
			var locations []config.Location
			for _, selector := range selectors {
				resolved, err := cfg.ResolveLocations(selector)
				if err != nil {
					return err
				}
				locations = append(locations, resolved...)
			}

			w, err := ctx.newWalker()
			if err != nil {
				return err
			}
			logger := logging.WithContext(ctx.runContext(cmd), ctx.ensureLogger())

			counts := make([]locationCount, 0, len(locations))
			for _, loc := range locations {
				n, err := catalog.Count(w, loc.Path, loc.Layout)
				if err != nil {
					return fmt.Errorf("count %s: %w", loc.Name, err)
				}
				logger.Debug("counted location",
					logging.String("location", loc.Name),
					logging.String("path", loc.Path),
					logging.Int("movies", n))
				counts = append(counts, locationCount{
					Name:   loc.Name,
					Path:   loc.Path,
					Layout: string(loc.Layout),
					Movies: n,
				})
			}

			switch ctx.outputMode(cmd) {
			case outputJSON:
				return writeJSON(cmd, counts)
			case outputTable:
				rows := make([][]string, 0, len(counts))
				for _, c := range counts {
					rows = append(rows, []string{c.Name, c.Layout, strconv.Itoa(c.Movies), c.Path})
				}
				printTable(cmd, []string{"Location", "Layout", "Movies", "Path"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
			default:
				out := cmd.OutOrStdout()
				for _, c := range counts {
					fmt.Fprintf(out, "%d %s movies\n", c.Movies, c.Name)
				}
			}
			return nil
		},
	}
}
