package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "movieshelf",
		Short:         "Catalog and reconcile movie library folders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputMode(flags.output); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	pf.StringVar(&flags.sort, "sort", "", "Directory listing order: none, lexical, or collated")
	pf.BoolVar(&flags.lenient, "lenient", false, "Skip unreadable folders and malformed metadata instead of aborting")
	pf.StringVarP(&flags.output, "output-format", "o", outputAuto, "Result format: auto, plain, table, or json")

	rootCmd.AddCommand(newCountCommand(ctx))
	rootCmd.AddCommand(newGenerateOrderedCommand(ctx))
	rootCmd.AddCommand(newGenerateFlatCommand(ctx))
	rootCmd.AddCommand(newCollectCommand(ctx))
	rootCmd.AddCommand(newFindYearCommand(ctx))
	rootCmd.AddCommand(newFindMovieCommand(ctx))
	rootCmd.AddCommand(newUniqueCommand(ctx))
	rootCmd.AddCommand(newExtensionsCommand(ctx))
	rootCmd.AddCommand(newIndexCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
