package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"movieshelf/internal/config"
	"movieshelf/internal/fileutil"
	"movieshelf/internal/textutil"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the movieshelf configuration",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration with placeholder library locations",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}
			if err := fileutil.EnsureParentDir(target); err != nil {
				return err
			}
			if _, err := os.Stat(target); err == nil && !overwrite {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("check config path: %w", err)
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Point each [[locations]] path at a library root, then run 'movieshelf config validate'.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func configTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

type locationReport struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
	Path   string `json:"path"`
	Status string `json:"status"`
}

type configReport struct {
	ConfigPath   string           `json:"config_path"`
	FileExists   bool             `json:"file_exists"`
	LogFile      string           `json:"log_file"`
	MetadataFile string           `json:"metadata_file"`
	Sort         string           `json:"sort"`
	Strict       bool             `json:"strict"`
	LockTimeout  int              `json:"lock_timeout_seconds"`
	Locations    []locationReport `json:"locations"`
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration and show each library location",
		Long: "Load and validate the configuration, then list every [[locations]] entry\n" +
			"with its layout and whether its path is an existing directory. Missing\n" +
			"paths are reported but do not fail validation; 'movieshelf check' does.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(ctx.flags.config))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			report := buildConfigReport(cfg, path, exists)

			switch ctx.outputMode(cmd) {
			case outputJSON:
				return writeJSON(cmd, report)
			case outputTable:
				printConfigSummary(cmd, report)
				rows := make([][]string, 0, len(report.Locations))
				for _, loc := range report.Locations {
					rows = append(rows, []string{loc.Name, loc.Layout, loc.Status, loc.Path})
				}
				printTable(cmd, []string{"Location", "Layout", "Path status", "Path"}, rows, nil)
			default:
				printConfigSummary(cmd, report)
				out := cmd.OutOrStdout()
				for _, loc := range report.Locations {
					fmt.Fprintf(out, "Location %s: %s %s (%s)\n", loc.Name, loc.Layout, loc.Path, loc.Status)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			return nil
		},
	}
}

func buildConfigReport(cfg *config.Config, path string, exists bool) configReport {
	report := configReport{
		ConfigPath:   path,
		FileExists:   exists,
		LogFile:      cfg.LogFilePath(),
		MetadataFile: cfg.Catalog.MetadataFile,
		Sort:         cfg.Catalog.Sort,
		Strict:       cfg.Catalog.Strict,
		LockTimeout:  cfg.Catalog.LockTimeoutSeconds,
		Locations:    make([]locationReport, 0, len(cfg.Locations)),
	}
	for _, loc := range cfg.Locations {
		report.Locations = append(report.Locations, locationReport{
			Name:   loc.Name,
			Layout: string(loc.Layout),
			Path:   loc.Path,
			Status: locationStatus(loc.Path),
		})
	}
	return report
}

func locationStatus(path string) string {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "missing"
	case err != nil:
		return "unreadable"
	case !info.IsDir():
		return "not a directory"
	default:
		return "ok"
	}
}

func printConfigSummary(cmd *cobra.Command, report configReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config path: %s\n", report.ConfigPath)
	if !report.FileExists {
		fmt.Fprintln(out, "Config file did not exist; defaults were used")
	}
	fmt.Fprintf(out, "Log file: %s\n", report.LogFile)
	fmt.Fprintf(out, "Catalog: metadata_file=%s sort=%s mode=%s lock_timeout=%ds\n",
		report.MetadataFile, report.Sort,
		textutil.Ternary(report.Strict, "strict", "lenient"),
		report.LockTimeout)
	fmt.Fprintf(out, "Locations: %d\n", len(report.Locations))
}
