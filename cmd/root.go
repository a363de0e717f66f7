package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/scagaire/cmd/compare"
	"github.com/yumyai/scagaire/cmd/database"
	"github.com/yumyai/scagaire/cmd/filter"
	"github.com/yumyai/scagaire/cmd/index"
	"github.com/yumyai/scagaire/cmd/serve"
	"github.com/yumyai/scagaire/cmd/species"
	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/logger"
)

const Version = "0.1.0"

// RootCommand creates and returns the root command
func RootCommand(cfg *config.Config) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "scagaire",
		Short:         "Filter AMR gene predictions by bacterial species",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, cfg, &verbose)

	rootCmd.AddCommand(
		filter.Command(cfg),
		species.Command(cfg),
		compare.Command(cfg),
		database.Command(cfg),
		index.Command(cfg),
		serve.Command(cfg),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		return logger.InitLogger(level)
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
// Their defaults come from the environment, so flags take precedence.
func setupFlags(rootCmd *cobra.Command, cfg *config.Config, verbose *bool) {
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory holding the species reference and taxon categories")
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseFile, "database-file", cfg.DatabaseFile, "Species to genes reference, TSV or SQLite index")
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config-file", cfg.ConfigFile, "Taxon categories file, JSON or YAML")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "Enable debug output")
}
