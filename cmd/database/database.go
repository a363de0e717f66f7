package database

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/internal/util"
	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/db"
	"github.com/yumyai/scagaire/pkg/parser"
)

type Options struct {
	Species     string
	Database    string
	Source      string
	OutputFile  string
	ResultsType string
	DryRun      bool
}

// Command creates the database command, which adds a species to the reference
// from AMR reports of its assemblies.
func Command(cfg *config.Config) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "database [flags] report...",
		Short: "Add reference entries for a species from AMR reports of its assemblies",
		Long: `Count in how many reports each AMR gene occurs and append one reference
row per gene for the species. Each report is expected to describe one assembly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cfg, opts, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Species, "species", "s", "", "Species the assemblies belong to")
	cmd.Flags().StringVarP(&opts.Database, "database", "d", "", "AMR database of the reports (taken from the reports when empty)")
	cmd.Flags().StringVar(&opts.Source, "source", "", "Tool that produced the reports (taken from the detected format when empty)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "", "Reference file to append to (defaults to the configured reference)")
	cmd.Flags().StringVarP(&opts.ResultsType, "type", "t", "", "Input format: abricate, abricate-legacy, staramr or rgi (detected when empty)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print the new rows instead of appending them")
	_ = cmd.MarkFlagRequired("species")

	return cmd
}

func Run(cfg *config.Config, opts *Options, inputs []string, stdout io.Writer) error {

	species := strings.TrimSpace(opts.Species)
	if species == "" {
		return fmt.Errorf("no species given")
	}

	output := opts.OutputFile
	if output == "" {
		output = cfg.ReferencePath()
	}
	if !opts.DryRun && util.IsSQLitePath(output) {
		return fmt.Errorf("cannot append to index %s, append to the TSV and rebuild the index", output)
	}

	hint, err := parser.ParseHint(opts.ResultsType)
	if err != nil {
		return err
	}

	reports := make([]*parser.Report, 0, len(inputs))
	for _, input := range inputs {
		report, err := parser.Detect(input, hint)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	database := opts.Database
	if database == "" {
		if database, err = reportDatabase(reports); err != nil {
			return err
		}
	}

	builder := db.NewBuilder(species, database)
	if opts.Source != "" {
		builder.Source = opts.Source
	} else {
		builder.Source = sourceOf(reports[0].Format)
	}

	entries := builder.Entries(db.CountGenes(reports))

	logger.Info("Built reference entries",
		zap.String("species", species),
		zap.String("database", database),
		zap.Int("reports", len(reports)),
		zap.Int("genes", len(entries)))

	if opts.DryRun {
		return db.WriteEntries(stdout, entries)
	}

	if err := db.AppendEntries(output, entries); err != nil {
		return err
	}
	logger.Info("Appended to reference", zap.String("path", output))
	return nil
}

// reportDatabase returns the single AMR database named by the records.
func reportDatabase(reports []*parser.Report) (string, error) {

	found := ""
	for _, report := range reports {
		for _, rec := range report.Records {
			switch {
			case rec.Database == "":
			case found == "":
				found = rec.Database
			case rec.Database != found:
				return "", fmt.Errorf("reports mix AMR databases %s and %s, use --database", found, rec.Database)
			}
		}
	}

	if found == "" {
		return "", fmt.Errorf("reports do not name an AMR database, use --database")
	}
	return found, nil
}

func sourceOf(format parser.Format) string {
	if format == parser.FormatAbricateLegacy {
		return string(parser.FormatAbricate)
	}
	return string(format)
}
