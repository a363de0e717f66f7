package filter

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/internal/util"
	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/db"
	amrfilter "github.com/yumyai/scagaire/pkg/filter"
	"github.com/yumyai/scagaire/pkg/handler/request"
	"github.com/yumyai/scagaire/pkg/parser"
	"github.com/yumyai/scagaire/pkg/render"
)

type Options struct {
	Species        string
	Database       string
	MinOccurrences int
	ResultsType    string
	OutputFile     string
	SummaryFile    string
	NoHeader       bool
	Overwrite      bool
}

// Command creates the filter command, the main entry point of the tool.
func Command(cfg *config.Config) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "filter [flags] input_file",
		Short: "Filter AMR predictions by species",
		Long: `Keep only the AMR genes of an abricate, staramr or RGI report that have
previously been seen in assemblies of the given species.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cfg, opts, args[0], cmd.OutOrStdout())
		},
	}

	setupFlags(cmd, opts)

	return cmd
}

func setupFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Species, "species", "s", "", "Species name(s) or taxon categories, comma separated")
	cmd.Flags().StringVarP(&opts.Database, "database", "d", "", "Only use reference entries of this AMR database")
	cmd.Flags().IntVarP(&opts.MinOccurrences, "min-occurrences", "m", 0, "Minimum number of reference assemblies a gene must occur in")
	cmd.Flags().StringVarP(&opts.ResultsType, "type", "t", "", "Input format: abricate, abricate-legacy, staramr or rgi (detected when empty)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "", "Write filtered results to this file instead of stdout")
	cmd.Flags().StringVar(&opts.SummaryFile, "summary", "", "Write a per species gene summary to this file")
	cmd.Flags().BoolVar(&opts.NoHeader, "no-header", false, "Do not print the header line")
	cmd.Flags().BoolVarP(&opts.Overwrite, "overwrite", "w", false, "Replace existing output files")

	_ = cmd.MarkFlagRequired("species")
}

func Run(ctx context.Context, cfg *config.Config, opts *Options, input string, stdout io.Writer) error {

	if ctx == nil {
		ctx = context.Background()
	}

	hint, err := parser.ParseHint(opts.ResultsType)
	if err != nil {
		return err
	}

	if !opts.Overwrite {
		for _, out := range []string{opts.OutputFile, opts.SummaryFile} {
			if out != "" && util.FileExists(out) {
				return fmt.Errorf("output file %s already exists, use --overwrite to replace it", out)
			}
		}
	}

	categories, err := config.LoadCategories(cfg.TaxonConfigPath())
	if err != nil {
		return err
	}

	species := categories.Expand(opts.Species)
	if len(species) == 0 {
		return request.ErrNoSpecies
	}

	store, err := db.Open(ctx, cfg.ReferencePath())
	if err != nil {
		return err
	}
	defer store.Close()

	known, err := store.ListSpecies()
	if err != nil {
		return err
	}
	warnUnknown(species, known)

	report, err := parser.Detect(input, hint)
	if err != nil {
		return err
	}

	engine := amrfilter.NewEngine(store, opts.MinOccurrences, opts.Database)
	result, err := engine.FilterAll(report.Records, species)
	if err != nil {
		return err
	}

	logger.Info("Filtered AMR results",
		zap.String("input", input),
		zap.String("format", string(report.Format)),
		zap.Strings("species", species),
		zap.Int("records", len(report.Records)),
		zap.Int("kept", len(result.Records)),
		zap.Int("skipped_rows", report.Skipped()))

	if err := writeResults(opts, stdout, report, result); err != nil {
		return err
	}

	if opts.SummaryFile != "" {
		f, err := util.CreateOutput(opts.SummaryFile, opts.Overwrite)
		if err != nil {
			return err
		}
		if err := render.WriteSummary(f, result.Species, result.BySpecies); err != nil {
			f.Close()
			return fmt.Errorf("write summary: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

func writeResults(opts *Options, stdout io.Writer, report *parser.Report, result *amrfilter.Result) error {

	if opts.OutputFile == "" {
		return writeRecords(stdout, opts, report, result)
	}

	f, err := util.CreateOutput(opts.OutputFile, opts.Overwrite)
	if err != nil {
		return err
	}
	if err := writeRecords(f, opts, report, result); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opts.OutputFile, err)
	}
	return nil
}

func writeRecords(w io.Writer, opts *Options, report *parser.Report, result *amrfilter.Result) error {
	if err := render.WriteRecords(w, report.Delimiter, report.Header, result.Records, !opts.NoHeader); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

func warnUnknown(species, known []string) {
	index := make(map[string]bool, len(known))
	for _, k := range known {
		index[k] = true
	}
	for _, s := range species {
		if !index[s] {
			logger.Warn("Species not found in database", zap.String("species", s))
		}
	}
}
