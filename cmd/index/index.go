package index

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/internal/util"
	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/db"
)

type Options struct {
	Input  string
	Output string
}

// Command creates the index command, which copies the TSV reference into SQLite.
func Command(cfg *config.Config) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build an SQLite index of the species reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Reference TSV (defaults to the configured reference)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Index file, must end in .db, .sqlite or .sqlite3")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func Run(ctx context.Context, cfg *config.Config, opts *Options) error {

	if ctx == nil {
		ctx = context.Background()
	}

	input := opts.Input
	if input == "" {
		input = cfg.ReferencePath()
	}
	if util.IsSQLitePath(input) {
		return fmt.Errorf("input %s is already an index", input)
	}
	if !util.IsSQLitePath(opts.Output) {
		return fmt.Errorf("index file %s must end in .db, .sqlite or .sqlite3", opts.Output)
	}

	ref, err := db.Load(input)
	if err != nil {
		return err
	}

	if err := db.ImportReference(ctx, opts.Output, ref); err != nil {
		return err
	}

	logger.Info("Indexed species reference",
		zap.String("input", input),
		zap.String("output", opts.Output),
		zap.Int("entries", len(ref.All())))
	return nil
}
