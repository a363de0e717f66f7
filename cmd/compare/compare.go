package compare

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/db"
	"github.com/yumyai/scagaire/pkg/render"
)

type Options struct {
	Species1 string
	Species2 string
	Database string
}

// Command creates the compare command for the genes two species share.
func Command(cfg *config.Config) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Show the AMR genes expected in both of two species",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Species1, "species1", "", "First species")
	cmd.Flags().StringVar(&opts.Species2, "species2", "", "Second species")
	cmd.Flags().StringVarP(&opts.Database, "database", "d", "", "Only compare entries of this AMR database")
	_ = cmd.MarkFlagRequired("species1")
	_ = cmd.MarkFlagRequired("species2")

	return cmd
}

func Run(cfg *config.Config, opts *Options, w io.Writer) error {

	ref, err := db.Load(cfg.ReferencePath())
	if err != nil {
		return err
	}

	for _, sp := range []string{opts.Species1, opts.Species2} {
		if !ref.HasSpecies(sp) {
			return fmt.Errorf("species %q not found in %s", sp, ref.Path)
		}
	}

	genes, err := db.Compare(ref, opts.Species1, opts.Species2, opts.Database)
	if err != nil {
		return err
	}

	logger.Debug("Compared species",
		zap.String("species1", opts.Species1),
		zap.String("species2", opts.Species2),
		zap.Int("shared", len(genes)))

	return render.WriteComparison(w, opts.Species1, opts.Species2, genes)
}
