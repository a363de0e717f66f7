package species

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/internal/util"
	"github.com/yumyai/scagaire/pkg/db"
	"github.com/yumyai/scagaire/pkg/handler/request"
	"github.com/yumyai/scagaire/pkg/render"
)

type Options struct {
	Detailed bool
	Overview bool
}

// Command creates the species command, listing what the reference knows about.
func Command(cfg *config.Config) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "species",
		Short: "List the species and taxon categories in the reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cfg, opts.View(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "Show which AMR databases hold data for each species")
	cmd.Flags().BoolVar(&opts.Overview, "overview", false, "Show totals for the whole reference")
	cmd.MarkFlagsMutuallyExclusive("detailed", "overview")

	return cmd
}

func (o *Options) View() request.SpeciesView {
	switch {
	case o.Overview:
		return request.SpeciesViewOverview
	case o.Detailed:
		return request.SpeciesViewDetailed
	default:
		return request.SpeciesViewSimple
	}
}

func Run(cfg *config.Config, view request.SpeciesView, w io.Writer) error {

	path := cfg.ReferencePath()
	if util.IsSQLitePath(path) {
		return fmt.Errorf("species listing needs the TSV reference, got index %s", path)
	}

	ref, err := db.Load(path)
	if err != nil {
		return err
	}

	switch view {
	case request.SpeciesViewDetailed:
		return render.WriteSpeciesMatrix(w, ref)
	case request.SpeciesViewOverview:
		return render.WriteOverview(w, ref.Overview())
	}

	categories, err := config.LoadCategories(cfg.TaxonConfigPath())
	if err != nil {
		return err
	}
	return render.WriteSpeciesList(w, ref.AllSpecies(), categories.PrintableList())
}
