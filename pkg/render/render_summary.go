package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yumyai/scagaire/pkg/model"
	"github.com/yumyai/scagaire/pkg/summary"
)

const noResults = "no_results"

// WriteSummary writes one line per species and gene:
// species, gene, count, mean identity and mean coverage. A species without
// any filtered record gets a single "no_results" line.
func WriteSummary(w io.Writer, species []string, bySpecies map[string][]*model.Record) error {

	for _, sp := range species {
		records := bySpecies[sp]
		if len(records) == 0 {
			if _, err := fmt.Fprintf(w, "%s\t%s\t0\n", sp, noResults); err != nil {
				return err
			}
			continue
		}

		for _, s := range summary.Sorted(summary.Aggregate(records)) {
			_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				sp, s.Gene, s.Count, formatMean(s.MeanIdentity), formatMean(s.MeanCoverage))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func formatMean(v float64) string {
	if v == model.Missing {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
