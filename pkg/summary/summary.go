package summary

import (
	"sort"

	"github.com/yumyai/scagaire/pkg/model"
)

type accumulator struct {
	identity      float64
	identityCount int
	coverage      float64
	coverageCount int
}

// Aggregate counts the records of each gene. Means only use records that
// report the value; a gene without any is given model.Missing.
func Aggregate(records []*model.Record) map[string]*model.Summary {

	out := make(map[string]*model.Summary)
	acc := make(map[string]*accumulator)

	for _, rec := range records {
		s, ok := out[rec.Gene]
		if !ok {
			s = &model.Summary{Gene: rec.Gene}
			out[rec.Gene] = s
			acc[rec.Gene] = &accumulator{}
		}
		s.Count++

		a := acc[rec.Gene]
		if rec.HasIdentity() {
			a.identity += rec.Identity
			a.identityCount++
		}
		if rec.HasCoverage() {
			a.coverage += rec.Coverage
			a.coverageCount++
		}
	}

	for gene, s := range out {
		a := acc[gene]
		s.MeanIdentity = mean(a.identity, a.identityCount)
		s.MeanCoverage = mean(a.coverage, a.coverageCount)
	}

	return out
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return model.Missing
	}
	return sum / float64(n)
}

// Sorted returns the summaries ordered by gene name.
func Sorted(summaries map[string]*model.Summary) []*model.Summary {
	out := make([]*model.Summary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Gene < out[j].Gene
	})
	return out
}
