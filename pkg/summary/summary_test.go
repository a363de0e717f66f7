package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/scagaire/pkg/model"
)

func rec(gene string, identity, coverage float64) *model.Record {
	return &model.Record{Gene: gene, Identity: identity, Coverage: coverage}
}

func TestAggregate(t *testing.T) {
	got := Aggregate([]*model.Record{
		rec("blaTEM-1", 90, 100),
		rec("tet(A)", model.Missing, model.Missing),
		rec("blaTEM-1", 95, model.Missing),
		rec("blaTEM-1", model.Missing, 80),
	})

	require.Len(t, got, 2)

	tem := got["blaTEM-1"]
	assert.Equal(t, 3, tem.Count)
	assert.InDelta(t, 92.5, tem.MeanIdentity, 1e-9)
	assert.InDelta(t, 90.0, tem.MeanCoverage, 1e-9)

	tet := got["tet(A)"]
	assert.Equal(t, 1, tet.Count)
	assert.False(t, tet.HasMeanIdentity())
	assert.False(t, tet.HasMeanCoverage())
}

func TestAggregateCountsMatchInput(t *testing.T) {
	records := []*model.Record{
		rec("a", 1, 1), rec("b", 1, 1), rec("a", 1, 1), rec("c", 1, 1), rec("a", 1, 1),
	}

	total := 0
	for _, s := range Aggregate(records) {
		total += s.Count
	}
	assert.Equal(t, len(records), total)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Sorted(Aggregate(nil)))
}

func TestSorted(t *testing.T) {
	sorted := Sorted(Aggregate([]*model.Record{
		rec("tet(A)", 1, 1), rec("aac(3)-IV", 1, 1), rec("blaTEM-1", 1, 1),
	}))

	genes := make([]string, len(sorted))
	for i, s := range sorted {
		genes[i] = s.Gene
	}
	assert.Equal(t, []string{"aac(3)-IV", "blaTEM-1", "tet(A)"}, genes)
}
