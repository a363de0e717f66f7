package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/scagaire/pkg/db"
	"github.com/yumyai/scagaire/pkg/model"
)

const reference = "species\tgene\toccurrences\tsource\tdatabase\tmethod\tdate\n" +
	"Escherichia coli\tA\t5\tabricate\tncbi\tauto\t20191008\n" +
	"Escherichia coli\tB\t10\tabricate\tncbi\tauto\t20191008\n" +
	"Escherichia coli\tC\t0\tabricate\tncbi\tauto\t20191008\n" +
	"Escherichia coli\tE\t2\tabricate\tresfinder\tauto\t20191008\n" +
	"Salmonella enterica\tD\t7\tabricate\tncbi\tauto\t20191008\n" +
	"Salmonella enterica\tA\t1\tabricate\tncbi\tauto\t20191008\n"

func testReference(t *testing.T) *db.SpeciesReference {
	t.Helper()
	ref, err := db.Read(strings.NewReader(reference), "inline")
	require.NoError(t, err)
	return ref
}

func records(genes ...string) []*model.Record {
	out := make([]*model.Record, len(genes))
	for i, g := range genes {
		out[i] = &model.Record{SourceFile: "s.fa", SequenceID: "contig", Start: i + 1, End: i + 100, Gene: g}
	}
	return out
}

func genesOf(recs []*model.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Gene
	}
	return out
}

func TestFilter(t *testing.T) {
	input := records("A", "B", "C", "D", "A", "B", "C", "D", "E", "F")

	tests := []struct {
		name     string
		species  string
		min      int
		database string
		want     []string
	}{
		{"ThresholdOne", "Escherichia coli", 1, "ncbi", []string{"A", "B", "A", "B"}},
		{"ZeroKeepsZeroCount", "Escherichia coli", 0, "ncbi", []string{"A", "B", "C", "A", "B", "C"}},
		{"NegativeActsAsZero", "Escherichia coli", -3, "ncbi", []string{"A", "B", "C", "A", "B", "C"}},
		{"InclusiveBoundary", "Escherichia coli", 5, "ncbi", []string{"A", "B", "A", "B"}},
		{"AboveBoundary", "Escherichia coli", 6, "ncbi", []string{"B", "B"}},
		{"AnyDatabase", "Escherichia coli", 1, "", []string{"A", "B", "A", "B", "E"}},
		{"OtherSpecies", "Salmonella enterica", 1, "", []string{"A", "D", "A", "D"}},
		{"UnknownSpecies", "Klebsiella pneumoniae", 1, "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(testReference(t), tt.min, tt.database)
			result, err := engine.Filter(input, tt.species)
			require.NoError(t, err)
			assert.Equal(t, tt.want, genesOf(result.Records))
		})
	}
}

func TestFilterKeepsSameRecords(t *testing.T) {
	input := records("A", "F")
	engine := NewEngine(testReference(t), 1, "")

	result, err := engine.Filter(input, "Escherichia coli")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Same(t, input[0], result.Records[0])
}

func TestFilterIsIdempotent(t *testing.T) {
	engine := NewEngine(testReference(t), 1, "")
	input := records("A", "B", "C", "D", "E", "F")

	once, err := engine.Filter(input, "Escherichia coli")
	require.NoError(t, err)
	twice, err := engine.Filter(once.Records, "Escherichia coli")
	require.NoError(t, err)

	assert.Equal(t, once.Records, twice.Records)
}

func TestFilterThresholdIsMonotonic(t *testing.T) {
	input := records("A", "B", "C", "D", "E", "F", "A")

	prev := -1
	for threshold := 10; threshold >= 0; threshold-- {
		result, err := NewEngine(testReference(t), threshold, "").Filter(input, "Escherichia coli")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(result.Records), prev)
		prev = len(result.Records)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	result, err := NewEngine(testReference(t), 1, "").Filter(nil, "Escherichia coli")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Matched)
}

func TestFilterMatched(t *testing.T) {
	result, err := NewEngine(testReference(t), 1, "").Filter(records("B", "A", "B"), "Escherichia coli")
	require.NoError(t, err)

	assert.Equal(t, []model.SpeciesGene{
		{Species: "Escherichia coli", Gene: "B"},
		{Species: "Escherichia coli", Gene: "A"},
	}, result.Matched)
}

func TestFilterAll(t *testing.T) {
	input := records("D", "B", "A", "E", "F")
	engine := NewEngine(testReference(t), 1, "ncbi")

	result, err := engine.FilterAll(input, []string{"Escherichia coli", "Salmonella enterica", "Escherichia coli"})
	require.NoError(t, err)

	assert.Equal(t, []string{"D", "B", "A"}, genesOf(result.Records))
	assert.Equal(t, []string{"Escherichia coli", "Salmonella enterica"}, result.Species)
	assert.Equal(t, []string{"B", "A"}, genesOf(result.BySpecies["Escherichia coli"]))
	assert.Equal(t, []string{"D", "A"}, genesOf(result.BySpecies["Salmonella enterica"]))
	assert.Len(t, result.Matched, 4)
}

func TestFilterAllDropsExactDuplicates(t *testing.T) {
	a := &model.Record{SourceFile: "s.fa", SequenceID: "c1", Start: 1, End: 10, Gene: "A", Database: "ncbi"}
	dup := *a
	dup.Database = "resfinder"
	input := []*model.Record{a, &dup}

	result, err := NewEngine(testReference(t), 1, "").FilterAll(input, []string{"Escherichia coli", "Salmonella enterica"})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Same(t, a, result.Records[0])
	// Per species subsets match the written rows.
	assert.Equal(t, []*model.Record{a}, result.BySpecies["Escherichia coli"])
	assert.Equal(t, []*model.Record{a}, result.BySpecies["Salmonella enterica"])
}

func TestFilterAllSingleSpeciesMatchesFilter(t *testing.T) {
	a := &model.Record{SourceFile: "s.fa", SequenceID: "c1", Start: 1, End: 10, Gene: "A", Database: "ncbi"}
	dup := *a
	dup.Database = "resfinder"
	input := []*model.Record{a, &dup}
	engine := NewEngine(testReference(t), 1, "")

	single, err := engine.Filter(input, "Escherichia coli")
	require.NoError(t, err)
	all, err := engine.FilterAll(input, []string{"Escherichia coli", "Escherichia coli"})
	require.NoError(t, err)

	assert.Len(t, single.Records, 2)
	assert.Equal(t, single.Records, all.Records)
	assert.Equal(t, all.Records, all.BySpecies["Escherichia coli"])
}

type failingLookup struct{}

func (failingLookup) GenesFor(string, string) (map[string]int, error) {
	return nil, errors.New("index unavailable")
}

func TestFilterLookupError(t *testing.T) {
	_, err := NewEngine(failingLookup{}, 1, "").Filter(records("A"), "Escherichia coli")
	assert.ErrorContains(t, err, "index unavailable")
}
