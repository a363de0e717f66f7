package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/scagaire/pkg/model"
	"github.com/yumyai/scagaire/pkg/table"
)

func readTable(t *testing.T, name string) *table.Table {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	tbl, err := table.Read(f)
	require.NoError(t, err)
	return tbl
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		file  string
		valid map[Format]bool
	}{
		{"abricate.tab", map[Format]bool{FormatAbricate: true, FormatAbricateLegacy: true, FormatStarAmr: false, FormatRgi: false}},
		{"abricate_legacy.tab", map[Format]bool{FormatAbricate: false, FormatAbricateLegacy: true, FormatStarAmr: false, FormatRgi: false}},
		{"staramr.tsv", map[Format]bool{FormatAbricate: false, FormatAbricateLegacy: false, FormatStarAmr: true, FormatRgi: false}},
		{"rgi.txt", map[Format]bool{FormatAbricate: false, FormatAbricateLegacy: false, FormatStarAmr: false, FormatRgi: true}},
		{"unknown.tsv", map[Format]bool{FormatAbricate: false, FormatAbricateLegacy: false, FormatStarAmr: false, FormatRgi: false}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			tbl := readTable(t, tt.file)
			for _, p := range Parsers() {
				assert.Equal(t, tt.valid[p.Format()], p.IsValid(tbl), "format %s", p.Format())
			}
		})
	}
}

func TestIsValidNeverPanics(t *testing.T) {
	for _, p := range Parsers() {
		assert.False(t, p.IsValid(nil))
		assert.False(t, p.IsValid(&table.Table{}))
	}
}

func TestIsValidIgnoresColumnOrder(t *testing.T) {
	header := append([]string{}, starAmrHeader...)
	header[0], header[len(header)-1] = header[len(header)-1], header[0]

	assert.True(t, NewStarAmr().IsValid(&table.Table{Header: header}))
}

func TestIsValidIsCaseSensitive(t *testing.T) {
	header := make([]string, len(abricateLegacyHeader))
	for i, h := range abricateLegacyHeader {
		header[i] = strings.ToLower(h)
	}

	assert.False(t, NewAbricateLegacy().IsValid(&table.Table{Header: header}))
}

func TestParseAbricate(t *testing.T) {
	tbl := readTable(t, "abricate.tab")

	report, err := NewAbricate().Parse("abricate.tab", tbl)
	require.NoError(t, err)

	require.Len(t, report.Records, 3)
	assert.Equal(t, 2, report.Skipped())
	assert.Equal(t, FormatAbricate, report.Format)

	first := report.Records[0]
	assert.Equal(t, "sample.fa", first.SourceFile)
	assert.Equal(t, "contig_1", first.SequenceID)
	assert.Equal(t, 1000, first.Start)
	assert.Equal(t, 1861, first.End)
	assert.Equal(t, model.StrandPlus, first.Strand)
	assert.Equal(t, "blaTEM-1", first.Gene)
	assert.InDelta(t, 100.0, first.Coverage, 1e-9)
	assert.InDelta(t, 100.0, first.Identity, 1e-9)
	assert.Equal(t, "ncbi", first.Database)
	assert.Equal(t, "class A beta-lactamase TEM-1", first.Annotation)
	assert.Equal(t, 2, first.Line)

	second := report.Records[1]
	assert.Equal(t, model.StrandMinus, second.Strand)
	assert.Equal(t, 1454, second.Start)
	assert.Equal(t, 250, second.End)

	assert.Equal(t, 5, report.Warnings[0].Line)
	assert.Contains(t, report.Warnings[0].Reason, "gene")
	assert.Equal(t, 6, report.Warnings[1].Line)
	assert.Contains(t, report.Warnings[1].Reason, "columns")
}

func TestParseAbricateLegacy(t *testing.T) {
	report, err := NewAbricateLegacy().Parse("legacy", readTable(t, "abricate_legacy.tab"))
	require.NoError(t, err)

	require.Len(t, report.Records, 2)
	assert.Equal(t, model.StrandUnknown, report.Records[0].Strand)
	assert.Equal(t, "catA1", report.Records[1].Gene)
	assert.InDelta(t, 82.73, report.Records[1].Coverage, 1e-9)
}

func TestParseStarAmr(t *testing.T) {
	report, err := NewStarAmr().Parse("resfinder.tsv", readTable(t, "staramr.tsv"))
	require.NoError(t, err)

	require.Len(t, report.Records, 2)
	rec := report.Records[1]
	assert.Equal(t, "SRR1952908", rec.SourceFile)
	assert.Equal(t, "sul2", rec.Gene)
	assert.Equal(t, "contig00017", rec.SequenceID)
	assert.Equal(t, 1089, rec.Start)
	assert.Equal(t, 274, rec.End)
	assert.Equal(t, model.StrandUnknown, rec.Strand)
	assert.Equal(t, "resfinder", rec.Database)
	assert.Equal(t, "sulfisoxazole", rec.Annotation)
}

func TestParseRgi(t *testing.T) {
	report, err := NewRgi().Parse("sample.rgi.txt", readTable(t, "rgi.txt"))
	require.NoError(t, err)

	require.Len(t, report.Records, 2)
	rec := report.Records[1]
	assert.Equal(t, "sample.rgi.txt", rec.SourceFile)
	assert.Equal(t, "acrB", rec.Gene)
	assert.Equal(t, "contig_4_2", rec.SequenceID)
	assert.Equal(t, 10, rec.Start)
	assert.Equal(t, 1200, rec.End)
	assert.Equal(t, model.StrandMinus, rec.Strand)
	assert.InDelta(t, 98.5, rec.Identity, 1e-9)
	assert.InDelta(t, 103.1, rec.Coverage, 1e-9)
	assert.Equal(t, "card", rec.Database)
}

func TestParseMissingPercentages(t *testing.T) {
	input := strings.Join(abricateLegacyHeader, "\t") + "\n" +
		"a.fa\tc1\t1\t10\tgeneX\t1-10/10\t=\t0/0\t\tn/a\tncbi\tACC\tproduct\n"

	tbl, err := table.Read(strings.NewReader(input))
	require.NoError(t, err)

	report, err := NewAbricateLegacy().Parse("a", tbl)
	require.NoError(t, err)
	require.Len(t, report.Records, 1)

	assert.False(t, report.Records[0].HasCoverage())
	assert.False(t, report.Records[0].HasIdentity())
}

func TestParseInvalidCoordinate(t *testing.T) {
	input := strings.Join(abricateLegacyHeader, "\t") + "\n" +
		"a.fa\tc1\tone\t10\tgeneX\t1-10/10\t=\t0/0\t100\t100\tncbi\tACC\tproduct\n"

	tbl, err := table.Read(strings.NewReader(input))
	require.NoError(t, err)

	report, err := NewAbricateLegacy().Parse("a", tbl)
	require.NoError(t, err)
	assert.Empty(t, report.Records)
	assert.Equal(t, 1, report.Skipped())
}

func TestParseRejectsWrongHeader(t *testing.T) {
	_, err := NewRgi().Parse("abricate.tab", readTable(t, "abricate.tab"))

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, FormatRgi, formatErr.Format)
}
