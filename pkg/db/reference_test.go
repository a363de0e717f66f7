package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReference = "testdata/species_to_genes.tsv"

func loadTestReference(t *testing.T) *SpeciesReference {
	t.Helper()
	ref, err := Load(testReference)
	require.NoError(t, err)
	return ref
}

func TestLoad(t *testing.T) {
	ref := loadTestReference(t)

	assert.Len(t, ref.All(), 9)
	require.Len(t, ref.Warnings, 3)
	assert.Equal(t, 11, ref.Warnings[0].Line)
	assert.Equal(t, 12, ref.Warnings[1].Line)
	assert.Equal(t, 13, ref.Warnings[2].Line)
}

func TestLoadWithoutHeader(t *testing.T) {
	input := "Escherichia coli\tblaTEM-1\t3\tabricate\tncbi\tauto\t20191008\n"

	ref, err := Read(strings.NewReader(input), "inline")
	require.NoError(t, err)

	genes, err := ref.GenesFor("Escherichia coli", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"blaTEM-1": 3}, genes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.tsv"))

	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadNoValidRows(t *testing.T) {
	_, err := Read(strings.NewReader("species\tgene\toccurrences\nE. coli\tblaTEM-1\t-4\n"), "bad")
	assert.ErrorIs(t, err, ErrEmptyReference)

	_, err = Read(strings.NewReader(""), "empty")
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestGenesFor(t *testing.T) {
	ref := loadTestReference(t)

	tests := []struct {
		name     string
		species  string
		database string
		want     map[string]int
	}{
		{"AllDatabasesKeepsMax", "Escherichia coli", "", map[string]int{"blaTEM-1": 150, "tet(A)": 45, "mcr-1": 0}},
		{"RestrictedDatabase", "Escherichia coli", "resfinder", map[string]int{"blaTEM-1": 80}},
		{"UnknownDatabase", "Escherichia coli", "card", map[string]int{}},
		{"UnknownSpecies", "Klebsiella pneumoniae", "", map[string]int{}},
		{"CaseSensitive", "escherichia coli", "", map[string]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			genes, err := ref.GenesFor(tt.species, tt.database)
			require.NoError(t, err)
			assert.Equal(t, tt.want, genes)
		})
	}
}

func TestListings(t *testing.T) {
	ref := loadTestReference(t)

	assert.Equal(t, []string{"Campylobacter jejuni", "Escherichia coli", "Salmonella enterica"}, ref.AllSpecies())
	assert.Equal(t, []string{"ncbi", "resfinder"}, ref.AllDatabases())
	assert.Equal(t, []string{"aac(6')-Iaa", "blaOXA-785", "blaTEM-1", "mcr-1", "sul2", "tet(A)"}, ref.AllGenes())
	assert.Equal(t, []string{"ncbi", "resfinder"}, ref.SpeciesDatabases("Escherichia coli"))
	assert.Equal(t, []string{"ncbi"}, ref.SpeciesDatabases("Salmonella enterica"))
	assert.Empty(t, ref.SpeciesDatabases("Unknown"))

	assert.True(t, ref.HasSpecies("Campylobacter jejuni"))
	assert.False(t, ref.HasSpecies("Campylobacter"))
}

func TestEntries(t *testing.T) {
	ref := loadTestReference(t)

	entries := ref.Entries("Escherichia coli", "ncbi")
	require.Len(t, entries, 4)
	assert.Equal(t, "blaTEM-1", entries[0].Gene)
	assert.Equal(t, 120, entries[0].Occurrences)
	assert.Equal(t, "20200101", entries[2].Date)
}

func TestOverview(t *testing.T) {
	assert.Equal(t, Overview{Species: 3, Databases: 2, Genes: 6, Occurrences: 843}, loadTestReference(t).Overview())
}

func TestCompare(t *testing.T) {
	ref := loadTestReference(t)

	got, err := Compare(ref, "Escherichia coli", "Salmonella enterica", "")
	require.NoError(t, err)
	assert.Equal(t, []Comparison{{Gene: "blaTEM-1", Count1: 150, Count2: 30}}, got)

	got, err = Compare(ref, "Escherichia coli", "Salmonella enterica", "resfinder")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Compare(ref, "Escherichia coli", "Unknown", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
