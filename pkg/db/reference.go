package db

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/model"
	"github.com/yumyai/scagaire/pkg/table"
	"go.uber.org/zap"
)

var ErrEmptyReference = errors.New("reference contains no valid entries")

// DataError is returned when the species reference cannot be used at all.
type DataError struct {
	Path string
	Msg  string
	Err  error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("species reference %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("species reference %s: %s", e.Path, e.Msg)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// GeneLookup answers which genes are expected in a species.
// An empty database means any database.
type GeneLookup interface {
	GenesFor(species, database string) (map[string]int, error)
}

// Store is a GeneLookup that can also enumerate its content.
type Store interface {
	GeneLookup
	ListSpecies() ([]string, error)
	ListDatabases() ([]string, error)
	Close() error
}

// Reference columns, in file order.
const (
	colSpecies = iota
	colGene
	colOccurrences
	colSource
	colDatabase
	colMethod
	colDate
)

// SpeciesReference is the in-memory species to genes table.
// It is never modified after loading.
type SpeciesReference struct {
	Path     string
	entries  []model.SpeciesEntry
	bySpec   map[string][]int
	Warnings []model.ValidationWarning
}

func Load(path string) (*SpeciesReference, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, &DataError{Path: path, Msg: "cannot open", Err: err}
	}
	defer f.Close()

	return Read(f, path)
}

func Read(r io.Reader, name string) (*SpeciesReference, error) {

	t, err := table.Read(r)
	if err != nil {
		return nil, &DataError{Path: name, Msg: "cannot read", Err: err}
	}

	rows := t.Rows
	if len(t.Header) > 0 && !isReferenceHeader(t.Header) {
		rows = append([]table.Row{{Line: t.HeaderLine, Fields: t.Header}}, rows...)
	}

	ref := &SpeciesReference{
		Path:   name,
		bySpec: make(map[string][]int),
	}

	for _, row := range rows {
		entry, reason := parseEntry(row.Fields)
		if reason != "" {
			ref.Warnings = append(ref.Warnings, model.ValidationWarning{Line: row.Line, Reason: reason})
			continue
		}
		ref.bySpec[entry.Species] = append(ref.bySpec[entry.Species], len(ref.entries))
		ref.entries = append(ref.entries, entry)
	}

	if len(ref.Warnings) > 0 {
		logger.Warn("Skipped malformed reference rows",
			zap.String("path", name),
			zap.Int("skipped", len(ref.Warnings)),
			zap.Int("loaded", len(ref.entries)))
	}

	if len(ref.entries) == 0 {
		return nil, &DataError{Path: name, Msg: "no usable rows", Err: ErrEmptyReference}
	}

	logger.Debug("Loaded species reference",
		zap.String("path", name),
		zap.Int("entries", len(ref.entries)),
		zap.Int("species", len(ref.bySpec)))

	return ref, nil
}

func isReferenceHeader(fields []string) bool {
	first := strings.TrimSpace(fields[0])
	return strings.EqualFold(first, "species") || strings.HasPrefix(first, "#")
}

func parseEntry(fields []string) (model.SpeciesEntry, string) {

	if len(fields) < 3 {
		return model.SpeciesEntry{}, fmt.Sprintf("expected at least 3 columns, found %d", len(fields))
	}

	get := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	entry := model.SpeciesEntry{
		Species:  get(colSpecies),
		Gene:     get(colGene),
		Source:   get(colSource),
		Database: get(colDatabase),
		Method:   get(colMethod),
		Date:     get(colDate),
	}

	if entry.Species == "" {
		return entry, "missing species"
	}
	if entry.Gene == "" {
		return entry, "missing gene"
	}

	n, err := strconv.Atoi(get(colOccurrences))
	if err != nil {
		return entry, fmt.Sprintf("invalid occurrences %q", get(colOccurrences))
	}
	if n < 0 {
		return entry, fmt.Sprintf("negative occurrences %d", n)
	}
	entry.Occurrences = n

	return entry, ""
}

// GenesFor maps every gene recorded for the species to its occurrence count.
// When a gene appears more than once the largest count wins. Unknown species
// give an empty map.
func (r *SpeciesReference) GenesFor(species, database string) (map[string]int, error) {

	genes := make(map[string]int)
	for _, i := range r.bySpec[species] {
		e := r.entries[i]
		if database != "" && e.Database != database {
			continue
		}
		if cur, ok := genes[e.Gene]; !ok || e.Occurrences > cur {
			genes[e.Gene] = e.Occurrences
		}
	}
	return genes, nil
}

func (r *SpeciesReference) HasSpecies(species string) bool {
	_, ok := r.bySpec[species]
	return ok
}

func (r *SpeciesReference) AllSpecies() []string {
	out := make([]string, 0, len(r.bySpec))
	for s := range r.bySpec {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (r *SpeciesReference) AllDatabases() []string {
	return r.unique(r.entries, func(e model.SpeciesEntry) string { return e.Database })
}

func (r *SpeciesReference) AllGenes() []string {
	return r.unique(r.entries, func(e model.SpeciesEntry) string { return e.Gene })
}

// SpeciesDatabases lists the databases holding data for one species.
func (r *SpeciesReference) SpeciesDatabases(species string) []string {
	return r.unique(r.Entries(species, ""), func(e model.SpeciesEntry) string { return e.Database })
}

func (r *SpeciesReference) ListSpecies() ([]string, error) {
	return r.AllSpecies(), nil
}

func (r *SpeciesReference) ListDatabases() ([]string, error) {
	return r.AllDatabases(), nil
}

func (r *SpeciesReference) Close() error {
	return nil
}

// Entries returns the raw rows of a species in file order.
func (r *SpeciesReference) Entries(species, database string) []model.SpeciesEntry {
	var out []model.SpeciesEntry
	for _, i := range r.bySpec[species] {
		if database != "" && r.entries[i].Database != database {
			continue
		}
		out = append(out, r.entries[i])
	}
	return out
}

// All returns every entry in file order.
func (r *SpeciesReference) All() []model.SpeciesEntry {
	out := make([]model.SpeciesEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

type Overview struct {
	Species     int `json:"species"`
	Databases   int `json:"databases"`
	Genes       int `json:"genes"`
	Occurrences int `json:"occurrences"`
}

func (r *SpeciesReference) Overview() Overview {
	total := 0
	for _, e := range r.entries {
		total += e.Occurrences
	}
	return Overview{
		Species:     len(r.bySpec),
		Databases:   len(r.AllDatabases()),
		Genes:       len(r.AllGenes()),
		Occurrences: total,
	}
}

func (r *SpeciesReference) unique(entries []model.SpeciesEntry, key func(model.SpeciesEntry) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range entries {
		k := key(e)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
