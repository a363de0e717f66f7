// Filtering of AMR predictions down to the genes expected in a species.

package filter

import (
	"fmt"

	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/db"
	"github.com/yumyai/scagaire/pkg/model"
	"go.uber.org/zap"
)

type Engine struct {
	Lookup db.GeneLookup
	// Genes seen in fewer reference assemblies are dropped. Inclusive.
	MinOccurrences int
	// Restricts the reference to one AMR database when set.
	Database string
}

func NewEngine(lookup db.GeneLookup, minOccurrences int, database string) *Engine {
	return &Engine{Lookup: lookup, MinOccurrences: minOccurrences, Database: database}
}

// Result holds the records that passed, in input order.
type Result struct {
	Records []*model.Record
	Matched []model.SpeciesGene
	// BySpecies keeps what each requested species let through.
	BySpecies map[string][]*model.Record
	Species   []string
}

// Filter keeps the records whose gene is expected in the species.
func (e *Engine) Filter(records []*model.Record, species string) (*Result, error) {

	kept, matched, err := e.filterOne(records, species)
	if err != nil {
		return nil, err
	}

	return &Result{
		Records:   kept,
		Matched:   matched,
		BySpecies: map[string][]*model.Record{species: kept},
		Species:   []string{species},
	}, nil
}

// FilterAll filters against each species on its own and merges the results.
// A record passing for several species appears once, at its first position.
// With more than one species, records that are exact copies of an earlier one
// (same Record.Key) are dropped from the union and from BySpecies, so per
// species summaries count the rows that are written. A single species gives
// the same records as Filter.
func (e *Engine) FilterAll(records []*model.Record, species []string) (*Result, error) {

	result := &Result{
		Records:   []*model.Record{},
		BySpecies: make(map[string][]*model.Record, len(species)),
	}

	passed := make(map[*model.Record]bool)
	for _, sp := range species {
		if _, dup := result.BySpecies[sp]; dup {
			continue
		}

		kept, matched, err := e.filterOne(records, sp)
		if err != nil {
			return nil, err
		}

		result.Species = append(result.Species, sp)
		result.BySpecies[sp] = kept
		result.Matched = append(result.Matched, matched...)
		for _, rec := range kept {
			passed[rec] = true
		}
	}

	dedupe := len(result.Species) > 1
	written := make(map[*model.Record]bool, len(passed))
	seen := make(map[string]bool)
	for _, rec := range records {
		if !passed[rec] {
			continue
		}
		if dedupe {
			key := rec.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		written[rec] = true
		result.Records = append(result.Records, rec)
	}

	if dedupe {
		for sp, kept := range result.BySpecies {
			subset := []*model.Record{}
			for _, rec := range kept {
				if written[rec] {
					subset = append(subset, rec)
				}
			}
			result.BySpecies[sp] = subset
		}
	}

	return result, nil
}

func (e *Engine) filterOne(records []*model.Record, species string) ([]*model.Record, []model.SpeciesGene, error) {

	genes, err := e.Lookup.GenesFor(species, e.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("look up genes of %s: %w", species, err)
	}

	if len(genes) == 0 {
		logger.Warn("No reference genes for species",
			zap.String("species", species),
			zap.String("database", e.Database))
	}

	threshold := e.MinOccurrences
	if threshold < 0 {
		threshold = 0
	}

	kept := []*model.Record{}
	var matched []model.SpeciesGene
	seenGene := make(map[string]bool)

	for _, rec := range records {
		n, ok := genes[rec.Gene]
		if !ok || n < threshold {
			continue
		}
		kept = append(kept, rec)
		if !seenGene[rec.Gene] {
			seenGene[rec.Gene] = true
			matched = append(matched, model.SpeciesGene{Species: species, Gene: rec.Gene})
		}
	}

	logger.Debug("Filtered records",
		zap.String("species", species),
		zap.Int("input", len(records)),
		zap.Int("kept", len(kept)))

	return kept, matched, nil
}
