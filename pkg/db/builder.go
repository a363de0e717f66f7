package db

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/yumyai/scagaire/pkg/model"
	"github.com/yumyai/scagaire/pkg/parser"
)

const DateLayout = "20060102"

// Builder turns AMR reports of assemblies of one species into reference entries.
type Builder struct {
	Species  string
	Database string
	// Source names the tool the reports came from. Defaults to "abricate".
	Source string
	Method string
	Now    func() time.Time
}

func NewBuilder(species, database string) *Builder {
	return &Builder{
		Species:  species,
		Database: database,
		Source:   "abricate",
		Method:   "auto",
		Now:      time.Now,
	}
}

// CountGenes counts in how many reports each gene occurs. A gene found
// several times in one report counts once.
func CountGenes(reports []*parser.Report) map[string]int {

	counts := make(map[string]int)
	for _, report := range reports {
		seen := make(map[string]bool)
		for _, rec := range report.Records {
			if seen[rec.Gene] {
				continue
			}
			seen[rec.Gene] = true
			counts[rec.Gene]++
		}
	}
	return counts
}

// Entries converts gene counts into reference rows, most frequent first.
func (b *Builder) Entries(counts map[string]int) []model.SpeciesEntry {

	date := b.Now().Format(DateLayout)

	out := make([]model.SpeciesEntry, 0, len(counts))
	for gene, n := range counts {
		out = append(out, model.SpeciesEntry{
			Species:     b.Species,
			Gene:        gene,
			Occurrences: n,
			Source:      b.Source,
			Database:    b.Database,
			Method:      b.Method,
			Date:        date,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Gene < out[j].Gene
	})
	return out
}

func WriteEntries(w io.Writer, entries []model.SpeciesEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, strings.Join(e.Fields(), "\t")); err != nil {
			return err
		}
	}
	return nil
}

// AppendEntries adds entries to the end of a reference file, creating it if needed.
func AppendEntries(path string, entries []model.SpeciesEntry) error {

	terminated, err := endsWithNewline(path)
	if err != nil {
		return fmt.Errorf("open reference for append: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open reference for append: %w", err)
	}

	// The last existing row must not run into the first new one.
	if !terminated {
		if _, err := f.WriteString("\n"); err != nil {
			f.Close()
			return fmt.Errorf("write reference: %w", err)
		}
	}

	if err := WriteEntries(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("write reference: %w", err)
	}
	return f.Close()
}

// endsWithNewline reports whether the file is missing, empty or ends in '\n'.
func endsWithNewline(path string) (bool, error) {

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}
