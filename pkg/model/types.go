package model

import (
	"fmt"
	"strconv"
)

// Missing marks a percentage the source format does not report.
const Missing = -1.0

type Strand int

const (
	StrandUnknown Strand = iota
	StrandPlus
	StrandMinus
)

func (s Strand) String() string {
	switch s {
	case StrandPlus:
		return "+"
	case StrandMinus:
		return "-"
	default:
		return "unknown"
	}
}

func (s Strand) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func ParseStrand(v string) Strand {
	switch v {
	case "+", "1", "+1":
		return StrandPlus
	case "-", "-1":
		return StrandMinus
	default:
		return StrandUnknown
	}
}

// Record is one predicted AMR gene, normalized over all supported report formats.
type Record struct {
	SourceFile string  `json:"source_file"`
	SequenceID string  `json:"sequence_id"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Strand     Strand  `json:"strand"`
	Gene       string  `json:"gene"`
	Coverage   float64 `json:"coverage_pct"`
	Identity   float64 `json:"identity_pct"`
	Database   string  `json:"database,omitempty"`
	Annotation string  `json:"annotation,omitempty"`

	// Format names the parser variant that produced the record.
	Format string `json:"format"`
	// Line is the 1-based line of the row in its report.
	Line int `json:"line"`
	// Fields holds the row exactly as read, for lossless output.
	Fields []string `json:"fields"`
}

func (r *Record) HasCoverage() bool {
	return r.Coverage != Missing
}

func (r *Record) HasIdentity() bool {
	return r.Identity != Missing
}

// Key identifies exact duplicates when results of several species are merged.
func (r *Record) Key() string {
	return fmt.Sprintf("%s\x00%s\x00%s\x00%d\x00%d", r.SourceFile, r.SequenceID, r.Gene, r.Start, r.End)
}

func (r Record) String() string {
	return fmt.Sprintf("%s|%s:%d-%d(%s) %s", r.SourceFile, r.SequenceID, r.Start, r.End, r.Strand, r.Gene)
}

// SpeciesEntry is one row of the species to genes reference.
type SpeciesEntry struct {
	Species     string `json:"species"`
	Gene        string `json:"gene"`
	Occurrences int    `json:"occurrences"`
	Source      string `json:"source"`
	Database    string `json:"database"`
	Method      string `json:"method"`
	Date        string `json:"date"`
}

// Fields returns the entry in reference column order.
func (e SpeciesEntry) Fields() []string {
	return []string{e.Species, e.Gene, strconv.Itoa(e.Occurrences), e.Source, e.Database, e.Method, e.Date}
}

// SpeciesGene is a (species, gene) pair matched during filtering.
type SpeciesGene struct {
	Species string `json:"species"`
	Gene    string `json:"gene"`
}

// Summary aggregates filtered records of one gene.
type Summary struct {
	Gene         string  `json:"gene"`
	Count        int     `json:"count"`
	MeanIdentity float64 `json:"mean_identity"`
	MeanCoverage float64 `json:"mean_coverage"`
}

func (s *Summary) HasMeanIdentity() bool {
	return s.MeanIdentity != Missing
}

func (s *Summary) HasMeanCoverage() bool {
	return s.MeanCoverage != Missing
}

// ValidationWarning describes a row skipped while reading a report or reference.
type ValidationWarning struct {
	Line   int
	Reason string
}

func (w ValidationWarning) Error() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// ParsePercent reads a percentage column; anything unparseable is Missing.
func ParsePercent(v string) float64 {
	if v == "" {
		return Missing
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return Missing
	}
	return f
}
