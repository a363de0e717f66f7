// Parsers for the AMR prediction reports of the supported tools.

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/model"
	"github.com/yumyai/scagaire/pkg/table"
	"go.uber.org/zap"
)

type Format string

const (
	FormatAbricate       Format = "abricate"
	FormatAbricateLegacy Format = "abricate-legacy"
	FormatStarAmr        Format = "staramr"
	FormatRgi            Format = "rgi"
)

// FormatParser validates and parses the report format of one tool.
type FormatParser interface {
	Format() Format
	IsValid(t *table.Table) bool
	Parse(source string, t *table.Table) (*Report, error)
}

// Report is a parsed input file.
type Report struct {
	Format    Format
	Source    string
	Delimiter rune
	Header    []string
	Records   []*model.Record
	Warnings  []model.ValidationWarning
}

// Skipped returns the number of rows dropped while parsing.
func (r *Report) Skipped() int {
	return len(r.Warnings)
}

// columnMap names the report column that feeds each record field.
// An empty name means the format does not carry that field.
type columnMap struct {
	SourceFile string
	SequenceID string
	Start      string
	End        string
	Strand     string
	Gene       string
	Coverage   string
	Identity   string
	Database   string
	Annotation string
}

// columnParser is the shared implementation behind every format variant.
type columnParser struct {
	format   Format
	required []string
	columns  columnMap
	// Used when the format has no database column.
	database string
}

func (p *columnParser) Format() Format {
	return p.format
}

func (p *columnParser) IsValid(t *table.Table) bool {
	return t.HasColumns(p.required)
}

type columnIndex struct {
	sourceFile, sequenceID, start, end, strand, gene, coverage, identity, database, annotation int
}

func (p *columnParser) index(t *table.Table) columnIndex {
	return columnIndex{
		sourceFile: indexOf(t, p.columns.SourceFile),
		sequenceID: indexOf(t, p.columns.SequenceID),
		start:      indexOf(t, p.columns.Start),
		end:        indexOf(t, p.columns.End),
		strand:     indexOf(t, p.columns.Strand),
		gene:       indexOf(t, p.columns.Gene),
		coverage:   indexOf(t, p.columns.Coverage),
		identity:   indexOf(t, p.columns.Identity),
		database:   indexOf(t, p.columns.Database),
		annotation: indexOf(t, p.columns.Annotation),
	}
}

func indexOf(t *table.Table, name string) int {
	if name == "" {
		return -1
	}
	return t.Index(name)
}

func (p *columnParser) Parse(source string, t *table.Table) (*Report, error) {

	if !p.IsValid(t) {
		return nil, &FormatError{Source: source, Format: p.format, Msg: "header does not match"}
	}

	report := &Report{
		Format:    p.format,
		Source:    source,
		Delimiter: t.Delimiter,
		Header:    t.Header,
		Records:   make([]*model.Record, 0, len(t.Rows)),
	}

	idx := p.index(t)

	for _, row := range t.Rows {
		rec, reason := p.parseRow(source, idx, len(t.Header), row)
		if reason != "" {
			w := model.ValidationWarning{Line: row.Line, Reason: reason}
			report.Warnings = append(report.Warnings, w)
			logger.Debug("Skipping row", zap.String("source", source), zap.Error(w))
			continue
		}
		report.Records = append(report.Records, rec)
	}

	if n := report.Skipped(); n > 0 {
		logger.Warn("Skipped malformed rows",
			zap.String("source", source),
			zap.String("format", string(p.format)),
			zap.Int("skipped", n),
			zap.Int("parsed", len(report.Records)))
	}

	return report, nil
}

// parseRow returns either a record or the reason the row was rejected.
func (p *columnParser) parseRow(source string, idx columnIndex, width int, row table.Row) (*model.Record, string) {

	if len(row.Fields) < width {
		return nil, fmt.Sprintf("expected %d columns, found %d", width, len(row.Fields))
	}

	get := func(i int) string {
		if i < 0 {
			return ""
		}
		return row.Fields[i]
	}

	gene := get(idx.gene)
	if strings.TrimSpace(gene) == "" {
		return nil, "missing gene name"
	}

	start, err := parseCoordinate(get(idx.start))
	if err != nil {
		return nil, fmt.Sprintf("invalid start: %v", err)
	}
	end, err := parseCoordinate(get(idx.end))
	if err != nil {
		return nil, fmt.Sprintf("invalid end: %v", err)
	}

	sourceFile := get(idx.sourceFile)
	if idx.sourceFile < 0 {
		sourceFile = source
	}

	database := get(idx.database)
	if idx.database < 0 {
		database = p.database
	}

	coverage, identity := model.Missing, model.Missing
	if idx.coverage >= 0 {
		coverage = model.ParsePercent(get(idx.coverage))
	}
	if idx.identity >= 0 {
		identity = model.ParsePercent(get(idx.identity))
	}

	return &model.Record{
		SourceFile: sourceFile,
		SequenceID: get(idx.sequenceID),
		Start:      start,
		End:        end,
		Strand:     model.ParseStrand(get(idx.strand)),
		Gene:       gene,
		Coverage:   coverage,
		Identity:   identity,
		Database:   database,
		Annotation: get(idx.annotation),
		Format:     string(p.format),
		Line:       row.Line,
		Fields:     row.Fields,
	}, ""
}

// Coordinates are optional per format; a missing column reads as 0.
func parseCoordinate(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
