// Delimited text reading shared by the report parsers and the species reference.

package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is a data line split into fields, with its 1-based line number.
type Row struct {
	Line   int
	Fields []string
}

type Table struct {
	Delimiter  rune
	Header     []string
	HeaderLine int
	Rows       []Row
}

// DetectDelimiter picks the delimiter that splits the line into more than one
// column. Tab wins when both would, and is the fallback when neither does.
func DetectDelimiter(line string) rune {
	line = strings.TrimRight(line, "\r\n")
	if len(strings.Split(line, "\t")) > 1 {
		return '\t'
	}
	if len(strings.Split(line, ",")) > 1 {
		return ','
	}
	return '\t'
}

// Read loads a whole delimited file. The header is the first non-blank line
// that is not a '#' comment; the '#' of a header such as Abricate's "#FILE"
// stays part of the column name. Later lines starting with
// '#' are treated as comments or repeated headers and skipped.
func Read(r io.Reader) (*Table, error) {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // RGI rows carry whole sequences

	t := &Table{Delimiter: '\t'}
	lineNo := 0
	haveHeader := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if !haveHeader {
			delim := DetectDelimiter(line)
			fields, err := split(line, delim)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if strings.HasPrefix(line, "#") && !isHeaderLine(fields) {
				continue
			}
			t.Delimiter = delim
			t.Header = fields
			t.HeaderLine = lineNo
			haveHeader = true
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		fields, err := split(line, t.Delimiter)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.Rows = append(t.Rows, Row{Line: lineNo, Fields: fields})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// isHeaderLine tells a '#'-prefixed header from a comment before it. A header
// has several columns and its first one is a single word glued to the '#',
// like "#FILE". "# generated by tool, v1" is a comment.
func isHeaderLine(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	name := strings.TrimPrefix(fields[0], "#")
	return name != "" && !strings.ContainsAny(name, " \t")
}

// Tab separated rows are split verbatim so they can be written back unchanged.
// Comma separated rows may quote embedded commas, so they go through encoding/csv.
func split(line string, delim rune) ([]string, error) {
	if delim == '\t' {
		return strings.Split(line, "\t"), nil
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	fields, err := reader.Read()
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// Index returns the position of a header column, or -1.
func (t *Table) Index(name string) int {
	if t == nil {
		return -1
	}
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumns reports whether every required column is present in the header,
// in any order. Matching is exact and case-sensitive.
func (t *Table) HasColumns(required []string) bool {
	if t == nil || len(t.Header) == 0 || len(required) == 0 {
		return false
	}

	present := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		present[h] = struct{}{}
	}

	for _, name := range required {
		if _, ok := present[name]; !ok {
			return false
		}
	}
	return true
}
