package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/yumyai/scagaire/pkg/model"
)

// WriteRecords writes records back in the layout they were read from, so the
// output of a filter run is a valid report of the same tool.
func WriteRecords(w io.Writer, delim rune, header []string, records []*model.Record, withHeader bool) error {

	if delim == ',' {
		return writeCSV(w, header, records, withHeader)
	}

	sep := string(delim)
	if withHeader && len(header) > 0 {
		if _, err := fmt.Fprintln(w, strings.Join(header, sep)); err != nil {
			return err
		}
	}
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, strings.Join(rec.Fields, sep)); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, header []string, records []*model.Record, withHeader bool) error {

	cw := csv.NewWriter(w)
	if withHeader && len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, rec := range records {
		if err := cw.Write(rec.Fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
