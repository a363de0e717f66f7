package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/yumyai/scagaire/pkg/db"
)

const missingDatabase = "----"

var overviewTemplate *template.Template

func init() {
	tmpl := "No. of species:\t{{ .Species }}\n" +
		"No. of databases:\t{{ .Databases }}\n" +
		"No. of genes:\t{{ .Genes }}\n" +
		"Sum of occurrences:\t{{ .Occurrences }}\n"

	overviewTemplate = template.Must(template.New("overview").Parse(tmpl))
}

func WriteOverview(w io.Writer, o db.Overview) error {
	return overviewTemplate.Execute(w, o)
}

// WriteSpeciesList prints the species names, then the taxon categories.
func WriteSpeciesList(w io.Writer, species []string, categories []string) error {
	for _, line := range append(append([]string{}, species...), categories...) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteSpeciesMatrix prints which databases hold data for each species,
// with "----" for the ones that do not.
func WriteSpeciesMatrix(w io.Writer, ref *db.SpeciesReference) error {

	databases := ref.AllDatabases()
	if _, err := fmt.Fprintln(w, strings.Join(append([]string{"Species"}, databases...), "\t")); err != nil {
		return err
	}

	for _, species := range ref.AllSpecies() {
		has := make(map[string]bool)
		for _, d := range ref.SpeciesDatabases(species) {
			has[d] = true
		}

		cells := []string{species}
		for _, d := range databases {
			if has[d] {
				cells = append(cells, d)
			} else {
				cells = append(cells, missingDatabase)
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func WriteComparison(w io.Writer, species1, species2 string, genes []db.Comparison) error {
	for _, c := range genes {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", c.Gene, species1, c.Count1, species2, c.Count2); err != nil {
			return err
		}
	}
	return nil
}
