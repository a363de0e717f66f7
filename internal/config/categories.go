package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/yumyai/scagaire/logger"
	"go.uber.org/zap"
)

// Categories maps a taxon category name, such as "skin", to its species.
type Categories map[string][]string

type categoryFile struct {
	TaxonCategories Categories `json:"taxon_categories" yaml:"taxon_categories"`
}

// LoadCategories reads taxon categories from a JSON or YAML file. A missing
// file only disables categories.
func LoadCategories(path string) (Categories, error) {

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("No taxon category file, categories disabled", zap.String("path", path))
		return Categories{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read taxon categories: %w", err)
	}

	var f categoryFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse taxon categories %s: %w", path, err)
	}

	if f.TaxonCategories == nil {
		return Categories{}, nil
	}
	return f.TaxonCategories, nil
}

// Expand turns a comma separated list of species and category names into
// the species to filter by, without duplicates and in the order given.
func (c Categories) Expand(list string) []string {

	var out []string
	seen := make(map[string]bool)

	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if members, ok := c[item]; ok {
			for _, m := range members {
				add(strings.TrimSpace(m))
			}
			continue
		}
		add(item)
	}
	return out
}

// PrintableList renders each category as "name\t(S. enterica, E. coli)".
func (c Categories) PrintableList() []string {

	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		species := append([]string{}, c[name]...)
		sort.Strings(species)
		for i, s := range species {
			species[i] = abbreviate(s)
		}
		out = append(out, fmt.Sprintf("%s\t(%s)", name, strings.Join(species, ", ")))
	}
	return out
}

// "Salmonella enterica" becomes "S. enterica".
func abbreviate(species string) string {
	parts := strings.Fields(species)
	if len(parts) < 2 {
		return species
	}
	initial, _ := utf8.DecodeRuneInString(parts[0])
	return string(initial) + ". " + strings.Join(parts[1:], " ")
}
