package request

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/pkg/parser"
)

var ErrNoSpecies = errors.New("at least one species is required")

// Query parameters of a filter request
type FilterRequest struct {
	Species        []string    `json:"species"`
	Database       string      `json:"database"`
	MinOccurrences int         `json:"min_occurrences"`
	Hint           parser.Hint `json:"type"`
}

// ParseFilterRequest reads species (comma separated, categories allowed),
// database, min_occurrences and type.
func ParseFilterRequest(q url.Values, categories config.Categories) (FilterRequest, error) {

	req := FilterRequest{
		Species:  categories.Expand(q.Get("species")),
		Database: q.Get("database"),
	}

	if len(req.Species) == 0 {
		return req, ErrNoSpecies
	}

	minOcc, err := ParseMinOccurrences(q.Get("min_occurrences"))
	if err != nil {
		return req, err
	}
	req.MinOccurrences = minOcc

	hint, err := parser.ParseHint(q.Get("type"))
	if err != nil {
		return req, err
	}
	req.Hint = hint

	return req, nil
}

// ParseMinOccurrences reads an optional non-negative integer; empty means 0.
func ParseMinOccurrences(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("min_occurrences must be a non-negative integer, got %q", v)
	}
	return n, nil
}
