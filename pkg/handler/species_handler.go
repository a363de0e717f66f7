package handler

import (
	"net/http"
	"sort"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/handler/request"
	"go.uber.org/zap"
)

type SpeciesResponse struct {
	Species    []string          `json:"species"`
	Categories config.Categories `json:"categories"`
}

type DatabasesResponse struct {
	Databases []string `json:"databases"`
}

type GeneCount struct {
	Gene        string `json:"gene"`
	Occurrences int    `json:"occurrences"`
}

type SpeciesGenesResponse struct {
	Species        string      `json:"species"`
	Database       string      `json:"database,omitempty"`
	MinOccurrences int         `json:"min_occurrences"`
	Genes          []GeneCount `json:"genes"`
}

func (dbctx *DBContext) ListSpeciesHandler(w http.ResponseWriter, r *http.Request) {

	species, err := dbctx.Reference.ListSpecies()
	if err != nil {
		logger.Error("Cannot list species", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	categories := dbctx.Categories
	if categories == nil {
		categories = config.Categories{}
	}

	writeJSON(w, http.StatusOK, SpeciesResponse{Species: species, Categories: categories})
}

func (dbctx *DBContext) ListDatabasesHandler(w http.ResponseWriter, r *http.Request) {

	databases, err := dbctx.Reference.ListDatabases()
	if err != nil {
		logger.Error("Cannot list databases", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, DatabasesResponse{Databases: databases})
}

// SpeciesGenesHandler lists the genes expected in one species, sorted by name.
func (dbctx *DBContext) SpeciesGenesHandler(w http.ResponseWriter, r *http.Request) {

	species := r.PathValue("species")
	database := r.URL.Query().Get("database")

	minOcc, err := request.ParseMinOccurrences(r.URL.Query().Get("min_occurrences"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	genes, err := dbctx.Reference.GenesFor(species, database)
	if err != nil {
		logger.Error("Cannot look up genes", zap.String("species", species), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]GeneCount, 0, len(genes))
	for gene, n := range genes {
		if n < minOcc {
			continue
		}
		out = append(out, GeneCount{Gene: gene, Occurrences: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gene < out[j].Gene })

	writeJSON(w, http.StatusOK, SpeciesGenesResponse{
		Species:        species,
		Database:       database,
		MinOccurrences: minOcc,
		Genes:          out,
	})
}
