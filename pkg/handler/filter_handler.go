package handler

import (
	"errors"
	"net/http"

	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/filter"
	"github.com/yumyai/scagaire/pkg/handler/request"
	"github.com/yumyai/scagaire/pkg/model"
	"github.com/yumyai/scagaire/pkg/parser"
	"github.com/yumyai/scagaire/pkg/summary"
	"go.uber.org/zap"
)

type SummaryRow struct {
	Species string `json:"species"`
	model.Summary
}

type FilterResponse struct {
	Format  parser.Format       `json:"format"`
	Header  []string            `json:"header"`
	Rows    [][]string          `json:"rows"`
	Matched []model.SpeciesGene `json:"matched"`
	Skipped int                 `json:"skipped"`
	Summary []SummaryRow        `json:"summary"`
}

// FilterHandler filters the AMR report sent as request body.
func (dbctx *DBContext) FilterHandler(w http.ResponseWriter, r *http.Request) {

	req, err := request.ParseFilterRequest(r.URL.Query(), dbctx.Categories)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, dbctx.maxBody())
	report, err := parser.DetectReader(body, "request", req.Hint)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		if dbctx.Metrics != nil {
			dbctx.Metrics.RecordFormatError(string(req.Hint))
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	engine := filter.NewEngine(dbctx.Reference, req.MinOccurrences, req.Database)
	result, err := engine.FilterAll(report.Records, req.Species)
	if err != nil {
		logger.Error("Filter failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if dbctx.Metrics != nil {
		dbctx.Metrics.RecordFilter(string(report.Format), len(result.Records), len(report.Records), report.Skipped())
	}

	response := FilterResponse{
		Format:  report.Format,
		Header:  report.Header,
		Rows:    make([][]string, 0, len(result.Records)),
		Matched: result.Matched,
		Skipped: report.Skipped(),
		Summary: []SummaryRow{},
	}
	if response.Matched == nil {
		response.Matched = []model.SpeciesGene{}
	}

	for _, rec := range result.Records {
		response.Rows = append(response.Rows, rec.Fields)
	}

	for _, sp := range result.Species {
		for _, s := range summary.Sorted(summary.Aggregate(result.BySpecies[sp])) {
			response.Summary = append(response.Summary, SummaryRow{Species: sp, Summary: *s})
		}
	}

	writeJSON(w, http.StatusOK, response)
}
