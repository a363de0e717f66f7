package handler

import (
	"net/http"

	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/metrics"
	"github.com/yumyai/scagaire/pkg/middle"
)

func NewRouter(dbctx *DBContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// API routes
	mux.HandleFunc("GET /api/v1/health", HealthCheck)
	mux.HandleFunc("GET /api/v1/species", dbctx.ListSpeciesHandler)
	mux.HandleFunc("GET /api/v1/databases", dbctx.ListDatabasesHandler)
	mux.HandleFunc("GET /api/v1/species/{species}/genes", dbctx.SpeciesGenesHandler)
	mux.HandleFunc("POST /api/v1/filter", dbctx.FilterHandler)

	if dbctx.Metrics != nil {
		mux.Handle("GET "+metrics.Path, dbctx.Metrics.Handler())
	}

	return mux
}

// NewServer wraps the router with request IDs, metrics and logging.
func NewServer(dbctx *DBContext) http.Handler {
	mws := []middle.Middleware{middle.RequestIDMiddleware(logger.Logger())}
	if dbctx.Metrics != nil {
		mws = append(mws, middle.MetricsMiddleware(dbctx.Metrics))
	}
	mws = append(mws, middle.LoggingMiddleware(logger.Logger()))

	return middle.Chain(NewRouter(dbctx), mws...)
}
