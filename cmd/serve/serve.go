package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/db"
	"github.com/yumyai/scagaire/pkg/handler"
	"github.com/yumyai/scagaire/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// Command creates the serve command, exposing the filter over HTTP.
func Command(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the species filter over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Listen, "listen", cfg.Listen, "Address to listen on")
	cmd.Flags().DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "How long gene lookups stay cached")

	return cmd
}

// NewContext opens the reference and builds everything the handlers need.
func NewContext(ctx context.Context, cfg *config.Config) (*handler.DBContext, error) {

	store, err := db.Open(ctx, cfg.ReferencePath())
	if err != nil {
		return nil, err
	}

	categories, err := config.LoadCategories(cfg.TaxonConfigPath())
	if err != nil {
		store.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m, err := metrics.NewMetrics(registry)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &handler.DBContext{
		Reference:  db.NewCachedStore(store, cfg.CacheTTL),
		Categories: categories,
		Metrics:    m,
	}, nil
}

func Run(ctx context.Context, cfg *config.Config) error {

	if ctx == nil {
		ctx = context.Background()
	}

	dbctx, err := NewContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbctx.Reference.Close()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler.NewServer(dbctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("listen", cfg.Listen), zap.String("reference", cfg.ReferencePath()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	if cached, ok := dbctx.Reference.(*db.CachedStore); ok {
		hits, misses := cached.Stats()
		logger.Info("Lookup cache", zap.Int64("hits", hits), zap.Int64("misses", misses))
	}
	return nil
}
