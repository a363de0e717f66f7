package handler

// DI for all handlers.

import (
	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/pkg/db"
	"github.com/yumyai/scagaire/pkg/metrics"
)

// Request bodies larger than this are rejected.
const DefaultMaxBodyBytes = 64 << 20

type DBContext struct {
	Reference  db.Store
	Categories config.Categories
	Metrics    *metrics.Metrics // optional
	MaxBody    int64
}

func (dbctx *DBContext) maxBody() int64 {
	if dbctx.MaxBody > 0 {
		return dbctx.MaxBody
	}
	return DefaultMaxBodyBytes
}
