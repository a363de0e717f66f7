package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/scagaire/cmd"
	"github.com/yumyai/scagaire/internal/config"
	"github.com/yumyai/scagaire/logger"
)

func main() {

	// Establish logger, the root command re-initializes it with the configured level.
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading configuration", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = cmd.RootCommand(cfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("scagaire failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	_ = logger.Sync() // Make sure that the buffered is flushed.
}
