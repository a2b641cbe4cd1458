// Package main is the entry point for the zawa viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/config"
	"github.com/thirdlf03/zawa/internal/game"
	"github.com/thirdlf03/zawa/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithOptions(cfg.Logging.Options(os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== zawa ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("frame loop failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}
