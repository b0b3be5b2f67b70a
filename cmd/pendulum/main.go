// Package main is the entry point for the pendulum visualizer.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/app"
	"github.com/Faultbox/pendulum-gl/internal/config"
	"github.com/Faultbox/pendulum-gl/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.FileConfig(),
		Console: os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Pendulum ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		if app.IsUnsupportedDevice(err) {
			dialog.Message("This computer has no graphics device supporting OpenGL 4.1.\n\n%v", err).
				Title("Pendulum").
				Error()
		}
		logger.Sync()
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("frame loop error", zap.Error(err))
		a.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}
