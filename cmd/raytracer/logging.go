package main

import (
	"errors"
	"os"

	"github.com/urfave/cli"

	"raytracer/internal/logger"
	"raytracer/pkg/config"
)

// setup loads the configuration named by the global --config flag and builds
// the logger. A missing configuration file is not an error.
func setup(ctx *cli.Context) (*config.Config, *logger.Logger, error) {
	path := ctx.GlobalString("config")
	cfg, loadErr := config.LoadConfig(path)

	log := setupLogging(ctx, cfg)

	if loadErr != nil {
		if !errors.Is(loadErr, os.ErrNotExist) {
			log.Close()
			return nil, nil, loadErr
		}
		log.Debugf("No configuration at %s, using defaults", path)
	}

	return cfg, log, nil
}

func setupLogging(ctx *cli.Context, cfg *config.Config) *logger.Logger {
	level := cfg.Logging.Level
	if ctx.GlobalBool("v") {
		level = "info"
	}
	if ctx.GlobalBool("vv") {
		level = "debug"
	}

	if cfg.Logging.File != "" {
		log, err := logger.NewMultiLogger(level, cfg.Logging.File)
		if err == nil {
			return log
		}
		log = logger.NewLogger(level)
		log.Warnf("Logging to console only: %v", err)
		return log
	}

	return logger.NewLogger(level)
}
