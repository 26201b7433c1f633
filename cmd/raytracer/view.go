package main

import (
	"github.com/urfave/cli"

	"raytracer/pkg/viewer"
)

// View opens the interactive preview window.
func View(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	defer log.Close()

	v, err := viewer.NewViewer(cfg, log)
	if err != nil {
		return err
	}

	log.Info("Preview initialized, starting render loop...")
	v.Run()
	return nil
}
