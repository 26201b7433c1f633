package main

import (
	"fmt"

	"github.com/urfave/cli"

	"raytracer/internal/util"
	"raytracer/pkg/config"
)

// WriteDefaultConfig writes the default configuration to the given file, or
// to the path named by --config when no argument is given.
func WriteDefaultConfig(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		path = ctx.GlobalString("config")
	}

	if util.FileExists(path) && !ctx.Bool("force") {
		return cli.NewExitError(fmt.Sprintf("config: %s already exists; use --force to overwrite", path), 1)
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "wrote default configuration to %s\n", path)
	return nil
}
