package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "interactive progressive ray tracer camera controller"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "config.yaml",
			Usage: "path to the configuration file",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "replay",
			Usage: "replay a recorded input script headlessly",
			Description: `
Feed every frame of a YAML input script through the camera controller, run one
sampling pass after each applied frame and print a per-frame report showing
movement, accumulation resets and the resulting camera.

The final accumulated image can be written as a WebP file with --out.`,
			ArgsUsage: "script.yaml",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the final frame to this file (.webp)",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 0,
					Usage: "extra sampling passes to run after the script ends",
				},
			},
			Action: Replay,
		},
		{
			Name:   "view",
			Usage:  "open an interactive preview window",
			Action: View,
		},
		{
			Name:      "config",
			Usage:     "write the default configuration",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "force, f",
					Usage: "overwrite an existing file",
				},
			},
			Action: WriteDefaultConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
