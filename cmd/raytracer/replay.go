package main

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"raytracer/internal/util"
	"raytracer/pkg/engine"
	"raytracer/pkg/preview"
)

// Replay runs an input script through a headless session.
func Replay(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("replay: expected exactly one script file", 1)
	}

	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	defer log.Close()

	script, err := engine.LoadScript(ctx.Args().First())
	if err != nil {
		return err
	}
	log.Infof("Replaying %d frames from %s", script.Len(), ctx.Args().First())

	session := engine.NewSession(cfg, log)
	sampler := preview.NewSampler(cfg.Render)
	src := engine.NewScriptSource(script)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Keys", "Moving", "Reset", "Mode", "Samples", "Camera"})

	start := time.Now()
	var resets int
	for !src.Done() {
		frame := src.Frame()
		res := session.Poll(src)

		if res.Skipped {
			table.Append([]string{fmt.Sprintf("%d", frame), "(skipped)", "", "", "", "", ""})
			continue
		}
		if res.Invalidated {
			resets++
		}

		sampler.Sample(session.State, session.Buffer)
		table.Append([]string{
			fmt.Sprintf("%d", frame),
			session.State.PrevKeys.String(),
			fmt.Sprintf("%t", res.Moving),
			fmt.Sprintf("%t", res.Invalidated),
			renderMode(session),
			fmt.Sprintf("%d", session.Buffer.Samples),
			session.State.Camera.String(),
		})
	}

	for i := 0; i < ctx.Int("spp"); i++ {
		sampler.Sample(session.State, session.Buffer)
	}

	table.SetFooter([]string{"", "", "", fmt.Sprintf("%d resets", resets), "", fmt.Sprintf("%d", session.Buffer.Samples), time.Since(start).Round(time.Millisecond).String()})
	table.Render()

	if out := ctx.String("out"); out != "" {
		path := util.ReplaceExt(out, ".webp")
		if err = preview.SaveWebP(path, preview.Resolve(session.Buffer)); err != nil {
			return err
		}
		log.Infof("Wrote frame to %s", path)
	}

	return nil
}

func renderMode(s *engine.Session) string {
	if s.DistancePass() {
		return "distance"
	}
	return "colour"
}
