package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/achilleasa/mdlanim/mdl"
	"github.com/achilleasa/mdlanim/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render an mdl script.
func Render(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return exitError(err)
	}
	defer setupLogging(ctx, cfg).Close()

	if ctx.NArg() != 1 {
		return exitError(errors.New("missing script file argument"))
	}
	scriptFile := ctx.Args().First()

	prog, err := mdl.ParseFile(scriptFile)
	if err != nil {
		return exitError(err)
	}

	opts := renderer.OptionsFromConfig(cfg)
	opts.AssetDir = filepath.Dir(scriptFile)

	sink := newFileSink(filepath.Base(scriptFile), cfg.Output.GIFDelay, cfg.Output.SkipAssemble)
	defer sink.Close()

	logger.Noticef("rendering %s (%dx%d)", scriptFile, opts.FrameW, opts.FrameH)
	r := renderer.New(prog, sink, opts)
	err = r.Render()
	displayFrameStats(r.Stats())
	if err != nil {
		return exitError(err)
	}

	return nil
}

func displayFrameStats(stats []renderer.FrameStats) {
	if len(stats) == 0 {
		return
	}

	var buf bytes.Buffer
	var total time.Duration
	var totalPolys int
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Polygons", "Drawn", "Edges", "Render time"})
	for _, stat := range stats {
		table.Append([]string{
			fmt.Sprintf("%03d", stat.Frame),
			fmt.Sprintf("%d", stat.Polygons),
			fmt.Sprintf("%d", stat.Drawn),
			fmt.Sprintf("%d", stat.Edges),
			stat.RenderTime.String(),
		})
		total += stat.RenderTime
		totalPolys += stat.Polygons
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d", totalPolys), "", "TOTAL", total.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}

// Log err and convert it into an error that makes the cli exit with a
// non-zero status.
func exitError(err error) error {
	logger.Error(err.Error())
	return cli.NewExitError("", 1)
}
