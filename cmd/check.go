package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/achilleasa/mdlanim/anim"
	"github.com/achilleasa/mdlanim/mdl"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Check parses a script and resolves its animation without rendering it.
func Check(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return exitError(err)
	}
	defer setupLogging(ctx, cfg).Close()

	if ctx.NArg() != 1 {
		return exitError(errors.New("missing script file argument"))
	}

	prog, err := mdl.ParseFile(ctx.Args().First())
	if err != nil {
		return exitError(err)
	}

	basename, numFrames, err := anim.FirstPass(prog.Commands)
	if err != nil {
		return exitError(err)
	}
	frameKnobs, err := anim.SecondPass(prog.Commands, numFrames)
	if err != nil {
		return exitError(err)
	}

	logger.Noticef("%d command(s), %d frame(s), basename %q", len(prog.Commands), numFrames, basename)
	if numFrames > 1 {
		logger.Noticef("animated knobs\n%s", knobTable(frameKnobs))
	}
	return nil
}

// Render a table with the frame range and values of every animated knob.
func knobTable(frames []anim.FrameKnobs) string {
	type knobRange struct {
		first, last int
		from, to    float64
	}
	ranges := make(map[string]*knobRange)
	for frame, knobs := range frames {
		for name, v := range knobs {
			r, ok := ranges[name]
			if !ok {
				ranges[name] = &knobRange{first: frame, last: frame, from: v, to: v}
				continue
			}
			r.last, r.to = frame, v
		}
	}

	names := make([]string, 0, len(ranges))
	for name := range ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Knob", "Frames", "From", "To"})
	for _, name := range names {
		r := ranges[name]
		table.Append([]string{
			name,
			fmt.Sprintf("%d-%d", r.first, r.last),
			fmt.Sprintf("%g", r.from),
			fmt.Sprintf("%g", r.to),
		})
	}
	table.Render()
	return buf.String()
}
