package main

import (
	"os"

	"github.com/achilleasa/mdlanim/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "mdlanim"
	app.Usage = "render animated scenes described in the mdl scene language"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load render settings from a YAML file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render an mdl script",
			Description: `
Interpret an mdl script and rasterize the geometry it emits. Scripts that
declare frames are replayed once per frame; every frame is written to the
output directory as <basename>NNN.<ext> and the frames are then assembled
into <basename>.gif.`,
			ArgsUsage: "script.mdl",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 500,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 500,
					Usage: "frame height",
				},
				cli.StringFlag{
					Name:  "out-dir, o",
					Value: "anim",
					Usage: "output directory for animation frames",
				},
				cli.StringFlag{
					Name:  "frame-ext",
					Value: "png",
					Usage: "image format for animation frames (png, jpg, gif, bmp, tiff)",
				},
				cli.IntFlag{
					Name:  "step",
					Value: 100,
					Usage: "tessellation resolution for spheres and tori",
				},
				cli.BoolFlag{
					Name:  "no-gif",
					Usage: "do not assemble animation frames into a gif",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:      "check",
			Usage:     "parse an mdl script and resolve its animation without rendering",
			ArgsUsage: "script.mdl",
			Action:    cmd.Check,
		},
		{
			Name:      "symbols",
			Usage:     "list the symbols declared by an mdl script",
			ArgsUsage: "script.mdl",
			Action:    cmd.Symbols,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
