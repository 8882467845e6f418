package cmd

import (
	"github.com/achilleasa/mdlanim/config"
	"github.com/urfave/cli"
)

// Load the configuration file selected by the global --config flag and apply
// any command flag overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet("width") {
		cfg.Image.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Image.Height = ctx.Int("height")
	}
	if ctx.IsSet("out-dir") {
		cfg.Output.Dir = ctx.String("out-dir")
	}
	if ctx.IsSet("frame-ext") {
		cfg.Output.FrameExt = ctx.String("frame-ext")
	}
	if ctx.IsSet("step") {
		cfg.Geometry.Step = ctx.Int("step")
	}
	if ctx.IsSet("no-gif") {
		cfg.Output.SkipAssemble = ctx.Bool("no-gif")
	}

	return cfg, cfg.Validate()
}
