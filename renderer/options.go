package renderer

import (
	"github.com/achilleasa/mdlanim/config"
	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Tessellation resolution for spheres and tori.
	Step int

	// Lighting environment.
	Ambient      types.Vec3
	View         types.Vec3
	SpecularExp  float64
	DefaultLight symtab.Light

	// Material used by geometry commands that do not name one.
	DefaultMaterial symtab.Material

	// Animation frames are written to OutDir/<basename>NNN.<FrameExt>.
	OutDir   string
	FrameExt string

	// Relative mesh paths are resolved against this directory.
	AssetDir string
}

// OptionsFromConfig maps render settings to renderer options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		FrameW:          cfg.Image.Width,
		FrameH:          cfg.Image.Height,
		Step:            cfg.Geometry.Step,
		Ambient:         types.Vec3(cfg.Shading.Ambient),
		View:            types.Vec3(cfg.Shading.View),
		SpecularExp:     cfg.Shading.SpecularExp,
		DefaultLight:    cfg.Shading.DefaultLight.Light(),
		DefaultMaterial: cfg.Shading.DefaultMaterial.Material(),
		OutDir:          cfg.Output.Dir,
		FrameExt:        cfg.Output.FrameExt,
	}
}

// DefaultOptions returns the options for the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}
