// Package config holds the render settings used when interpreting mdl
// scripts.
package config

import (
	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

// Config holds all render settings.
type Config struct {
	Image    ImageConfig    `yaml:"image"`
	Output   OutputConfig   `yaml:"output"`
	Shading  ShadingConfig  `yaml:"shading"`
	Geometry GeometryConfig `yaml:"geometry"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ImageConfig holds frame dimensions.
type ImageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// OutputConfig controls where animation frames are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	FrameExt     string `yaml:"frame_ext"`
	GIFDelay     int    `yaml:"gif_delay"` // 100ths of a second
	SkipAssemble bool   `yaml:"skip_assemble"`
}

// ShadingConfig holds the lighting model parameters.
type ShadingConfig struct {
	Ambient         [3]float32     `yaml:"ambient"`
	View            [3]float32     `yaml:"view"`
	SpecularExp     float64        `yaml:"specular_exp"`
	DefaultLight    LightConfig    `yaml:"default_light"`
	DefaultMaterial MaterialConfig `yaml:"default_material"`
}

// LightConfig describes a point light.
type LightConfig struct {
	Location [3]float32 `yaml:"location"`
	Color    [3]float32 `yaml:"color"`
}

// MaterialConfig describes per-channel (r, g, b) reflection coefficients.
type MaterialConfig struct {
	Ambient  [3]float32 `yaml:"ambient"`
	Diffuse  [3]float32 `yaml:"diffuse"`
	Specular [3]float32 `yaml:"specular"`
}

// GeometryConfig controls tessellation of curved primitives.
type GeometryConfig struct {
	Step int `yaml:"step"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			Width:  500,
			Height: 500,
		},
		Output: OutputConfig{
			Dir:      "anim",
			FrameExt: "png",
			GIFDelay: 4,
		},
		Shading: ShadingConfig{
			Ambient:     [3]float32{50, 50, 50},
			View:        [3]float32{0, 0, 1},
			SpecularExp: 4,
			DefaultLight: LightConfig{
				Location: [3]float32{0.5, 0.75, 1},
				Color:    [3]float32{255, 255, 255},
			},
			DefaultMaterial: MaterialConfig{
				Ambient:  [3]float32{0.2, 0.2, 0.2},
				Diffuse:  [3]float32{0.5, 0.5, 0.5},
				Specular: [3]float32{0.5, 0.5, 0.5},
			},
		},
		Geometry: GeometryConfig{
			Step: 100,
		},
		Logging: LoggingConfig{
			Level:      "notice",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Light returns the configured default light.
func (c LightConfig) Light() symtab.Light {
	return symtab.Light{
		Location: types.Vec3(c.Location),
		Color:    types.Vec3(c.Color),
	}
}

// Material returns the configured material.
func (c MaterialConfig) Material() symtab.Material {
	return symtab.MaterialFromRGB(types.Vec3(c.Ambient), types.Vec3(c.Diffuse), types.Vec3(c.Specular))
}
