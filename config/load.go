package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the default configuration overridden by the contents of the
// YAML file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks that the settings describe a renderable configuration.
func (c *Config) Validate() error {
	switch {
	case c.Image.Width <= 0 || c.Image.Height <= 0:
		return fmt.Errorf("invalid image dimensions %dx%d", c.Image.Width, c.Image.Height)
	case c.Geometry.Step < 3:
		return fmt.Errorf("tessellation step must be at least 3; got %d", c.Geometry.Step)
	case c.Output.FrameExt == "":
		return fmt.Errorf("frame extension must not be empty")
	case c.Output.GIFDelay < 0:
		return fmt.Errorf("gif delay must not be negative")
	}
	return nil
}
