package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/mdlanim/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Image.Width != 500 || cfg.Image.Height != 500 {
		t.Fatalf("expected 500x500 frames; got %dx%d", cfg.Image.Width, cfg.Image.Height)
	}
	if cfg.Output.Dir != "anim" || cfg.Output.FrameExt != "png" {
		t.Fatalf("unexpected output defaults %+v", cfg.Output)
	}
	if cfg.Geometry.Step != 100 {
		t.Fatalf("expected step 100; got %d", cfg.Geometry.Step)
	}

	light := cfg.Shading.DefaultLight.Light()
	if light.Location != (types.Vec3{0.5, 0.75, 1}) || light.Color != (types.Vec3{255, 255, 255}) {
		t.Fatalf("unexpected default light %+v", light)
	}

	mat := cfg.Shading.DefaultMaterial.Material()
	if mat.Red.Ambient != 0.2 || mat.Green.Diffuse != 0.5 || mat.Blue.Specular != 0.5 {
		t.Fatalf("unexpected default material %+v", mat)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate; got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "render.yaml")
	yamlContent := `
image:
  width: 320
output:
  dir: frames
  frame_ext: bmp
shading:
  ambient: [10, 20, 30]
  default_light:
    location: [0, 0, 1]
logging:
  level: debug
  file: render.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Image.Width != 320 {
		t.Fatalf("expected width 320; got %d", cfg.Image.Width)
	}
	if cfg.Image.Height != 500 {
		t.Fatalf("expected unset height to keep its default; got %d", cfg.Image.Height)
	}
	if cfg.Output.Dir != "frames" || cfg.Output.FrameExt != "bmp" {
		t.Fatalf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Shading.Ambient != [3]float32{10, 20, 30} {
		t.Fatalf("unexpected ambient %v", cfg.Shading.Ambient)
	}
	if cfg.Shading.DefaultLight.Location != [3]float32{0, 0, 1} {
		t.Fatalf("unexpected light location %v", cfg.Shading.DefaultLight.Location)
	}
	if cfg.Shading.DefaultLight.Color != [3]float32{255, 255, 255} {
		t.Fatalf("expected light color to keep its default; got %v", cfg.Shading.DefaultLight.Color)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "render.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	type spec struct {
		content string
		errMsg  string
	}
	specs := []spec{
		{"image:\n  width: not a number\n", "cannot unmarshal"},
		{"image:\n  width: -1\n", "invalid image dimensions -1x500"},
		{"geometry:\n  step: 2\n", "tessellation step must be at least 3; got 2"},
		{"output:\n  frame_ext: \"\"\n", "frame extension must not be empty"},
	}

	for index, s := range specs {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte(s.content), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), s.errMsg) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.errMsg, err)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error loading missing file")
	}
}

func TestLoadWithoutPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Image.Width != Default().Image.Width {
		t.Fatalf("expected defaults when no path is given")
	}
}
