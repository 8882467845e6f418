package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/achilleasa/mdlanim/geometry"
	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

var testShading = Shading{
	View:    types.XYZ(0, 0, 1),
	Ambient: types.XYZ(50, 50, 50),
	Lights: []symtab.Light{
		{Location: types.XYZ(0.5, 0.75, 1), Color: types.XYZ(255, 255, 255)},
	},
}

var matte = symtab.MaterialFromRGB(types.XYZ(0.2, 0.2, 0.2), types.XYZ(0.5, 0.5, 0.5), types.XYZ(0.5, 0.5, 0.5))

func TestLighting(t *testing.T) {
	type spec struct {
		normal types.Vec3
		sh     Shading
		mat    symtab.Material
		exp    types.Vec3
	}
	ambientOnly := symtab.MaterialFromRGB(types.XYZ(1, 0.5, 0), types.Vec3{}, types.Vec3{})
	diffuseOnly := symtab.MaterialFromRGB(types.Vec3{}, types.XYZ(1, 1, 1), types.Vec3{})
	specs := []spec{
		{types.XYZ(0, 0, 1), Shading{View: types.XYZ(0, 0, 1), Ambient: types.XYZ(100, 100, 100)}, ambientOnly, types.XYZ(100, 50, 0)},
		// Light straight on: full diffuse contribution.
		{types.XYZ(0, 0, 5), Shading{View: types.XYZ(0, 0, 1), Lights: []symtab.Light{{Location: types.XYZ(0, 0, 1), Color: types.XYZ(200, 100, 50)}}}, diffuseOnly, types.XYZ(200, 100, 50)},
		// Light behind the surface contributes nothing.
		{types.XYZ(0, 0, 1), Shading{View: types.XYZ(0, 0, 1), Lights: []symtab.Light{{Location: types.XYZ(0, 0, -1), Color: types.XYZ(255, 255, 255)}}}, diffuseOnly, types.XYZ(0, 0, 0)},
		// Output is clamped to 255.
		{types.XYZ(0, 0, 1), Shading{View: types.XYZ(0, 0, 1), Ambient: types.XYZ(255, 255, 255), Lights: []symtab.Light{{Location: types.XYZ(0, 0, 1), Color: types.XYZ(255, 255, 255)}}}, matte, types.XYZ(255, 255, 255)},
	}

	for index, s := range specs {
		got := Lighting(s.normal, s.sh, s.mat)
		for c := 0; c < 3; c++ {
			if math.Abs(float64(got[c]-s.exp[c])) > 1e-3 {
				t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
			}
		}
	}
}

func TestDrawPolygonsDepthAndCulling(t *testing.T) {
	s := NewScreen(100, 100)

	near := geometry.NewPolygonBuffer()
	near.AddTriangle(types.XYZ(10, 10, 10), types.XYZ(60, 10, 10), types.XYZ(10, 60, 10))
	far := geometry.NewPolygonBuffer()
	far.AddTriangle(types.XYZ(10, 10, -10), types.XYZ(60, 10, -10), types.XYZ(10, 60, -10))

	red := symtab.MaterialFromRGB(types.XYZ(1, 0, 0), types.Vec3{}, types.Vec3{})
	blue := symtab.MaterialFromRGB(types.XYZ(0, 0, 1), types.Vec3{}, types.Vec3{})
	sh := Shading{View: types.XYZ(0, 0, 1), Ambient: types.XYZ(200, 200, 200)}

	if n := s.DrawPolygons(near, sh, red); n != 1 {
		t.Fatalf("expected 1 triangle drawn; got %d", n)
	}
	// Drawn later but further away; must not overwrite.
	s.DrawPolygons(far, sh, blue)

	if c := s.At(20, 20); c != (color.RGBA{200, 0, 0, 255}) {
		t.Fatalf("expected near triangle color at (20,20); got %v", c)
	}
	if d := s.Depth(20, 20); d != 10 {
		t.Fatalf("expected depth 10; got %f", d)
	}
	if c := s.At(90, 90); c != Background {
		t.Fatalf("expected background outside the triangle; got %v", c)
	}

	// Clockwise triangle faces away from the viewer.
	back := geometry.NewPolygonBuffer()
	back.AddTriangle(types.XYZ(70, 70, 50), types.XYZ(70, 90, 50), types.XYZ(90, 70, 50))
	if n := s.DrawPolygons(back, sh, blue); n != 0 {
		t.Fatalf("expected back-facing triangle to be culled; got %d drawn", n)
	}
}

func TestScreenOrigin(t *testing.T) {
	s := NewScreen(10, 10)
	c := color.RGBA{1, 2, 3, 255}
	s.Plot(0, 0, 0, c)

	// Bottom-left screen coordinate maps to the last image row.
	if got := s.Image().RGBAAt(0, 9); got != c {
		t.Fatalf("expected pixel at image row 9; got %v", got)
	}

	// Out of bounds plots are ignored.
	s.Plot(-1, 0, 0, c)
	s.Plot(0, 10, 0, c)

	snap := s.Snapshot()
	s.Clear()
	if snap.RGBAAt(0, 9) != c {
		t.Fatal("expected snapshot to be independent of the screen")
	}
	if s.At(0, 0) != Background || !math.IsInf(s.Depth(0, 0), -1) {
		t.Fatal("expected clear to reset pixels and depth")
	}
}

func TestDrawLines(t *testing.T) {
	s := NewScreen(20, 20)
	b := geometry.NewEdgeBuffer()
	b.AddEdge(types.XYZ(0, 0, 0), types.XYZ(10, 10, 0))
	black := color.RGBA{0, 0, 0, 255}
	s.DrawLines(b, black)

	for i := 0; i <= 10; i++ {
		if s.At(i, i) != black {
			t.Fatalf("expected line pixel at (%d,%d)", i, i)
		}
	}
	if s.At(0, 10) != Background {
		t.Fatal("expected pixels off the line to be untouched")
	}
}
