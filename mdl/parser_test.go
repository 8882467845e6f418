package mdl

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestParseCommands(t *testing.T) {
	src := `
// animated scene
frames 10
basename "spin"
constants shiny 0.3 0.6 0.9 0.3 0.6 0.9 0.3 0.6 0.9
light sun 0.5 0.75 1 255 255 255
vary theta 0 9 0 360
push
move 250 250 0
rotate z 1 theta   # rotate by theta degrees
box shiny -50 50 50 100 100 100 cs
sphere 0 0 0 50
torus shiny 0 0 0 10 50
line 0 0 0 100 100 100
mesh :teapot
pop
save_coord_system cs
set theta 3
setknobs 0
save_knobs snap
display
save out.png
`
	prog := mustParse(t, src)

	exp := []Command{
		Frames{Count: 10},
		Basename{Name: "spin"},
		Light{Name: "sun"},
		Vary{Knob: "theta", StartFrame: 0, EndFrame: 9, StartValue: 0, EndValue: 360},
		Push{},
		Move{Delta: types.XYZ(250, 250, 0)},
		Rotate{Axis: AxisZ, Degrees: 1, Knob: "theta"},
		Box{Surface: Surface{Material: "shiny", CoordSystem: "cs"}, Corner: types.XYZ(-50, 50, 50), Width: 100, Height: 100, Depth: 100},
		Sphere{Center: types.XYZ(0, 0, 0), Radius: 50},
		Torus{Surface: Surface{Material: "shiny"}, Center: types.XYZ(0, 0, 0), R0: 10, R1: 50},
		Line{P0: types.XYZ(0, 0, 0), P1: types.XYZ(100, 100, 100)},
		Mesh{File: "teapot"},
		Pop{},
		SaveCoordSystem{Name: "cs"},
		Set{Knob: "theta", Value: 3},
		SetKnobs{Value: 0},
		SaveKnobs{Name: "snap"},
		Display{},
		Save{File: "out.png"},
	}

	if !reflect.DeepEqual(prog.Commands, exp) {
		t.Fatalf("expected commands:\n%#v\ngot:\n%#v", exp, prog.Commands)
	}

	if _, err := prog.Symbols.Knob("theta"); err != nil {
		t.Fatalf("expected theta to be declared as a knob: %v", err)
	}
	if _, err := prog.Symbols.CoordSystem("cs"); err != nil {
		t.Fatalf("expected cs to be declared as a coordinate system: %v", err)
	}
	l, err := prog.Symbols.Light("sun")
	if err != nil {
		t.Fatal(err)
	}
	if l.Color != types.XYZ(255, 255, 255) {
		t.Fatalf("unexpected light color %v", l.Color)
	}
	m, err := prog.Symbols.Material("shiny")
	if err != nil {
		t.Fatal(err)
	}
	if m.Green != (symtab.Reflectance{Ambient: 0.3, Diffuse: 0.6, Specular: 0.9}) {
		t.Fatalf("unexpected material channel %v", m.Green)
	}
}

func TestParseMeshVariants(t *testing.T) {
	type spec struct {
		src string
		exp Mesh
	}
	specs := []spec{
		{"mesh :cube", Mesh{File: "cube"}},
		{"mesh :cube.obj frame", Mesh{File: "cube.obj", Surface: Surface{CoordSystem: "frame"}}},
		{"mesh gold :cube", Mesh{File: "cube", Surface: Surface{Material: "gold"}}},
		{"mesh gold :cube frame", Mesh{File: "cube", Surface: Surface{Material: "gold", CoordSystem: "frame"}}},
		{"mesh cube", Mesh{File: "cube"}},
	}

	for index, s := range specs {
		prog := mustParse(t, s.src)
		if len(prog.Commands) != 1 || !reflect.DeepEqual(prog.Commands[0], s.exp) {
			t.Fatalf("[spec %d] expected %#v; got %#v", index, s.exp, prog.Commands)
		}
	}
}

func TestParseLineCoordSystem(t *testing.T) {
	prog := mustParse(t, "line 0 0 0 base 10 10 10 other")
	exp := Line{P0: types.XYZ(0, 0, 0), P1: types.XYZ(10, 10, 10), CoordSystem: "base"}
	if !reflect.DeepEqual(prog.Commands[0], exp) {
		t.Fatalf("expected %#v; got %#v", exp, prog.Commands[0])
	}
}

func TestParseErrors(t *testing.T) {
	type spec struct {
		src    string
		expMsg string
	}
	specs := []spec{
		{"box 1 2 3", `[line 1] syntax error: unsupported syntax for "box"; expected 6 numeric arguments; got 3`},
		{"\nsphere 1 2 x 4", `[line 2] syntax error: expected a number; got "x"`},
		{"rotate w 90", `[line 1] syntax error: unknown rotation axis "w"`},
		{"frames 0", `[line 1] syntax error: invalid frame count "0"`},
		{"vary k 0 9", `[line 1] syntax error: unsupported syntax for "vary"; expected knob start_frame end_frame start_value end_value`},
		{"vary k 0.5 3.9 0 1", `[line 1] syntax error: invalid frame range 0.5-3.9 for "vary"; frame indices must be integers`},
		{"sphere 1 2 inf 4", `[line 1] syntax error: expected a number; got "inf"`},
		{"bogus 1", `[line 1] syntax error: unknown command "bogus"`},
		{`basename "spin`, `[line 1] syntax error: unterminated string`},
		{"light sun 1 1 1 255 255 255\nmove 1 1 1 sun", `[line 2] syntax error: symtab: symbol "sun" is a light; expected a knob`},
	}

	for index, s := range specs {
		_, err := Parse(strings.NewReader(s.src))
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("[spec %d] expected a syntax error; got %v", index, err)
		}
		if err.Error() != s.expMsg {
			t.Fatalf("[spec %d] expected error %q; got %q", index, s.expMsg, err.Error())
		}
	}
}

func TestParseIdentifiersThatLookNumeric(t *testing.T) {
	type spec struct {
		src string
		exp Box
	}
	specs := []spec{
		{"box inf 0 0 0 1 1 1 nan", Box{Surface: Surface{Material: "inf", CoordSystem: "nan"}, Width: 1, Height: 1, Depth: 1}},
		{"box Infinity 0 0 0 1 1 1", Box{Surface: Surface{Material: "Infinity"}, Width: 1, Height: 1, Depth: 1}},
		{"box 0 0 0 1e1 1 1 NaN", Box{Surface: Surface{CoordSystem: "NaN"}, Width: 10, Height: 1, Depth: 1}},
	}

	for index, s := range specs {
		prog := mustParse(t, s.src)
		if len(prog.Commands) != 1 || !reflect.DeepEqual(prog.Commands[0], s.exp) {
			t.Fatalf("[spec %d] expected %#v; got %#v", index, s.exp, prog.Commands)
		}
	}
}

func TestParseVaryMaterial(t *testing.T) {
	prog := mustParse(t, `
constants shiny 0.1 0.2 0.3 0.1 0.2 0.3 0.1 0.2 0.3
frames 2
basename b
vary shiny 0 1 0 1
vary k 0 1 0 1
`)

	sym, ok := prog.Symbols.Lookup("shiny")
	if !ok || sym.Kind != symtab.KindMaterial {
		t.Fatalf("expected shiny to remain a material; got %+v", sym)
	}
	if sym, ok = prog.Symbols.Lookup("k"); !ok || sym.Kind != symtab.KindKnob {
		t.Fatalf("expected vary to declare knob k; got %+v", sym)
	}

	exp := Vary{Knob: "shiny", StartFrame: 0, EndFrame: 1, StartValue: 0, EndValue: 1}
	if !reflect.DeepEqual(prog.Commands[2], exp) {
		t.Fatalf("expected %#v; got %#v", exp, prog.Commands[2])
	}
}

func TestOpNames(t *testing.T) {
	if OpSaveCoordSystem.String() != "save_coord_system" {
		t.Fatalf("unexpected op name %q", OpSaveCoordSystem.String())
	}
	var cmd Command = Vary{}
	if cmd.Op() != OpVary {
		t.Fatalf("expected vary op; got %s", cmd.Op())
	}
}
