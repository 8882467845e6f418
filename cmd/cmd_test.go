package cmd

import (
	"strings"
	"testing"

	"github.com/achilleasa/mdlanim/anim"
	"github.com/achilleasa/mdlanim/mdl"
)

func TestKnobTable(t *testing.T) {
	frames := []anim.FrameKnobs{
		{"spin": 0},
		{"spin": 180, "zoom": 1},
		{"spin": 360, "zoom": 2},
	}

	out := knobTable(frames)
	for _, exp := range []string{"spin", "0-2", "360", "zoom", "1-2"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected knob table to contain %q; got\n%s", exp, out)
		}
	}
	if strings.Index(out, "spin") > strings.Index(out, "zoom") {
		t.Fatalf("expected knobs to be sorted by name; got\n%s", out)
	}
}

func TestSymbolTable(t *testing.T) {
	prog, err := mdl.Parse(strings.NewReader(`
constants shiny 0.1 0.2 0.3 0.1 0.2 0.3 0.1 0.2 0.3
light sun 0 0 1 255 255 255
move 1 1 1 k
save_coord_system world
`))
	if err != nil {
		t.Fatal(err)
	}

	out := symbolTable(prog.Symbols)
	for _, exp := range []string{"shiny", "sun", "world", "k"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected symbol table to contain %q; got\n%s", exp, out)
		}
	}
	if strings.Index(out, "shiny") > strings.Index(out, "sun") {
		t.Fatalf("expected materials to be listed before lights; got\n%s", out)
	}
}
