package symtab

import (
	"fmt"
	"sort"

	"github.com/achilleasa/mdlanim/types"
)

// LookupError is returned when a symbol is not declared or is declared with
// a different kind than the one requested.
type LookupError struct {
	Name string
	Want Kind

	// Set when a symbol with this name exists but has a different kind.
	Got    Kind
	Exists bool
}

func (e *LookupError) Error() string {
	if e.Exists {
		return fmt.Sprintf("symtab: symbol %q is a %s; expected a %s", e.Name, e.Got, e.Want)
	}
	return fmt.Sprintf("symtab: undefined %s %q", e.Want, e.Name)
}

// Table is a layered symbol table. It is not safe for concurrent use.
type Table struct {
	base    map[string]*Symbol
	overlay map[string]float64
}

// Create an empty symbol table.
func New() *Table {
	return &Table{
		base:    make(map[string]*Symbol),
		overlay: make(map[string]float64),
	}
}

// Clone returns a deep copy of the table including its overlay.
func (t *Table) Clone() *Table {
	out := New()
	for name, sym := range t.base {
		cp := *sym
		out.base[name] = &cp
	}
	for name, v := range t.overlay {
		out.overlay[name] = v
	}
	return out
}

// Define inserts or replaces a symbol in the base layer. Replacing a symbol
// with one of a different kind is an error.
func (t *Table) Define(name string, sym Symbol) error {
	if existing, ok := t.base[name]; ok && existing.Kind != sym.Kind {
		return &LookupError{Name: name, Want: sym.Kind, Got: existing.Kind, Exists: true}
	}
	t.base[name] = &sym
	return nil
}

// DefineMaterial stores a material under name.
func (t *Table) DefineMaterial(name string, m Material) error {
	return t.Define(name, Symbol{Kind: KindMaterial, Material: m})
}

// DefineLight stores a light under name.
func (t *Table) DefineLight(name string, l Light) error {
	return t.Define(name, Symbol{Kind: KindLight, Light: l})
}

// DeclareKnob creates a knob with a zero value unless it already exists.
func (t *Table) DeclareKnob(name string) error {
	if existing, ok := t.base[name]; ok {
		if existing.Kind != KindKnob {
			return &LookupError{Name: name, Want: KindKnob, Got: existing.Kind, Exists: true}
		}
		return nil
	}
	t.base[name] = &Symbol{Kind: KindKnob}
	return nil
}

// DeclareCoordSystem creates a coordinate system holding the identity
// transform unless it already exists.
func (t *Table) DeclareCoordSystem(name string) error {
	if existing, ok := t.base[name]; ok {
		if existing.Kind != KindCoordSystem {
			return &LookupError{Name: name, Want: KindCoordSystem, Got: existing.Kind, Exists: true}
		}
		return nil
	}
	t.base[name] = &Symbol{Kind: KindCoordSystem, CoordSystem: types.Ident4()}
	return nil
}

// Lookup returns a copy of the base layer entry for name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	sym, ok := t.base[name]
	if !ok {
		return Symbol{}, false
	}
	return *sym, true
}

// Names returns the sorted names of all symbols of the given kind.
func (t *Table) Names(kind Kind) []string {
	names := make([]string, 0)
	for name, sym := range t.base {
		if sym.Kind == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (t *Table) get(name string, kind Kind) (*Symbol, error) {
	sym, ok := t.base[name]
	if !ok {
		return nil, &LookupError{Name: name, Want: kind}
	}
	if sym.Kind != kind {
		return nil, &LookupError{Name: name, Want: kind, Got: sym.Kind, Exists: true}
	}
	return sym, nil
}

// Knob returns the effective value of a knob for the current frame.
func (t *Table) Knob(name string) (float64, error) {
	sym, err := t.get(name, KindKnob)
	if err != nil {
		return 0, err
	}
	if v, ok := t.overlay[name]; ok {
		return v, nil
	}
	return sym.Knob, nil
}

// Material returns the effective material for the current frame. Materials
// animated by a frame value are returned with every coefficient scaled by
// that value.
func (t *Table) Material(name string) (Material, error) {
	sym, err := t.get(name, KindMaterial)
	if err != nil {
		return Material{}, err
	}
	if v, ok := t.overlay[name]; ok {
		return sym.Material.Scale(float32(v)), nil
	}
	return sym.Material, nil
}

// CoordSystem returns a copy of a saved coordinate system.
func (t *Table) CoordSystem(name string) (types.Mat4, error) {
	sym, err := t.get(name, KindCoordSystem)
	if err != nil {
		return types.Mat4{}, err
	}
	return sym.CoordSystem, nil
}

// Light returns a declared light.
func (t *Table) Light(name string) (Light, error) {
	sym, err := t.get(name, KindLight)
	if err != nil {
		return Light{}, err
	}
	return sym.Light, nil
}

// SaveCoordSystem stores a snapshot of m under name, declaring the symbol if
// needed. The matrix is stored by value so later changes to the caller's
// transform stack never alter the snapshot.
func (t *Table) SaveCoordSystem(name string, m types.Mat4) error {
	if err := t.DeclareCoordSystem(name); err != nil {
		return err
	}
	t.base[name].CoordSystem = m
	return nil
}

// SetKnob persistently assigns v to a declared knob. Any frame value for the
// knob is discarded so the assignment is visible immediately.
func (t *Table) SetKnob(name string, v float64) error {
	sym, err := t.get(name, KindKnob)
	if err != nil {
		return err
	}
	sym.Knob = v
	delete(t.overlay, name)
	return nil
}

// SetAllKnobs persistently assigns v to every declared knob.
func (t *Table) SetAllKnobs(v float64) {
	for name, sym := range t.base {
		if sym.Kind == KindKnob {
			sym.Knob = v
			delete(t.overlay, name)
		}
	}
}

// ApplyFrame merges the animated values of a frame into the overlay. Values
// of knobs that the frame does not mention are kept from earlier frames.
func (t *Table) ApplyFrame(values map[string]float64) error {
	for name, v := range values {
		sym, ok := t.base[name]
		if !ok {
			return &LookupError{Name: name, Want: KindKnob}
		}
		if sym.Kind != KindKnob && sym.Kind != KindMaterial {
			return &LookupError{Name: name, Want: KindKnob, Got: sym.Kind, Exists: true}
		}
		t.overlay[name] = v
	}
	return nil
}

// ResetOverlay drops all frame values.
func (t *Table) ResetOverlay() {
	t.overlay = make(map[string]float64)
}

// KnobSnapshot returns the effective value of every knob.
func (t *Table) KnobSnapshot() map[string]float64 {
	out := make(map[string]float64)
	for name, sym := range t.base {
		if sym.Kind != KindKnob {
			continue
		}
		if v, ok := t.overlay[name]; ok {
			out[name] = v
		} else {
			out[name] = sym.Knob
		}
	}
	return out
}
