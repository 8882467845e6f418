// Package mesh ingests wavefront obj meshes and their mtl material libraries.
package mesh

import (
	"fmt"
	"strings"

	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

// DefaultGroup names faces that are declared by an unnamed "g" record or
// before any group record.
const DefaultGroup = "group1"

// MinGroupFaces is the number of faces a group needs before it is emitted.
const MinGroupFaces = 4

// A Face is an ordered list of 0-based vertex indices.
type Face []int

// Mesh holds the data parsed from a wavefront file.
type Mesh struct {
	// Vertices in declaration order.
	Vertices []types.Vec3

	// Faces per group.
	Groups map[string][]Face

	// Group names in the order they were first declared.
	GroupOrder []string

	// Material name bound to each group via usemtl.
	GroupMaterials map[string]string
}

func newMesh() *Mesh {
	return &Mesh{
		Vertices:       make([]types.Vec3, 0),
		Groups:         make(map[string][]Face),
		GroupOrder:     make([]string, 0),
		GroupMaterials: make(map[string]string),
	}
}

// Drawable reports whether a group has enough faces to be emitted.
func (m *Mesh) Drawable(group string) bool {
	return len(m.Groups[group]) >= MinGroupFaces
}

// MaterialDefiner receives the materials bound by usemtl records.
type MaterialDefiner interface {
	DefineMaterial(name string, m symtab.Material) error
}

// ParseError reports a malformed obj or mtl file. Stack lists the files that
// referenced the failing one, innermost first.
type ParseError struct {
	File  string
	Line  int
	Msg   string
	Stack []string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("[%s: %d] error: %s", e.File, e.Line, e.Msg)
	if len(e.Stack) != 0 {
		msg += "\n" + strings.Join(e.Stack, "\n")
	}
	return msg
}

// IOError reports an obj or mtl file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("mesh: could not read %q: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
