// Package mdl defines the commands of a scene program and a parser for the
// line-oriented MDL scene language.
package mdl

import "github.com/achilleasa/mdlanim/types"

// Op is the operation tag of a command.
type Op uint8

// The supported operations.
const (
	OpBox Op = iota
	OpSphere
	OpTorus
	OpLine
	OpMesh
	OpMove
	OpScale
	OpRotate
	OpPush
	OpPop
	OpSaveCoordSystem
	OpSet
	OpSetKnobs
	OpSaveKnobs
	OpLight
	OpDisplay
	OpSave
	OpFrames
	OpBasename
	OpVary
)

var opNames = [...]string{
	OpBox:             "box",
	OpSphere:          "sphere",
	OpTorus:           "torus",
	OpLine:            "line",
	OpMesh:            "mesh",
	OpMove:            "move",
	OpScale:           "scale",
	OpRotate:          "rotate",
	OpPush:            "push",
	OpPop:             "pop",
	OpSaveCoordSystem: "save_coord_system",
	OpSet:             "set",
	OpSetKnobs:        "setknobs",
	OpSaveKnobs:       "save_knobs",
	OpLight:           "light",
	OpDisplay:         "display",
	OpSave:            "save",
	OpFrames:          "frames",
	OpBasename:        "basename",
	OpVary:            "vary",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

// Command is implemented by every scene program instruction. The set of
// implementations is closed; consumers dispatch on the concrete type.
type Command interface {
	Op() Op
	command()
}

// Axis selects the rotation axis of a Rotate command.
type Axis uint8

// Rotation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// Surface holds the optional symbol references shared by the shaded
// geometry commands. Empty strings mean "not specified".
type Surface struct {
	Material    string
	CoordSystem string
}

// Box with its front-top-left corner at Corner.
type Box struct {
	Surface
	Corner               types.Vec3
	Width, Height, Depth float32
}

// Sphere centered at Center.
type Sphere struct {
	Surface
	Center types.Vec3
	Radius float32
}

// Torus centered at Center with tube radius R0 and ring radius R1.
type Torus struct {
	Surface
	Center types.Vec3
	R0, R1 float32
}

// Line segment from P0 to P1.
type Line struct {
	P0, P1      types.Vec3
	CoordSystem string
}

// Mesh loaded from a wavefront obj file.
type Mesh struct {
	Surface
	File string
}

// Move translates the current coordinate system.
type Move struct {
	Delta types.Vec3
	Knob  string
}

// Scale the current coordinate system.
type Scale struct {
	Factor types.Vec3
	Knob   string
}

// Rotate the current coordinate system around an axis.
type Rotate struct {
	Axis    Axis
	Degrees float32
	Knob    string
}

// Push a copy of the current coordinate system.
type Push struct{}

// Pop the current coordinate system.
type Pop struct{}

// SaveCoordSystem snapshots the current coordinate system under Name.
type SaveCoordSystem struct {
	Name string
}

// Set assigns Value to a single knob.
type Set struct {
	Knob  string
	Value float64
}

// SetKnobs assigns Value to every knob.
type SetKnobs struct {
	Value float64
}

// SaveKnobs records the current knob values under Name.
type SaveKnobs struct {
	Name string
}

// Light adds a declared light to the current frame.
type Light struct {
	Name string
}

// Display shows the current image.
type Display struct{}

// Save writes the current image to File.
type Save struct {
	File string
}

// Frames declares the number of animation frames.
type Frames struct {
	Count int
}

// Basename declares the filename prefix for animation frames.
type Basename struct {
	Name string
}

// Vary linearly interpolates Knob between two frames.
type Vary struct {
	Knob                 string
	StartFrame, EndFrame int
	StartValue, EndValue float64
}

func (Box) Op() Op             { return OpBox }
func (Sphere) Op() Op          { return OpSphere }
func (Torus) Op() Op           { return OpTorus }
func (Line) Op() Op            { return OpLine }
func (Mesh) Op() Op            { return OpMesh }
func (Move) Op() Op            { return OpMove }
func (Scale) Op() Op           { return OpScale }
func (Rotate) Op() Op          { return OpRotate }
func (Push) Op() Op            { return OpPush }
func (Pop) Op() Op             { return OpPop }
func (SaveCoordSystem) Op() Op { return OpSaveCoordSystem }
func (Set) Op() Op             { return OpSet }
func (SetKnobs) Op() Op        { return OpSetKnobs }
func (SaveKnobs) Op() Op       { return OpSaveKnobs }
func (Light) Op() Op           { return OpLight }
func (Display) Op() Op         { return OpDisplay }
func (Save) Op() Op            { return OpSave }
func (Frames) Op() Op          { return OpFrames }
func (Basename) Op() Op        { return OpBasename }
func (Vary) Op() Op            { return OpVary }

func (Box) command()             {}
func (Sphere) command()          {}
func (Torus) command()           {}
func (Line) command()            {}
func (Mesh) command()            {}
func (Move) command()            {}
func (Scale) command()           {}
func (Rotate) command()          {}
func (Push) command()            {}
func (Pop) command()             {}
func (SaveCoordSystem) command() {}
func (Set) command()             {}
func (SetKnobs) command()        {}
func (SaveKnobs) command()       {}
func (Light) command()           {}
func (Display) command()         {}
func (Save) command()            {}
func (Frames) command()          {}
func (Basename) command()        {}
func (Vary) command()            {}
