// Package renderer replays mdl programs once per animation frame and
// rasterizes the emitted geometry.
package renderer

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/achilleasa/mdlanim/anim"
	"github.com/achilleasa/mdlanim/asset/mesh"
	"github.com/achilleasa/mdlanim/geometry"
	"github.com/achilleasa/mdlanim/log"
	"github.com/achilleasa/mdlanim/mdl"
	"github.com/achilleasa/mdlanim/output"
	"github.com/achilleasa/mdlanim/raster"
	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

// Color used by line commands.
var lineColor = color.RGBA{0, 0, 0, 255}

// Sink receives the images produced by a render.
type Sink interface {
	// Show the current image.
	Display(img *image.RGBA) error

	// Write img to path.
	Save(img image.Image, path string) error

	// Combine the numbered frames <dir>/<basename>NNN.<ext> with indices in
	// [0, numFrames) into an animation.
	Assemble(dir, basename, ext string, numFrames int) error
}

type Renderer interface {
	// Render all frames.
	Render() error

	// Get per-frame render statistics.
	Stats() []FrameStats

	// The image of the last rendered frame.
	Image() *image.RGBA

	// Knob snapshots recorded by save_knobs commands.
	SavedKnobs() map[string]map[string]float64
}

type defaultRenderer struct {
	logger  log.Logger
	options Options
	sink    Sink

	commands []mdl.Command
	symbols  *symtab.Table

	// Per-frame state.
	stack    []types.Mat4
	lights   []symtab.Light
	screen   *raster.Screen
	polygons *geometry.PolygonBuffer
	edges    *geometry.EdgeBuffer
	curStats FrameStats

	stats      []FrameStats
	savedKnobs map[string]map[string]float64
}

// New creates a renderer for prog. The program's symbol table is cloned so
// the same program can be rendered more than once.
func New(prog *mdl.Program, sink Sink, opts Options) Renderer {
	symbols := prog.Symbols
	if symbols == nil {
		symbols = symtab.New()
	}

	return &defaultRenderer{
		logger:     log.New("renderer"),
		options:    opts,
		sink:       sink,
		commands:   prog.Commands,
		symbols:    symbols.Clone(),
		screen:     raster.NewScreen(opts.FrameW, opts.FrameH),
		polygons:   geometry.NewPolygonBuffer(),
		edges:      geometry.NewEdgeBuffer(),
		savedKnobs: make(map[string]map[string]float64),
	}
}

func (r *defaultRenderer) Stats() []FrameStats {
	return r.stats
}

func (r *defaultRenderer) Image() *image.RGBA {
	return r.screen.Image()
}

func (r *defaultRenderer) SavedKnobs() map[string]map[string]float64 {
	return r.savedKnobs
}

func (r *defaultRenderer) Render() error {
	basename, numFrames, err := anim.FirstPass(r.commands)
	if err != nil {
		return err
	}

	frameKnobs, err := anim.SecondPass(r.commands, numFrames)
	if err != nil {
		return err
	}

	animated := numFrames > 1
	r.stats = make([]FrameStats, 0, numFrames)
	for frame := 0; frame < numFrames; frame++ {
		if animated {
			if err = r.symbols.ApplyFrame(frameKnobs[frame]); err != nil {
				r.logger.Errorf("frame %d failed: %v", frame, err)
				return err
			}
		}

		if err = r.renderFrame(frame); err != nil {
			if animated {
				r.logger.Errorf("frame %d failed: %v", frame, err)
			}
			return err
		}

		if animated {
			frameFile := output.FrameName(r.options.OutDir, basename, frame, r.options.FrameExt)
			r.logger.Noticef("Saving frame: %s", frameFile)
			if err = r.sink.Save(r.screen.Snapshot(), frameFile); err != nil {
				r.logger.Errorf("frame %d failed: %v", frame, err)
				return err
			}
		}
	}

	if animated {
		return r.sink.Assemble(r.options.OutDir, basename, r.options.FrameExt, numFrames)
	}
	return nil
}

func (r *defaultRenderer) renderFrame(frame int) error {
	start := time.Now()
	r.curStats = FrameStats{Frame: frame}
	r.stack = append(r.stack[:0], types.Ident4())
	r.lights = append(r.lights[:0], r.options.DefaultLight)
	r.screen.Clear()

	for index, cmd := range r.commands {
		if err := r.exec(cmd); err != nil {
			return &CommandError{Op: cmd.Op(), Index: index, Frame: frame, Err: err}
		}
	}

	r.curStats.RenderTime = time.Since(start)
	r.stats = append(r.stats, r.curStats)
	r.logger.Debugf("frame %d: %d polygons (%d drawn), %d edges in %s", frame, r.curStats.Polygons, r.curStats.Drawn, r.curStats.Edges, r.curStats.RenderTime)
	return nil
}

func (r *defaultRenderer) exec(cmd mdl.Command) error {
	switch c := cmd.(type) {
	case mdl.Box:
		geometry.AddBox(r.polygons, c.Corner, c.Width, c.Height, c.Depth)
		return r.emitPolygons(c.Surface)
	case mdl.Sphere:
		geometry.AddSphere(r.polygons, c.Center, c.Radius, r.options.Step)
		return r.emitPolygons(c.Surface)
	case mdl.Torus:
		geometry.AddTorus(r.polygons, c.Center, c.R0, c.R1, r.options.Step)
		return r.emitPolygons(c.Surface)
	case mdl.Line:
		return r.emitLine(c)
	case mdl.Mesh:
		return r.emitMesh(c)
	case mdl.Move:
		k, err := r.knob(c.Knob)
		if err != nil {
			return err
		}
		r.compose(types.Translate4(c.Delta.Mul(float32(k))))
	case mdl.Scale:
		k, err := r.knob(c.Knob)
		if err != nil {
			return err
		}
		r.compose(types.Scale4(c.Factor.Mul(float32(k))))
	case mdl.Rotate:
		k, err := r.knob(c.Knob)
		if err != nil {
			return err
		}
		angle := float64(c.Degrees) * math.Pi / 180 * k
		switch c.Axis {
		case mdl.AxisX:
			r.compose(types.RotateX4(angle))
		case mdl.AxisY:
			r.compose(types.RotateY4(angle))
		default:
			r.compose(types.RotateZ4(angle))
		}
	case mdl.Push:
		r.stack = append(r.stack, r.top())
	case mdl.Pop:
		if len(r.stack) == 1 {
			return ErrStackUnderflow
		}
		r.stack = r.stack[:len(r.stack)-1]
	case mdl.SaveCoordSystem:
		return r.symbols.SaveCoordSystem(c.Name, r.top())
	case mdl.Set:
		return r.symbols.SetKnob(c.Knob, c.Value)
	case mdl.SetKnobs:
		r.symbols.SetAllKnobs(c.Value)
	case mdl.SaveKnobs:
		r.savedKnobs[c.Name] = r.symbols.KnobSnapshot()
	case mdl.Light:
		light, err := r.symbols.Light(c.Name)
		if err != nil {
			return err
		}
		r.lights = append(r.lights, light)
	case mdl.Display:
		return r.sink.Display(r.screen.Snapshot())
	case mdl.Save:
		return r.sink.Save(r.screen.Snapshot(), c.File)
	case mdl.Frames, mdl.Basename, mdl.Vary:
		// Consumed by the animation passes.
	}
	return nil
}

// The current top of the coordinate system stack.
func (r *defaultRenderer) top() types.Mat4 {
	return r.stack[len(r.stack)-1]
}

// Replace the stack top with top * m.
func (r *defaultRenderer) compose(m types.Mat4) {
	r.stack[len(r.stack)-1] = r.top().Mul4(m)
}

// Lookup the multiplier for an optional knob reference.
func (r *defaultRenderer) knob(name string) (float64, error) {
	if name == "" {
		return 1, nil
	}
	return r.symbols.Knob(name)
}

// Resolve the transform for a geometry command: an explicitly named
// coordinate system takes precedence over the stack top.
func (r *defaultRenderer) coordSystem(name string) (types.Mat4, error) {
	if name == "" {
		return r.top(), nil
	}
	return r.symbols.CoordSystem(name)
}

func (r *defaultRenderer) material(name string, fallback symtab.Material) (symtab.Material, error) {
	if name == "" {
		return fallback, nil
	}
	return r.symbols.Material(name)
}

func (r *defaultRenderer) shading() raster.Shading {
	return raster.Shading{
		View:        r.options.View,
		Ambient:     r.options.Ambient,
		Lights:      r.lights,
		SpecularExp: r.options.SpecularExp,
	}
}

// Transform and draw the pending polygons, then clear the buffer.
func (r *defaultRenderer) emitPolygons(surface mdl.Surface) error {
	mat, err := r.material(surface.Material, r.options.DefaultMaterial)
	if err != nil {
		r.polygons.Reset()
		return err
	}
	return r.drawPolygons(mat, surface.CoordSystem)
}

func (r *defaultRenderer) drawPolygons(mat symtab.Material, csName string) error {
	defer r.polygons.Reset()

	cs, err := r.coordSystem(csName)
	if err != nil {
		return err
	}

	r.polygons.Transform(cs)
	r.curStats.Polygons += r.polygons.Len()
	r.curStats.Drawn += r.screen.DrawPolygons(r.polygons, r.shading(), mat)
	return nil
}

func (r *defaultRenderer) emitLine(c mdl.Line) error {
	defer r.edges.Reset()

	cs, err := r.coordSystem(c.CoordSystem)
	if err != nil {
		return err
	}

	r.edges.AddEdge(c.P0, c.P1)
	r.edges.Transform(cs)
	r.curStats.Edges += r.edges.Len()
	r.screen.DrawLines(r.edges, lineColor)
	return nil
}

func (r *defaultRenderer) emitMesh(c mdl.Mesh) error {
	m, err := mesh.Read(r.meshPath(c.File), r.symbols)
	if err != nil {
		return err
	}

	for _, group := range m.GroupOrder {
		if !m.Drawable(group) {
			r.logger.Debugf("skipping mesh group %q with %d face(s)", group, len(m.Groups[group]))
			continue
		}

		mat, err := r.meshMaterial(c.Material, m.GroupMaterials[group])
		if err != nil {
			return err
		}

		geometry.AddFaces(r.polygons, m.Vertices, m.Groups[group])
		if err = r.drawPolygons(mat, c.CoordSystem); err != nil {
			return err
		}
	}
	return nil
}

// Resolve the material of a mesh group: the command material wins over the
// group binding which wins over the default material.
func (r *defaultRenderer) meshMaterial(cmdMaterial, groupMaterial string) (symtab.Material, error) {
	if cmdMaterial != "" {
		return r.symbols.Material(cmdMaterial)
	}
	return r.material(groupMaterial, r.options.DefaultMaterial)
}

// Mesh files without an extension are assumed to be wavefront obj files.
// Relative local paths are resolved against the asset directory.
func (r *defaultRenderer) meshPath(file string) string {
	if filepath.Ext(file) == "" {
		file += ".obj"
	}
	if strings.Contains(file, "://") || filepath.IsAbs(file) || r.options.AssetDir == "" {
		return file
	}
	return filepath.Join(r.options.AssetDir, file)
}
