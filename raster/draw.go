package raster

import (
	"image/color"
	"math"

	"github.com/achilleasa/mdlanim/geometry"
	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

// DefaultSpecularExp is used when Shading does not set an exponent.
const DefaultSpecularExp = 4

// Shading holds the per-frame lighting environment.
type Shading struct {
	// Direction towards the viewer.
	View types.Vec3

	// Ambient light color (0-255 per channel).
	Ambient types.Vec3

	// Point lights; each location is treated as the direction towards the light.
	Lights []symtab.Light

	// Exponent applied to the specular term.
	SpecularExp float64
}

// Lighting returns the flat-shaded color (0-255 per channel) of a surface
// with the given normal.
func Lighting(normal types.Vec3, sh Shading, m symtab.Material) types.Vec3 {
	n := normal.Normalize()
	v := sh.View.Normalize()
	exp := sh.SpecularExp
	if exp == 0 {
		exp = DefaultSpecularExp
	}

	out := sh.Ambient.MulVec(m.Ambient())
	for _, light := range sh.Lights {
		l := light.Location.Normalize()
		nDotL := n.Dot(l)
		if nDotL <= 0 {
			continue
		}

		out = out.Add(light.Color.MulVec(m.Diffuse()).Mul(nDotL))

		r := n.Mul(2 * nDotL).Sub(l)
		if rDotV := r.Dot(v); rDotV > 0 {
			spec := float32(math.Pow(float64(rDotV), exp))
			out = out.Add(light.Color.MulVec(m.Specular()).Mul(spec))
		}
	}

	return out.Clamp(0, 255)
}

func toRGBA(c types.Vec3) color.RGBA {
	return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}

// DrawPolygons shades and scan-converts every front-facing triangle in b and
// returns the number of triangles drawn.
func (s *Screen) DrawPolygons(b *geometry.PolygonBuffer, sh Shading, m symtab.Material) int {
	drawn := 0
	for i := 0; i < b.Len(); i++ {
		p0, p1, p2 := b.Triangle(i)
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		if normal.Dot(sh.View) <= 0 {
			continue
		}

		s.fillTriangle(p0, p1, p2, toRGBA(Lighting(normal, sh, m)))
		drawn++
	}
	return drawn
}

// DrawLines draws every segment in b with a fixed color.
func (s *Screen) DrawLines(b *geometry.EdgeBuffer, c color.RGBA) {
	for i := 0; i < b.Len(); i++ {
		p0, p1 := b.Edge(i)
		s.line(p0, p1, c)
	}
}

// Scan-convert a triangle one row at a time, interpolating x and z along the
// long (bottom-top) edge and the two short edges.
func (s *Screen) fillTriangle(p0, p1, p2 types.Vec3, c color.RGBA) {
	bot, mid, top := p0, p1, p2
	if bot[1] > mid[1] {
		bot, mid = mid, bot
	}
	if mid[1] > top[1] {
		mid, top = top, mid
	}
	if bot[1] > mid[1] {
		bot, mid = mid, bot
	}

	yStart := int(math.Ceil(float64(bot[1])))
	yEnd := int(math.Floor(float64(top[1])))
	for y := yStart; y <= yEnd; y++ {
		fy := float32(y)
		x0, z0 := edgeAt(bot, top, fy)
		var x1, z1 float32
		if fy < mid[1] {
			x1, z1 = edgeAt(bot, mid, fy)
		} else {
			x1, z1 = edgeAt(mid, top, fy)
		}
		s.span(y, x0, z0, x1, z1, c)
	}
}

// Interpolate x and z on the edge a-b at height y.
func edgeAt(a, b types.Vec3, y float32) (float32, float32) {
	dy := b[1] - a[1]
	if dy == 0 {
		return a[0], a[2]
	}
	t := (y - a[1]) / dy
	return a[0] + t*(b[0]-a[0]), a[2] + t*(b[2]-a[2])
}

// Fill a horizontal span with depth interpolation.
func (s *Screen) span(y int, x0, z0, x1, z1 float32, c color.RGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
		z0, z1 = z1, z0
	}

	xStart := int(math.Round(float64(x0)))
	xEnd := int(math.Round(float64(x1)))
	dz := float64(0)
	if xEnd != xStart {
		dz = float64(z1-z0) / float64(xEnd-xStart)
	}

	z := float64(z0)
	for x := xStart; x <= xEnd; x++ {
		s.Plot(x, y, z, c)
		z += dz
	}
}

// Draw a line using a DDA walk with depth interpolation.
func (s *Screen) line(p0, p1 types.Vec3, c color.RGBA) {
	dx := float64(p1[0] - p0[0])
	dy := float64(p1[1] - p0[1])
	dz := float64(p1[2] - p0[2])

	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		s.Plot(int(math.Round(float64(p0[0]))), int(math.Round(float64(p0[1]))), float64(p0[2]), c)
		return
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.Plot(
			int(math.Round(float64(p0[0])+t*dx)),
			int(math.Round(float64(p0[1])+t*dy)),
			float64(p0[2])+t*dz,
			c,
		)
	}
}
