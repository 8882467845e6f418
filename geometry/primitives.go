package geometry

import (
	"math"

	"github.com/achilleasa/mdlanim/asset/mesh"
	"github.com/achilleasa/mdlanim/types"
)

// AddBox appends the 12 triangles of an axis-aligned box whose front, top,
// left corner is at corner. The box extends towards +x, -y and -z.
func AddBox(b *PolygonBuffer, corner types.Vec3, width, height, depth float32) {
	x, y, z := corner[0], corner[1], corner[2]
	x1, y1, z1 := x+width, y-height, z-depth
	v := types.XYZ

	// front
	b.AddTriangle(v(x, y, z), v(x1, y1, z), v(x1, y, z))
	b.AddTriangle(v(x, y, z), v(x, y1, z), v(x1, y1, z))
	// back
	b.AddTriangle(v(x1, y, z1), v(x, y1, z1), v(x, y, z1))
	b.AddTriangle(v(x1, y, z1), v(x1, y1, z1), v(x, y1, z1))
	// right
	b.AddTriangle(v(x1, y, z), v(x1, y1, z1), v(x1, y, z1))
	b.AddTriangle(v(x1, y, z), v(x1, y1, z), v(x1, y1, z1))
	// left
	b.AddTriangle(v(x, y, z1), v(x, y1, z), v(x, y, z))
	b.AddTriangle(v(x, y, z1), v(x, y1, z1), v(x, y1, z))
	// top
	b.AddTriangle(v(x, y, z1), v(x1, y, z), v(x1, y, z1))
	b.AddTriangle(v(x, y, z1), v(x, y, z), v(x1, y, z))
	// bottom
	b.AddTriangle(v(x, y1, z), v(x1, y1, z1), v(x1, y1, z))
	b.AddTriangle(v(x, y1, z), v(x, y1, z1), v(x1, y1, z1))
}

// Generate the surface points of a sphere: step semicircles rotated around
// the x axis, each sampled at step+1 points from pole to pole.
func spherePoints(center types.Vec3, radius float32, step int) []types.Vec3 {
	points := make([]types.Vec3, 0, step*(step+1))
	for rot := 0; rot < step; rot++ {
		phi := 2 * math.Pi * float64(rot) / float64(step)
		for circ := 0; circ <= step; circ++ {
			theta := math.Pi * float64(circ) / float64(step)
			points = append(points, types.XYZ(
				radius*float32(math.Cos(theta))+center[0],
				radius*float32(math.Sin(theta)*math.Cos(phi))+center[1],
				radius*float32(math.Sin(theta)*math.Sin(phi))+center[2],
			))
		}
	}
	return points
}

// AddSphere appends a sphere tessellated with step slices.
func AddSphere(b *PolygonBuffer, center types.Vec3, radius float32, step int) {
	points := spherePoints(center, radius, step)
	perSlice := step + 1
	total := len(points)

	for lat := 0; lat < step; lat++ {
		for longt := 0; longt < step; longt++ {
			p0 := lat*perSlice + longt
			p1 := p0 + 1
			p2 := (p1 + perSlice) % total
			p3 := (p0 + perSlice) % total

			// Skip the degenerate triangles that touch the poles.
			if longt != step-1 {
				b.AddTriangle(points[p0], points[p1], points[p2])
			}
			if longt != 0 {
				b.AddTriangle(points[p0], points[p2], points[p3])
			}
		}
	}
}

// Generate the surface points of a torus lying in the xz plane. r0 is the
// tube radius and r1 the distance from the center to the tube center.
func torusPoints(center types.Vec3, r0, r1 float32, step int) []types.Vec3 {
	points := make([]types.Vec3, 0, step*step)
	for rot := 0; rot < step; rot++ {
		phi := 2 * math.Pi * float64(rot) / float64(step)
		for circ := 0; circ < step; circ++ {
			theta := 2 * math.Pi * float64(circ) / float64(step)
			ring := float64(r0)*math.Cos(theta) + float64(r1)
			points = append(points, types.XYZ(
				float32(math.Cos(phi)*ring)+center[0],
				r0*float32(math.Sin(theta))+center[1],
				float32(-math.Sin(phi)*ring)+center[2],
			))
		}
	}
	return points
}

// AddTorus appends a torus tessellated with step slices.
func AddTorus(b *PolygonBuffer, center types.Vec3, r0, r1 float32, step int) {
	points := torusPoints(center, r0, r1, step)
	total := len(points)

	for lat := 0; lat < step; lat++ {
		for longt := 0; longt < step; longt++ {
			p0 := lat*step + longt
			p1 := p0 + 1
			if longt == step-1 {
				p1 = p0 - longt
			}
			p2 := (p1 + step) % total
			p3 := (p0 + step) % total

			b.AddTriangle(points[p0], points[p3], points[p2])
			b.AddTriangle(points[p0], points[p2], points[p1])
		}
	}
}

// AddFaces appends a fan triangulation of every face. Faces reference
// vertices by 0-based index; faces with fewer than 3 vertices are skipped.
func AddFaces(b *PolygonBuffer, vertices []types.Vec3, faces []mesh.Face) {
	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		for i := 1; i < len(face)-1; i++ {
			b.AddTriangle(vertices[face[0]], vertices[face[i]], vertices[face[i+1]])
		}
	}
}
