// Package geometry builds triangulated primitives into growable point
// buffers that can be transformed and handed to the rasterizer.
package geometry

import "github.com/achilleasa/mdlanim/types"

// PolygonBuffer stores triangles as consecutive point triples. Vertices of
// each triangle are wound counter-clockwise when seen from outside the
// surface.
type PolygonBuffer struct {
	Points []types.Vec4
}

// Create an empty polygon buffer.
func NewPolygonBuffer() *PolygonBuffer {
	return &PolygonBuffer{Points: make([]types.Vec4, 0)}
}

// AddTriangle appends a triangle.
func (b *PolygonBuffer) AddTriangle(p0, p1, p2 types.Vec3) {
	b.Points = append(b.Points, p0.Vec4(1), p1.Vec4(1), p2.Vec4(1))
}

// Len returns the number of triangles in the buffer.
func (b *PolygonBuffer) Len() int {
	return len(b.Points) / 3
}

// Triangle returns the vertices of triangle i.
func (b *PolygonBuffer) Triangle(i int) (types.Vec3, types.Vec3, types.Vec3) {
	return b.Points[3*i].Vec3(), b.Points[3*i+1].Vec3(), b.Points[3*i+2].Vec3()
}

// Transform replaces every point p with m * p.
func (b *PolygonBuffer) Transform(m types.Mat4) {
	transform(b.Points, m)
}

// Reset empties the buffer while keeping its storage.
func (b *PolygonBuffer) Reset() {
	b.Points = b.Points[:0]
}

// EdgeBuffer stores line segments as consecutive point pairs.
type EdgeBuffer struct {
	Points []types.Vec4
}

// Create an empty edge buffer.
func NewEdgeBuffer() *EdgeBuffer {
	return &EdgeBuffer{Points: make([]types.Vec4, 0)}
}

// AddEdge appends a line segment.
func (b *EdgeBuffer) AddEdge(p0, p1 types.Vec3) {
	b.Points = append(b.Points, p0.Vec4(1), p1.Vec4(1))
}

// Len returns the number of segments in the buffer.
func (b *EdgeBuffer) Len() int {
	return len(b.Points) / 2
}

// Edge returns the end points of segment i.
func (b *EdgeBuffer) Edge(i int) (types.Vec3, types.Vec3) {
	return b.Points[2*i].Vec3(), b.Points[2*i+1].Vec3()
}

// Transform replaces every point p with m * p.
func (b *EdgeBuffer) Transform(m types.Mat4) {
	transform(b.Points, m)
}

// Reset empties the buffer while keeping its storage.
func (b *EdgeBuffer) Reset() {
	b.Points = b.Points[:0]
}

func transform(points []types.Vec4, m types.Mat4) {
	for i, p := range points {
		points[i] = m.Mul4x1(p)
	}
}
