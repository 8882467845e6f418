package renderer

import "time"

type FrameStats struct {
	// The frame index.
	Frame int

	// Number of triangles emitted by geometry commands and the number that
	// survived back-face culling.
	Polygons int
	Drawn    int

	// Number of line segments drawn.
	Edges int

	// Total render time for entire frame.
	RenderTime time.Duration
}
