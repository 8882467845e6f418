// Package raster draws transformed geometry into a pixel buffer with depth
// testing and flat shading.
package raster

import (
	"image"
	"image/color"
	"math"
)

// Background is the color of a cleared screen.
var Background = color.RGBA{255, 255, 255, 255}

// Screen couples an RGBA pixel buffer with a z-buffer. Screen coordinates
// have their origin at the bottom-left corner; larger z values are closer to
// the viewer.
type Screen struct {
	width, height int
	pixels        *image.RGBA
	zbuf          []float64
}

// Create a cleared screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		pixels: image.NewRGBA(image.Rect(0, 0, width, height)),
		zbuf:   make([]float64, width*height),
	}
	s.Clear()
	return s
}

// Clear resets all pixels to the background color and the z-buffer to
// negative infinity.
func (s *Screen) Clear() {
	for i := 0; i < len(s.pixels.Pix); i += 4 {
		s.pixels.Pix[i+0] = Background.R
		s.pixels.Pix[i+1] = Background.G
		s.pixels.Pix[i+2] = Background.B
		s.pixels.Pix[i+3] = Background.A
	}
	for i := range s.zbuf {
		s.zbuf[i] = math.Inf(-1)
	}
}

// Width of the screen in pixels.
func (s *Screen) Width() int { return s.width }

// Height of the screen in pixels.
func (s *Screen) Height() int { return s.height }

// Image returns the pixel buffer. The returned image is owned by the screen
// and changes when more geometry is drawn.
func (s *Screen) Image() *image.RGBA {
	return s.pixels
}

// Snapshot returns a copy of the pixel buffer.
func (s *Screen) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.pixels.Rect)
	copy(out.Pix, s.pixels.Pix)
	return out
}

// Plot sets a pixel if it passes the depth test.
func (s *Screen) Plot(x, y int, z float64, c color.RGBA) {
	row := s.height - 1 - y
	if x < 0 || x >= s.width || row < 0 || row >= s.height {
		return
	}

	zIdx := row*s.width + x
	if z <= s.zbuf[zIdx] {
		return
	}
	s.zbuf[zIdx] = z
	s.pixels.SetRGBA(x, row, c)
}

// Depth returns the z-buffer value at a screen coordinate.
func (s *Screen) Depth(x, y int) float64 {
	row := s.height - 1 - y
	if x < 0 || x >= s.width || row < 0 || row >= s.height {
		return math.Inf(-1)
	}
	return s.zbuf[row*s.width+x]
}

// At returns the color at a screen coordinate.
func (s *Screen) At(x, y int) color.RGBA {
	return s.pixels.RGBAAt(x, s.height-1-y)
}
