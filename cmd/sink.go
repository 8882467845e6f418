package cmd

import (
	"image"

	"github.com/achilleasa/mdlanim/display"
	"github.com/achilleasa/mdlanim/output"
)

// fileSink shows images in a window, writes them to disk and assembles
// animation frames into a gif.
type fileSink struct {
	viewer       *display.Viewer
	gifDelay     int
	skipAssemble bool
}

func newFileSink(title string, gifDelay int, skipAssemble bool) *fileSink {
	return &fileSink{
		viewer:       display.NewViewer(title),
		gifDelay:     gifDelay,
		skipAssemble: skipAssemble,
	}
}

func (s *fileSink) Display(img *image.RGBA) error {
	return s.viewer.Show(img)
}

func (s *fileSink) Save(img image.Image, path string) error {
	return output.SaveImage(img, path)
}

func (s *fileSink) Assemble(dir, basename, ext string, numFrames int) error {
	if s.skipAssemble {
		logger.Infof("skipping animation assembly for %s", basename)
		return nil
	}
	_, err := output.AssembleGIF(dir, basename, ext, numFrames, s.gifDelay)
	return err
}

func (s *fileSink) Close() {
	s.viewer.Close()
}
