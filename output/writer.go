// Package output persists rendered frames and assembles them into
// animations.
package output

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/achilleasa/mdlanim/log"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrUnsupportedFormat = errors.New("output: unsupported image format")
	ErrNoFrames          = errors.New("output: no frames found for animation")
	ErrMissingFrame      = errors.New("output: missing animation frame")
)

var logger = log.New("output")

// FrameName returns the path of animation frame index:
// <dir>/<basename><3-digit zero-padded index>.<ext>
func FrameName(dir, basename string, index int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%03d.%s", basename, index, ext))
}

// SaveImage encodes img into path. The encoder is selected by the file
// extension; missing parent directories are created.
func SaveImage(img image.Image, path string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch ext {
	case "png":
		err = png.Encode(f, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case "gif":
		err = gif.Encode(f, img, nil)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tif", "tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("output: could not encode %q: %w", path, err)
	}
	return nil
}

// LoadImage decodes an image previously written by SaveImage.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("output: could not decode %q: %w", path, err)
	}
	return img, nil
}

// AssembleGIF loads the numbered frames <dir>/<basename>NNN.<ext> with
// indices in [0, numFrames) and writes them as an animated gif to
// <dir>/<basename>.gif. delay is the per-frame delay in 100ths of a second.
// Frames with higher indices, left behind by earlier runs, are ignored. It
// returns the path of the written animation.
func AssembleGIF(dir, basename, ext string, numFrames, delay int) (string, error) {
	if numFrames < 1 {
		return "", fmt.Errorf("%w: %s", ErrNoFrames, FrameName(dir, basename, 0, ext))
	}

	anim := &gif.GIF{}
	for index := 0; index < numFrames; index++ {
		frameFile := FrameName(dir, basename, index, ext)
		if _, err := os.Stat(frameFile); errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissingFrame, frameFile)
		}

		img, err := LoadImage(frameFile)
		if err != nil {
			return "", err
		}

		bounds := img.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	if _, err := os.Stat(FrameName(dir, basename, numFrames, ext)); err == nil {
		logger.Warningf("ignoring stale frames of %q from index %d onwards", basename, numFrames)
	}

	outFile := filepath.Join(dir, basename+".gif")
	f, err := os.Create(outFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err = gif.EncodeAll(f, anim); err != nil {
		return "", fmt.Errorf("output: could not encode %q: %w", outFile, err)
	}

	logger.Noticef("assembled %d frame(s) into %s", len(anim.Image), outFile)
	return outFile, nil
}
