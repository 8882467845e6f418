// Package display shows rendered images in an opengl window.
package display

import (
	"fmt"
	"image"
	"runtime"

	"github.com/achilleasa/mdlanim/log"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var logger = log.New("display")

func init() {
	// glfw event handling must run on the main thread.
	runtime.LockOSThread()
}

// Viewer presents images in a non-resizable opengl window. The window is
// created lazily by the first call to Show and reused by subsequent calls.
type Viewer struct {
	title string

	window *glfw.Window
	texFbo uint32
	tex    uint32
	frameW int
	frameH int
}

// NewViewer creates a viewer whose window uses the given title.
func NewViewer(title string) *Viewer {
	return &Viewer{title: title}
}

// Show uploads img to the window and blocks until the user closes it
// (window close button or ESC).
func (v *Viewer) Show(img *image.RGBA) error {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if v.window == nil || w != v.frameW || h != v.frameH {
		v.Close()
		if err := v.initGL(w, h); err != nil {
			v.Close()
			return err
		}
	}

	// Upload pixel data; image rows start at the top, texture rows at the
	// bottom so the blit below flips the y axis.
	gl.BindTexture(gl.TEXTURE_2D, v.tex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	logger.Debugf("displaying %dx%d image", w, h)
	v.window.SetShouldClose(false)
	v.window.Show()
	for !v.window.ShouldClose() {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
		gl.BlitFramebuffer(0, 0, int32(w), int32(h), 0, int32(h), int32(w), 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		v.window.SwapBuffers()
		glfw.WaitEvents()
	}
	v.window.Hide()
	return nil
}

// Close releases the window and terminates glfw.
func (v *Viewer) Close() {
	if v.window == nil {
		return
	}
	gl.DeleteFramebuffers(1, &v.texFbo)
	gl.DeleteTextures(1, &v.tex)
	v.window.Destroy()
	v.window = nil
	glfw.Terminate()
}

func (v *Viewer) initGL(w, h int) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("display: failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	v.window, err = glfw.CreateWindow(w, h, v.title, nil, nil)
	if err != nil {
		return fmt.Errorf("display: could not create opengl window: %w", err)
	}
	v.window.MakeContextCurrent()
	v.frameW, v.frameH = w, h

	if err = gl.Init(); err != nil {
		return fmt.Errorf("display: could not init opengl: %w", err)
	}

	// Setup texture for image data
	gl.GenTextures(1, &v.tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, v.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &v.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, v.tex, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	v.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return nil
}
