// Package anim analyses a scene program for animation commands and
// precomputes the value of every animated knob for each frame.
package anim

import (
	"fmt"

	"github.com/achilleasa/mdlanim/log"
	"github.com/achilleasa/mdlanim/mdl"
)

// DefaultBasename is used for animation frames when the program declares a
// frame count but no basename.
const DefaultBasename = "frame"

var logger = log.New("anim")

// ConfigError is returned when animation commands are used without their
// required companions.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "anim: " + e.Msg
}

// ValidationError is returned for vary commands with an invalid frame range.
type ValidationError struct {
	Knob                 string
	StartFrame, EndFrame int
	NumFrames            int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"anim: invalid vary command for knob %q: frame range [%d, %d] is not valid for %d frame(s)",
		e.Knob, e.StartFrame, e.EndFrame, e.NumFrames,
	)
}

// FrameKnobs maps knob names to their value for a single frame.
type FrameKnobs map[string]float64

// FirstPass scans the program for frames, basename and vary commands and
// returns the animation basename and frame count. Programs without animation
// commands yield an empty basename and a single frame.
func FirstPass(commands []mdl.Command) (string, int, error) {
	var hasFrames, hasVary, hasBasename bool
	basename := ""
	numFrames := 1

	for _, cmd := range commands {
		switch c := cmd.(type) {
		case mdl.Frames:
			numFrames = c.Count
			hasFrames = true
		case mdl.Vary:
			hasVary = true
		case mdl.Basename:
			basename = c.Name
			hasBasename = true
		}
	}

	switch {
	case hasVary && !hasFrames:
		return "", 0, &ConfigError{Msg: "vary command found without setting number of frames"}
	case hasFrames && !hasBasename:
		logger.Noticef("animation code present but basename was not set; using %q as basename", DefaultBasename)
		basename = DefaultBasename
	}

	if numFrames < 1 {
		return "", 0, &ConfigError{Msg: fmt.Sprintf("invalid frame count %d", numFrames)}
	}

	return basename, numFrames, nil
}

// SecondPass computes the per-frame knob table. Each vary command assigns a
// linearly interpolated value to every frame in its inclusive range; frames
// outside the range get no entry for that knob. When ranges for the same knob
// overlap, the vary command that appears last in the program wins.
func SecondPass(commands []mdl.Command, numFrames int) ([]FrameKnobs, error) {
	frames := make([]FrameKnobs, numFrames)
	for f := range frames {
		frames[f] = make(FrameKnobs)
	}

	for _, cmd := range commands {
		vary, ok := cmd.(mdl.Vary)
		if !ok {
			continue
		}

		if vary.StartFrame < 0 || vary.EndFrame >= numFrames || vary.EndFrame <= vary.StartFrame {
			return nil, &ValidationError{
				Knob:       vary.Knob,
				StartFrame: vary.StartFrame,
				EndFrame:   vary.EndFrame,
				NumFrames:  numFrames,
			}
		}

		delta := (vary.EndValue - vary.StartValue) / float64(vary.EndFrame-vary.StartFrame)
		for f := vary.StartFrame; f <= vary.EndFrame; f++ {
			frames[f][vary.Knob] = vary.StartValue + delta*float64(f-vary.StartFrame)
		}
		logger.Debugf("knob %q varies from %v to %v over frames [%d, %d]", vary.Knob, vary.StartValue, vary.EndValue, vary.StartFrame, vary.EndFrame)
	}

	return frames, nil
}
