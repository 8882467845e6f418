package renderer

import (
	"errors"
	"fmt"

	"github.com/achilleasa/mdlanim/mdl"
)

var (
	ErrStackUnderflow = errors.New("renderer: pop would remove the base coordinate system")
)

// CommandError wraps a failure raised while executing a single command.
type CommandError struct {
	// The failing operation and its position in the program.
	Op    mdl.Op
	Index int

	// The frame being rendered when the command failed.
	Frame int

	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("renderer: frame %d: command %d (%s): %v", e.Frame, e.Index, e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
