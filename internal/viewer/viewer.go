// Package viewer opens rendered images in an external program.
package viewer

import (
	"errors"
	"fmt"
)

// DefaultProgram is the image viewer used when none is configured.
const DefaultProgram = "feh"

// DefaultArgs keep the 6×6 pixels sharp and scale the window up.
var DefaultArgs = []string{"--force-aliasing", "--auto-zoom"}

var (
	// ErrLaunch means the viewer process could not be started.
	ErrLaunch = errors.New("viewer launch failed")
	// ErrRuntime means the viewer started but did not exit cleanly.
	ErrRuntime = errors.New("viewer exited with error")
)

// Viewer shows an image file and blocks until the program exits.
type Viewer struct {
	builder CommandBuilder
	program string
	args    []string
}

// New returns a Viewer running program with args followed by the path.
// An empty program selects DefaultProgram and DefaultArgs.
func New(builder CommandBuilder, program string, args []string) *Viewer {
	if program == "" {
		program = DefaultProgram
		args = DefaultArgs
	}
	return &Viewer{
		builder: builder,
		program: program,
		args:    append([]string(nil), args...),
	}
}

// Show launches the viewer on path and waits for it to exit.
func (v *Viewer) Show(path string) error {
	args := append(append([]string(nil), v.args...), path)
	proc := v.builder.BuildCommand(v.program, args...)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLaunch, v.program, err)
	}
	if err := proc.Wait(); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRuntime, v.program, path, err)
	}
	return nil
}
