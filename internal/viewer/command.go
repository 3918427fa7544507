package viewer

import (
	"os/exec"
)

// Process is a started-then-awaited external program.
// This abstraction enables unit testing without a real viewer binary.
type Process interface {
	// Start launches the process without waiting for it.
	Start() error

	// Wait blocks until the process exits.
	Wait() error
}

// CommandBuilder creates processes.
type CommandBuilder interface {
	BuildCommand(name string, args ...string) Process
}

// RealCommandBuilder implements CommandBuilder using exec.Command.
type RealCommandBuilder struct{}

// NewRealCommandBuilder creates a new RealCommandBuilder.
func NewRealCommandBuilder() *RealCommandBuilder {
	return &RealCommandBuilder{}
}

// BuildCommand returns an *exec.Cmd, which already satisfies Process.
func (b *RealCommandBuilder) BuildCommand(name string, args ...string) Process {
	return exec.Command(name, args...)
}

// MockProcess implements Process for testing.
type MockProcess struct {
	// StartErr is returned from Start.
	StartErr error
	// WaitErr is returned from Wait.
	WaitErr error

	StartCalled bool
	WaitCalled  bool
}

func (m *MockProcess) Start() error {
	m.StartCalled = true
	return m.StartErr
}

func (m *MockProcess) Wait() error {
	m.WaitCalled = true
	return m.WaitErr
}

// MockBuiltCommand records details of a built command.
type MockBuiltCommand struct {
	Name    string
	Args    []string
	Process *MockProcess
}

// MockCommandBuilder implements CommandBuilder for testing.
type MockCommandBuilder struct {
	// Commands records all commands that were built.
	Commands []MockBuiltCommand
	// NextProcess is returned by the next BuildCommand call. If nil, a
	// MockProcess that succeeds is created.
	NextProcess *MockProcess
}

// NewMockCommandBuilder creates a new MockCommandBuilder.
func NewMockCommandBuilder() *MockCommandBuilder {
	return &MockCommandBuilder{}
}

// BuildCommand records the command and returns a MockProcess.
func (b *MockCommandBuilder) BuildCommand(name string, args ...string) Process {
	proc := b.NextProcess
	if proc == nil {
		proc = &MockProcess{}
	}
	b.NextProcess = nil
	b.Commands = append(b.Commands, MockBuiltCommand{
		Name:    name,
		Args:    append([]string(nil), args...),
		Process: proc,
	})
	return proc
}

// LastCommand returns the most recently built command, or nil if none.
func (b *MockCommandBuilder) LastCommand() *MockBuiltCommand {
	if len(b.Commands) == 0 {
		return nil
	}
	return &b.Commands[len(b.Commands)-1]
}
