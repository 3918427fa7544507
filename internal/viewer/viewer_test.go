package viewer

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestViewer_Show_DefaultCommand(t *testing.T) {
	builder := NewMockCommandBuilder()
	v := New(builder, "", nil)

	if err := v.Show("generated/visual_by_second/second_0_vis.png"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	cmd := builder.LastCommand()
	if cmd == nil {
		t.Fatal("expected a command to be built")
	}
	if cmd.Name != "feh" {
		t.Errorf("Expected program 'feh', got %q", cmd.Name)
	}
	want := []string{"--force-aliasing", "--auto-zoom", "generated/visual_by_second/second_0_vis.png"}
	if diff := cmp.Diff(want, cmd.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if !cmd.Process.StartCalled || !cmd.Process.WaitCalled {
		t.Error("Expected Start and Wait to be called")
	}
}

func TestViewer_Show_CustomCommandDoesNotShareArgs(t *testing.T) {
	builder := NewMockCommandBuilder()
	v := New(builder, "sxiv", []string{"-z", "800"})

	_ = v.Show("a.png")
	_ = v.Show("b.png")

	if len(builder.Commands) != 2 {
		t.Fatalf("Expected 2 commands, got %d", len(builder.Commands))
	}
	if diff := cmp.Diff([]string{"-z", "800", "a.png"}, builder.Commands[0].Args); diff != "" {
		t.Errorf("first args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-z", "800", "b.png"}, builder.Commands[1].Args); diff != "" {
		t.Errorf("second args mismatch (-want +got):\n%s", diff)
	}
}

func TestViewer_Show_LaunchFailure(t *testing.T) {
	builder := NewMockCommandBuilder()
	builder.NextProcess = &MockProcess{StartErr: exec.ErrNotFound}

	err := New(builder, "", nil).Show("x.png")
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("Expected ErrLaunch, got %v", err)
	}
	if builder.LastCommand().Process.WaitCalled {
		t.Error("Wait must not be called after a failed Start")
	}
}

func TestViewer_Show_RuntimeFailure(t *testing.T) {
	builder := NewMockCommandBuilder()
	builder.NextProcess = &MockProcess{WaitErr: errors.New("exit status 2")}

	err := New(builder, "", nil).Show("x.png")
	if !errors.Is(err, ErrRuntime) {
		t.Fatalf("Expected ErrRuntime, got %v", err)
	}
	if errors.Is(err, ErrLaunch) {
		t.Error("runtime failure must not report as launch failure")
	}
}

func TestRealCommandBuilder(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	builder := NewRealCommandBuilder()

	proc := builder.BuildCommand("true")
	if err := proc.Start(); err != nil {
		t.Fatalf("Unexpected start error: %v", err)
	}
	if err := proc.Wait(); err != nil {
		t.Errorf("Unexpected wait error: %v", err)
	}
}

func TestRealViewer_MissingProgram(t *testing.T) {
	v := New(NewRealCommandBuilder(), "arcus-grid-no-such-viewer", nil)
	if err := v.Show("x.png"); !errors.Is(err, ErrLaunch) {
		t.Errorf("Expected ErrLaunch for missing program, got %v", err)
	}
}

func TestRealViewer_NonZeroExit(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	v := New(NewRealCommandBuilder(), "false", nil)
	if err := v.Show("x.png"); !errors.Is(err, ErrRuntime) {
		t.Errorf("Expected ErrRuntime for non-zero exit, got %v", err)
	}
}
