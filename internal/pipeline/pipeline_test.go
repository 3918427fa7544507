package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkukec/arcus-grid/internal/corpus"
	"github.com/tkukec/arcus-grid/internal/fsutil"
	"github.com/tkukec/arcus-grid/internal/monitoring"
	"github.com/tkukec/arcus-grid/internal/point"
	"github.com/tkukec/arcus-grid/internal/render"
	"github.com/tkukec/arcus-grid/internal/testutil"
	"github.com/tkukec/arcus-grid/internal/viewer"
)

var (
	visDay1   = []string{"A1R", "B2O", "C3Y", "D4G", "E5B", "F6I"}
	visDay2   = []string{"A1V", "B2?", "C3R", "D4O", "E5Y", "F6G"}
	morseDay1 = []string{"F1B", "E2B", "D3B", "C4B", "B5B", "A6B"}
	morseDay2 = []string{"a1g", "b1g", "c1g", "d1g", "e1g", "f1g"}
)

func defaultOptions() Options {
	return Options{
		VisualPath: "files/square_codes.txt",
		MorsePath:  "files/morse_codes.txt",
		VisualDir:  "visual_by_second",
		MorseDir:   "morse_by_second",
	}
}

func newFixture(t *testing.T) *fsutil.MemoryFileSystem {
	t.Helper()
	mfs := fsutil.NewMemoryFileSystem()
	testutil.SeedLog(mfs, "files/square_codes.txt", visDay1, visDay2)
	testutil.SeedLog(mfs, "files/morse_codes.txt", morseDay1, morseDay2)
	return mfs
}

func muteLogs(t *testing.T) {
	t.Helper()
	orig := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = orig })
}

// paintedCells returns the non-background cells of img.
func paintedCells(img image.Image) map[image.Point]color.RGBA {
	cells := make(map[image.Point]color.RGBA)
	for y := 0; y < point.GridSize; y++ {
		for x := 0; x < point.GridSize; x++ {
			if c := testutil.RGBAAt(img, x, y); c != render.Background {
				cells[image.Point{X: x, Y: y}] = c
			}
		}
	}
	return cells
}

func TestRun_WritesTwelveImages(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)

	sum, err := New(mfs, render.NewRenderer(mfs, "generated", nil), defaultOptions()).Run()
	require.NoError(t, err)

	require.Len(t, sum.Outputs, 12)
	assert.Equal(t, 2, sum.VisualDays)
	assert.Equal(t, 2, sum.MorseDays)
	_, err = uuid.Parse(sum.RunID)
	assert.NoError(t, err, "run ID should be a UUID")

	for slot := 0; slot < point.GridSize; slot++ {
		vis := filepath.Join("generated", "visual_by_second", fmt.Sprintf("second_%d_vis.png", slot))
		morse := filepath.Join("generated", "morse_by_second", fmt.Sprintf("second_%d_morse.png", slot))
		assert.Equal(t, vis, sum.Outputs[slot])
		assert.Equal(t, morse, sum.Outputs[point.GridSize+slot])

		for _, path := range []string{vis, morse} {
			img := testutil.DecodePNG(t, mfs, path)
			assert.Equal(t, image.Rect(0, 0, 6, 6), img.Bounds(), path)
		}
	}
}

func TestRun_VisualSlotsOverlayDays(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)

	_, err := New(mfs, render.NewRenderer(mfs, "generated", nil), defaultOptions()).Run()
	require.NoError(t, err)

	// Both visual days put slot i at the same cell, so only the last day's
	// colour survives.
	for slot := 0; slot < point.GridSize; slot++ {
		img := testutil.DecodePNG(t, mfs, filepath.Join("generated", VisualName("visual_by_second", slot)))
		last := point.MustParse(visDay2[slot])

		cells := paintedCells(img)
		require.Len(t, cells, 1, "slot %d", slot)
		assert.Equal(t, last.Color(), cells[last.Position()], "slot %d", slot)
	}
}

func TestRun_MorseSlotsKeepDistinctCells(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)

	_, err := New(mfs, render.NewRenderer(mfs, "generated", nil), defaultOptions()).Run()
	require.NoError(t, err)

	for slot := 0; slot < point.GridSize; slot++ {
		img := testutil.DecodePNG(t, mfs, filepath.Join("generated", MorseName("morse_by_second", slot)))
		first := point.MustParse(morseDay1[slot])
		second := point.MustParse(morseDay2[slot])

		cells := paintedCells(img)
		if first.Position() == second.Position() {
			require.Len(t, cells, 1, "slot %d", slot)
			assert.Equal(t, second.Color(), cells[second.Position()])
			continue
		}
		require.Len(t, cells, 2, "slot %d", slot)
		assert.Equal(t, first.Color(), cells[first.Position()], "slot %d", slot)
		assert.Equal(t, second.Color(), cells[second.Position()], "slot %d", slot)
	}
}

func TestRun_TrailingDelimiterIsTolerated(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)
	mfs.WriteFile("files/square_codes.txt", []byte(testutil.FormatLog(visDay1, visDay2)+"0\n"))

	sum, err := New(mfs, render.NewRenderer(mfs, "generated", nil), defaultOptions()).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, sum.VisualDays)
}

func TestRun_ShowUsesViewerForEveryImage(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)
	builder := viewer.NewMockCommandBuilder()
	opts := defaultOptions()
	opts.Show = true

	sum, err := New(mfs, render.NewRenderer(mfs, "generated", viewer.New(builder, "", nil)), opts).Run()
	require.NoError(t, err)

	require.Len(t, builder.Commands, 12)
	for i, cmd := range builder.Commands {
		assert.Equal(t, "feh", cmd.Name)
		assert.Equal(t, sum.Outputs[i], cmd.Args[len(cmd.Args)-1])
	}
}

func TestRun_ViewerFailureAborts(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)
	builder := viewer.NewMockCommandBuilder()
	builder.NextProcess = &viewer.MockProcess{StartErr: errors.New("exec: \"feh\": executable file not found")}
	opts := defaultOptions()
	opts.Show = true

	_, err := New(mfs, render.NewRenderer(mfs, "generated", viewer.New(builder, "", nil)), opts).Run()
	assert.ErrorIs(t, err, viewer.ErrLaunch)
	assert.Len(t, builder.Commands, 1)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fsutil.MemoryFileSystem)
		want  error
	}{
		{
			name:  "missing morse log",
			setup: func(m *fsutil.MemoryFileSystem) { m.FailReads("files/morse_codes.txt", os.ErrNotExist) },
			want:  corpus.ErrFileNotFound,
		},
		{
			name:  "unreadable visual log",
			setup: func(m *fsutil.MemoryFileSystem) { m.FailReads("files/square_codes.txt", os.ErrPermission) },
			want:  corpus.ErrUnreadable,
		},
		{
			name: "bad record",
			setup: func(m *fsutil.MemoryFileSystem) {
				testutil.SeedLog(m, "files/morse_codes.txt", morseDay1, []string{"A1R", "B9O"})
			},
			want: point.ErrInvalidSlot,
		},
		{
			name: "short day",
			setup: func(m *fsutil.MemoryFileSystem) {
				testutil.SeedLog(m, "files/square_codes.txt", visDay1, visDay2[:3])
			},
			want: corpus.ErrIncompleteDay,
		},
		{
			name:  "unwritable output",
			setup: func(m *fsutil.MemoryFileSystem) { m.FailWrites("generated/morse_by_second", os.ErrPermission) },
			want:  render.ErrUnwritableOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			muteLogs(t)
			mfs := newFixture(t)
			tt.setup(mfs)

			sum, err := New(mfs, render.NewRenderer(mfs, "generated", nil), defaultOptions()).Run()
			require.Error(t, err)
			assert.Nil(t, sum)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRun_LoadFailureWritesNothing(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)
	testutil.SeedLog(mfs, "files/morse_codes.txt", []string{"A1"})

	_, err := New(mfs, render.NewRenderer(mfs, "generated", nil), defaultOptions()).Run()
	require.ErrorIs(t, err, point.ErrMalformedRecord)

	for _, name := range mfs.Files() {
		assert.False(t, strings.HasPrefix(name, "generated"), "unexpected output %s", name)
	}
}

func TestRun_Report(t *testing.T) {
	muteLogs(t)
	mfs := newFixture(t)
	opts := defaultOptions()
	opts.ReportName = "report.html"

	sum, err := New(mfs, render.NewRenderer(mfs, "generated", nil), opts).Run()
	require.NoError(t, err)
	require.Len(t, sum.Outputs, 13)

	reportPath := filepath.Join("generated", "report.html")
	assert.Equal(t, reportPath, sum.Outputs[12])

	data, err := mfs.ReadFile(reportPath)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, sum.RunID)
	assert.Contains(t, html, "visual: colours per second")
	assert.Contains(t, html, "morse: colours per second")
}

func TestRun_LogsProgress(t *testing.T) {
	var lines []string
	orig := monitoring.Logf
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Logf = orig })

	mfs := newFixture(t)
	_, err := New(mfs, render.NewRenderer(mfs, "generated", nil), defaultOptions()).Run()
	require.NoError(t, err)

	require.Len(t, lines, 14)
	assert.Contains(t, lines[0], "loaded visual log files/square_codes.txt: 2 days, 12 points")
	assert.Contains(t, lines[1], "loaded morse log")
	assert.Contains(t, lines[2], "second_0_vis.png")
}

func TestOutputNames(t *testing.T) {
	assert.Equal(t, filepath.Join("v", "second_3_vis.png"), VisualName("v", 3))
	assert.Equal(t, filepath.Join("m", "second_0_morse.png"), MorseName("m", 0))
}
