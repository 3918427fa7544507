// Package pipeline drives a full run: load both logs, transpose them from
// day-then-slot into slot-then-day, and render one image per slot and log.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tkukec/arcus-grid/internal/corpus"
	"github.com/tkukec/arcus-grid/internal/fsutil"
	"github.com/tkukec/arcus-grid/internal/monitoring"
	"github.com/tkukec/arcus-grid/internal/point"
	"github.com/tkukec/arcus-grid/internal/render"
	"github.com/tkukec/arcus-grid/internal/report"
	"github.com/tkukec/arcus-grid/internal/version"
)

// Source names used in logs, errors and the report.
const (
	SourceVisual = "visual"
	SourceMorse  = "morse"
)

// Options selects inputs and output layout.
type Options struct {
	VisualPath string
	MorsePath  string
	// Image directories relative to the renderer root.
	VisualDir string
	MorseDir  string
	// Show opens every image in the viewer.
	Show bool
	// ReportName, when set, writes the HTML report under the renderer root.
	ReportName string
}

// Summary describes a completed run.
type Summary struct {
	RunID      string
	VisualDays int
	MorseDays  int
	Outputs    []string
}

// Pipeline is a single-use run.
type Pipeline struct {
	fs       fsutil.FileSystem
	renderer *render.Renderer
	opts     Options
	runID    string
}

// New prepares a run.
func New(fsys fsutil.FileSystem, renderer *render.Renderer, opts Options) *Pipeline {
	return &Pipeline{
		fs:       fsys,
		renderer: renderer,
		opts:     opts,
		runID:    uuid.NewString(),
	}
}

// VisualName is the output name of the visual image for slot.
func VisualName(dir string, slot int) string {
	return filepath.Join(dir, fmt.Sprintf("second_%d_vis.png", slot))
}

// MorseName is the output name of the morse image for slot.
func MorseName(dir string, slot int) string {
	return filepath.Join(dir, fmt.Sprintf("second_%d_morse.png", slot))
}

// Run executes the pipeline. The first failure aborts the run.
func (p *Pipeline) Run() (*Summary, error) {
	vis, err := p.load(SourceVisual, p.opts.VisualPath)
	if err != nil {
		return nil, err
	}
	morse, err := p.load(SourceMorse, p.opts.MorsePath)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		RunID:      p.runID,
		VisualDays: vis.NonEmptyDays(),
		MorseDays:  morse.NonEmptyDays(),
	}

	for _, job := range []struct {
		c    *corpus.Corpus
		name func(dir string, slot int) string
		dir  string
	}{
		{vis, VisualName, p.opts.VisualDir},
		{morse, MorseName, p.opts.MorseDir},
	} {
		for slot := 0; slot < point.GridSize; slot++ {
			series, err := job.c.SlotSeries(slot)
			if err != nil {
				return nil, err
			}
			path, err := p.renderer.Render(series, p.opts.Show, job.name(job.dir, slot))
			if err != nil {
				return nil, fmt.Errorf("%s slot %d: %w", job.c.Name, slot, err)
			}
			monitoring.Logf("wrote %s (%d days)", path, len(series))
			sum.Outputs = append(sum.Outputs, path)
		}
	}

	if p.opts.ReportName != "" {
		path, err := p.writeReport(vis, morse)
		if err != nil {
			return nil, err
		}
		monitoring.Logf("wrote report %s", path)
		sum.Outputs = append(sum.Outputs, path)
	}

	return sum, nil
}

func (p *Pipeline) load(name, path string) (*corpus.Corpus, error) {
	c, err := corpus.Load(p.fs, name, path)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("loaded %s log %s: %d days, %d points", name, path, c.NonEmptyDays(), c.PointCount())
	return c, nil
}

func (p *Pipeline) writeReport(corpora ...*corpus.Corpus) (string, error) {
	rep := report.New(p.runID, version.String())
	for _, c := range corpora {
		if err := rep.Add(c); err != nil {
			return "", err
		}
	}
	return p.renderer.WriteFile(p.opts.ReportName, func(w io.Writer) error {
		return rep.Render(w)
	})
}
