package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tkukec/arcus-grid/internal/point"
)

// previewSize is the edge length of the preview figure.
const previewSize = 4 * vg.Inch

// writePreview draws an enlarged, labelled copy of the canvas.
func writePreview(w io.Writer, c *Canvas, title string, scale int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Symbol"
	p.Y.Label.Text = "Slot"

	n := float64(point.GridSize)
	p.X.Min, p.X.Max = 0, n
	p.Y.Min, p.Y.Max = 0, n
	p.Add(plotter.NewImage(c.Scaled(scale), 0, 0, n, n))

	p.X.Tick.Marker = plot.ConstantTicks(columnTicks())
	p.Y.Tick.Marker = plot.ConstantTicks(rowTicks())

	wt, err := p.WriterTo(previewSize, previewSize, "png")
	if err != nil {
		return fmt.Errorf("preview writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

// columnTicks labels cell centres A..F left to right.
func columnTicks() []plot.Tick {
	ticks := make([]plot.Tick, point.GridSize)
	for i := range ticks {
		ticks[i] = plot.Tick{
			Value: float64(i) + 0.5,
			Label: point.Symbol(byte(point.SymbolA) + byte(i)).String(),
		}
	}
	return ticks
}

// rowTicks labels cell centres with slots; image row 0 (slot 1) is drawn at
// the top of the data range.
func rowTicks() []plot.Tick {
	ticks := make([]plot.Tick, point.GridSize)
	for i := range ticks {
		slot := i + 1
		ticks[i] = plot.Tick{
			Value: float64(point.GridSize-slot) + 0.5,
			Label: fmt.Sprintf("%d", slot),
		}
	}
	return ticks
}
