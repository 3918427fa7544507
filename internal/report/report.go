// Package report renders an HTML summary of colour frequencies per slot.
package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tkukec/arcus-grid/internal/corpus"
	"github.com/tkukec/arcus-grid/internal/point"
)

// Tally holds, per slot, how many days used each colour code. The inner
// index follows point.Codes().
type Tally [point.GridSize][]int

// Count tallies the colour of every day's point in each slot.
func Count(c *corpus.Corpus) (Tally, error) {
	codes := point.Codes()
	index := make(map[point.ColorCode]int, len(codes))
	for i, code := range codes {
		index[code] = i
	}

	var t Tally
	for slot := range t {
		t[slot] = make([]int, len(codes))
		series, err := c.SlotSeries(slot)
		if err != nil {
			return Tally{}, err
		}
		for _, p := range series {
			t[slot][index[p.Code()]]++
		}
	}
	return t, nil
}

type section struct {
	name  string
	days  int
	tally Tally
}

// Report collects one section per corpus.
type Report struct {
	runID    string
	version  string
	sections []section
}

// New returns an empty report stamped with the run ID and build version.
func New(runID, version string) *Report {
	return &Report{runID: runID, version: version}
}

// Add tallies c and appends it as a section.
func (r *Report) Add(c *corpus.Corpus) error {
	t, err := Count(c)
	if err != nil {
		return fmt.Errorf("report %s: %w", c.Name, err)
	}
	r.sections = append(r.sections, section{name: c.Name, days: c.NonEmptyDays(), tally: t})
	return nil
}

// Render writes the report page to w.
func (r *Report) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "arcus-grid colour report"

	for _, s := range r.sections {
		page.AddCharts(r.sectionChart(s))
	}
	if len(r.sections) > 0 {
		page.AddCharts(r.entropyChart())
	}
	return page.Render(w)
}

func (r *Report) sectionChart(s section) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s: colours per second", s.name),
			Subtitle: fmt.Sprintf("run=%s days=%d %s", r.runID, s.days, r.version),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "days"}),
	)

	bar.SetXAxis(slotLabels())

	for i, code := range point.Codes() {
		data := make([]opts.BarData, point.GridSize)
		for slot := range data {
			data[slot] = opts.BarData{Value: s.tally[slot][i]}
		}
		bar.AddSeries(code.String(), data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "colours"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: Hex(code.RGB())}),
		)
	}
	return bar
}

// entropyChart plots, per corpus, how evenly each slot's days spread
// across the palette.
func (r *Report) entropyChart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "colour entropy per second",
			Subtitle: fmt.Sprintf("run=%s nats", r.runID),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0"}),
	)
	line.SetXAxis(slotLabels())

	for _, s := range r.sections {
		data := make([]opts.LineData, point.GridSize)
		for slot := range data {
			data[slot] = opts.LineData{Value: Entropy(s.tally[slot])}
		}
		line.AddSeries(s.name, data)
	}
	return line
}

func slotLabels() []string {
	labels := make([]string, point.GridSize)
	for slot := range labels {
		labels[slot] = fmt.Sprintf("second %d", slot)
	}
	return labels
}

// Entropy returns the Shannon entropy, in nats, of the colour distribution
// given by counts. An all-zero tally has zero entropy.
func Entropy(counts []int) float64 {
	p := make([]float64, len(counts))
	for i, n := range counts {
		p[i] = float64(n)
	}
	total := floats.Sum(p)
	if total == 0 {
		return 0
	}
	floats.Scale(1/total, p)
	return stat.Entropy(p)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
