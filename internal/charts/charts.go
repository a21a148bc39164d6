// Package charts renders the dashboard's charts as PNG images.
//
// Simple charts plot one column: "Barras" and "Linhas" draw the column's
// numeric values by row position, "Pizza" draws the share of each distinct
// value. Advanced charts are the histogram (one column) and the scatter plot
// (two columns, which may be the same column).
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
	chart "github.com/wcharczuk/go-chart/v2"
)

// Kind names a chart type. Simple kinds use the labels shown in the chart
// type selector.
type Kind string

const (
	Bar       Kind = "Barras"
	Line      Kind = "Linhas"
	Pie       Kind = "Pizza"
	Histogram Kind = "histogram"
	Scatter   Kind = "scatter"
)

// SimpleKinds lists the selector options in display order.
var SimpleKinds = []Kind{Bar, Line, Pie}

// ErrNoData is returned when the chosen column(s) hold nothing plottable.
var ErrNoData = errors.New("no plottable data")

// ErrRange is returned when the values span more than a float64 axis can
// hold, e.g. -1e308 and 1e308 in one column.
var ErrRange = errors.New("values span too wide to plot")

// ErrUnknownKind is returned for a chart kind that is not one of the constants.
var ErrUnknownKind = errors.New("unknown chart kind")

// ParseKind validates a kind received from a form or flag.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Bar, Line, Pie, Histogram, Scatter:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Options sizes the rendered image and tunes the histogram.
type Options struct {
	Width  int
	Height int
	// Bins for numeric histograms; 0 picks a count with Sturges' rule.
	Bins int
}

// DefaultOptions returns the dashboard's default chart size.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 420}
}

// Request describes one chart: Column is used by the one-column kinds, X and
// Y by Scatter.
type Request struct {
	Kind   Kind
	Column string
	X, Y   string
}

// Renderable is implemented by every go-chart chart type.
type Renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Build returns the chart for req without rendering it.
func Build(t *table.Table, req Request, opt Options) (Renderable, error) {
	switch req.Kind {
	case Bar:
		return BarChart(t, req.Column, opt)
	case Line:
		return LineChart(t, req.Column, opt)
	case Pie:
		return PieChart(t, req.Column, opt)
	case Histogram:
		return HistogramChart(t, req.Column, opt)
	case Scatter:
		return ScatterChart(t, req.X, req.Y, opt)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
}

// RenderPNG builds the chart for req and writes it to w as PNG. A panic inside
// the drawing library is reported as an error.
func RenderPNG(w io.Writer, t *table.Table, req Request, opt Options) (err error) {
	c, err := Build(t, req, opt)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %s chart: %v", req.Kind, r)
		}
	}()
	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", req.Kind, err)
	}
	return nil
}
