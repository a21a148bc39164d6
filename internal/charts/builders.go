package charts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/analysis"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette is cycled over pie slices.
var palette = []string{
	"4F46E5", "10B981", "F59E0B", "EF4444", "8B5CF6",
	"06B6D4", "EC4899", "84CC16", "F97316", "6366F1",
}

var seriesColor = drawing.ColorFromHex("1F77B4")

// labelledBarsMax is the bar count above which the bar chart labels only
// every few bars and the histogram drops its labels.
const labelledBarsMax = 30

func numericColumn(t *table.Table, col string) ([]int, []float64, error) {
	cells, err := t.Column(col)
	if err != nil {
		return nil, nil, err
	}
	pos, vals := analysis.Numbers(cells)
	if len(vals) == 0 {
		return nil, nil, fmt.Errorf("%w: column %q has no numeric values", ErrNoData, col)
	}
	return pos, vals, nil
}

// BarChart plots one bar per numeric cell, in row order. When the rows do not
// fit the canvas, consecutive rows are grouped and each bar shows the group's
// mean.
func BarChart(t *table.Table, col string, opt Options) (*chart.BarChart, error) {
	pos, vals, err := numericColumn(t, col)
	if err != nil {
		return nil, err
	}
	yr, err := valueRange(vals)
	if err != nil {
		return nil, err
	}
	width := chartWidth(opt)
	group := (len(vals) + maxBars(width) - 1) / maxBars(width)
	n := (len(vals) + group - 1) / group
	step := 1
	if n > labelledBarsMax {
		step = (n + sparseLabels - 1) / sparseLabels
	}

	bars := make([]chart.Value, 0, n)
	for start := 0; start < len(vals); start += group {
		end := start + group
		if end > len(vals) {
			end = len(vals)
		}
		var mean float64
		for i, v := range vals[start:end] {
			mean += (v - mean) / float64(i+1)
		}
		label := ""
		switch i := len(bars); {
		case i%step != 0:
		case group > 1 && n <= labelledBarsMax:
			label = fmt.Sprintf("%d–%d", pos[start], pos[end-1])
		default:
			label = strconv.Itoa(pos[start])
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: mean,
			Style: chart.Style{FillColor: seriesColor, StrokeColor: seriesColor, StrokeWidth: 0.5},
		})
	}
	title := col
	if group > 1 {
		title = fmt.Sprintf("%s (média de %d linhas por barra)", col, group)
	}
	return newBarChart(title, bars, yr, opt), nil
}

// LineChart plots the column's numeric cells against their row positions.
func LineChart(t *table.Table, col string, opt Options) (*chart.Chart, error) {
	pos, vals, err := numericColumn(t, col)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(pos))
	for i, p := range pos {
		xs[i] = float64(p)
	}
	xr, err := paddedRange(xs)
	if err != nil {
		return nil, err
	}
	yr, err := paddedRange(vals)
	if err != nil {
		return nil, err
	}
	c := &chart.Chart{
		Title:      col,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "índice", Range: xr, ValueFormatter: formatValue},
		YAxis:      chart.YAxis{Name: col, Range: yr, ValueFormatter: formatValue},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    col,
			XValues: xs,
			YValues: vals,
			Style:   chart.Style{StrokeColor: seriesColor, StrokeWidth: 2},
		}},
	}
	return c, nil
}

// PieSlices returns the pie values for a column: one slice per distinct
// non-blank value, sized by its row count.
func PieSlices(t *table.Table, col string) ([]chart.Value, error) {
	cells, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	counts := analysis.CountCategories(cells)
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: column %q is empty", ErrNoData, col)
	}
	out := make([]chart.Value, len(counts))
	for i, c := range counts {
		fill := drawing.ColorFromHex(palette[i%len(palette)])
		out[i] = chart.Value{
			Label: fmt.Sprintf("%s (%d)", c.Value, c.Count),
			Value: float64(c.Count),
			Style: chart.Style{FillColor: fill, StrokeColor: drawing.ColorWhite},
		}
	}
	return out, nil
}

// PieChart titles the pie "Gráfico de Pizza - <col>".
func PieChart(t *table.Table, col string, opt Options) (*chart.PieChart, error) {
	values, err := PieSlices(t, col)
	if err != nil {
		return nil, err
	}
	return &chart.PieChart{
		Title:      fmt.Sprintf("Gráfico de Pizza - %s", col),
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Values:     values,
	}, nil
}

// HistogramChart bins a numeric column into equal-width bins. A column with
// no numeric values is counted per category instead; categories beyond what
// fits the canvas are summed into "Outros".
func HistogramChart(t *table.Table, col string, opt Options) (*chart.BarChart, error) {
	cells, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	limit := maxBars(chartWidth(opt))
	_, vals := analysis.Numbers(cells)
	var bars []chart.Value
	var counts []float64
	add := func(label string, n int) {
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(n),
			Style: chart.Style{FillColor: seriesColor, StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		})
		counts = append(counts, float64(n))
	}
	if len(vals) > 0 {
		k := opt.Bins
		if k > limit {
			k = limit
		}
		for _, b := range Bins(vals, k) {
			add(fmt.Sprintf("%.4g–%.4g", b.Lo, b.Hi), b.Count)
		}
	} else {
		cats := analysis.CountCategories(cells)
		rest := 0
		if len(cats) > limit {
			for _, c := range cats[limit-1:] {
				rest += c.Count
			}
			cats = cats[:limit-1]
		}
		for _, c := range cats {
			add(c.Value, c.Count)
		}
		if rest > 0 {
			add("Outros", rest)
		}
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: column %q is empty", ErrNoData, col)
	}
	if len(bars) > labelledBarsMax {
		for i := range bars {
			bars[i].Label = ""
		}
	}
	yr, err := valueRange(counts)
	if err != nil {
		return nil, err
	}
	return newBarChart(fmt.Sprintf("Histograma - %s", col), bars, yr, opt), nil
}

// ScatterChart plots rows where both x and y parse as numbers. x and y may
// name the same column.
func ScatterChart(t *table.Table, x, y string, opt Options) (*chart.Chart, error) {
	xc, err := t.Column(x)
	if err != nil {
		return nil, err
	}
	yc, err := t.Column(y)
	if err != nil {
		return nil, err
	}
	xs, ys := Pairs(xc, yc)
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: no rows with numeric %q and %q", ErrNoData, x, y)
	}
	xr, err := paddedRange(xs)
	if err != nil {
		return nil, err
	}
	yr, err := paddedRange(ys)
	if err != nil {
		return nil, err
	}
	c := &chart.Chart{
		Title:      fmt.Sprintf("Scatter Plot - %s vs %s", x, y),
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: x, Range: xr, ValueFormatter: formatValue},
		YAxis:      chart.YAxis{Name: y, Range: yr, ValueFormatter: formatValue},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    fmt.Sprintf("%s vs %s", x, y),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    seriesColor,
			},
		}},
	}
	return c, nil
}

// Pairs returns the rows where both cells are numeric.
func Pairs(xc, yc []string) (xs, ys []float64) {
	for i := 0; i < len(xc) && i < len(yc); i++ {
		xv, okx := analysis.ParseNumber(xc[i])
		yv, oky := analysis.ParseNumber(yc[i])
		if okx && oky {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	return xs, ys
}

// Bar layout: yAxisReserve pixels stay free for the y axis and padding, and
// every bar gets a slot of at least minBarSlot pixels (bar plus gap).
const (
	yAxisReserve = 120
	minBarSlot   = 3
	maxBarWidth  = 60
	sparseLabels = 10
)

func chartWidth(opt Options) int {
	if opt.Width <= 0 {
		return DefaultOptions().Width
	}
	return opt.Width
}

// maxBars is how many bars fit the plot area of a canvas width pixels wide.
func maxBars(width int) int {
	n := (width - yAxisReserve) / minBarSlot
	if n < 1 {
		return 1
	}
	return n
}

// barLayout splits the plot area into n slots. Both results are at least 1,
// so go-chart never falls back to its own spacing default.
func barLayout(width, n int) (barWidth, spacing int) {
	slot := (width - yAxisReserve) / n
	if slot < minBarSlot {
		slot = minBarSlot
	}
	spacing = slot / 4
	if spacing < 1 {
		spacing = 1
	}
	barWidth = slot - spacing
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	return barWidth, spacing
}

func newBarChart(title string, bars []chart.Value, yr *chart.ContinuousRange, opt Options) *chart.BarChart {
	width := chartWidth(opt)
	barWidth, spacing := barLayout(width, len(bars))
	var xAxis chart.Style
	if len(bars) > labelledBarsMax {
		// sparse labels are wider than their slot; let them spill
		xAxis.TextWrap = chart.TextWrapNone
	}
	return &chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Range: yr, ValueFormatter: formatValue},
		Bars:       bars,
	}
}

// formatValue keeps axis labels short for very large or very small values.
func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', 6, 64)
	}
	return fmt.Sprint(v)
}

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// valueRange spans the values and zero, never with a zero delta.
func valueRange(vals []float64) (*chart.ContinuousRange, error) {
	lo, hi := bounds(vals)
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if lo == hi {
		hi = lo + 1
	}
	if math.IsInf(hi-lo, 0) {
		return nil, fmt.Errorf("%w: %g to %g", ErrRange, lo, hi)
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}, nil
}

// paddedRange spans the values with a 5% margin, never with a zero delta.
// The margin is dropped when it would overflow.
func paddedRange(vals []float64) (*chart.ContinuousRange, error) {
	lo, hi := bounds(vals)
	pad := (hi - lo) * 0.05
	if lo == hi {
		pad = math.Max(math.Abs(lo)*0.05, 1)
	}
	r := &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	if math.IsInf(r.Max-r.Min, 0) {
		r = &chart.ContinuousRange{Min: lo, Max: hi}
	}
	if math.IsInf(r.Max-r.Min, 0) || r.Max == r.Min {
		return nil, fmt.Errorf("%w: %g to %g", ErrRange, lo, hi)
	}
	return r, nil
}
