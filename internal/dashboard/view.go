package dashboard

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/analysis"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/charts"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/session"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
)

// Option is one entry of a select or multi-select input.
type Option struct {
	Value    string
	Selected bool
}

// ChartPanel is one rendered chart slot on the page.
type ChartPanel struct {
	Column string
	X, Y   string
	URL    string
	Err    string
	Note   string
}

// View is everything the page template needs for one render.
type View struct {
	Theme  Theme
	Flash  *session.Flash
	Status *session.Flash

	Loaded   bool
	FileName string

	ColumnOptions []Option
	Selected      []string

	Header    []string
	Rows      [][]string
	RowCount  int
	Truncated bool
	Profile   []analysis.ColumnSummary

	ChartKinds    []Option
	ChartColumns  []Option
	HistColumns   []Option
	ScatterXCols  []Option
	ScatterYCols  []Option
	Simple        ChartPanel
	ShowHistogram bool
	Histogram     ChartPanel
	ShowScatter   bool
	Scatter       ChartPanel
}

// HasSelection reports whether anything below the column selector renders.
func (v View) HasSelection() bool { return v.Loaded && len(v.Selected) > 0 }

// BuildView derives the page from session data and the uploaded table. It
// does not modify either; t is nil when nothing is loaded.
func BuildView(d session.Data, t *table.Table, opt Options) View {
	v := View{
		Theme:  ResolveTheme(d.Theme, opt.DefaultTheme),
		Flash:  d.Flash,
		Status: d.Status,
	}
	if t == nil || d.Upload == nil {
		return v
	}
	v.Loaded = true
	v.FileName = d.Upload.Name

	v.Selected = t.FilterColumns(d.Widgets.Columns)
	v.ColumnOptions = options(selectionFirst(t.Columns, v.Selected), v.Selected...)
	if len(v.Selected) == 0 {
		return v
	}
	filtered, err := t.Select(v.Selected)
	if err != nil {
		v.Status = &session.Flash{Kind: session.FlashError, Text: err.Error()}
		return v
	}

	v.Header = filtered.Columns
	v.RowCount = filtered.NumRows()
	v.Rows = filtered.Rows
	if opt.MaxDisplayRows > 0 && len(v.Rows) > opt.MaxDisplayRows {
		v.Rows = v.Rows[:opt.MaxDisplayRows]
		v.Truncated = true
	}
	v.Profile = analysis.Profile(filtered, analysis.Options{TopValues: 3}).Cols

	rev := d.Upload.ID.String()

	kind := charts.Kind(d.Widgets.ChartKind)
	if _, err := charts.ParseKind(d.Widgets.ChartKind); err != nil || kind == charts.Histogram || kind == charts.Scatter {
		kind = charts.Bar
	}
	kinds := make([]string, len(charts.SimpleKinds))
	for i, k := range charts.SimpleKinds {
		kinds[i] = string(k)
	}
	v.ChartKinds = options(kinds, string(kind))

	col := pick(v.Selected, d.Widgets.ChartColumn)
	v.ChartColumns = options(v.Selected, col)
	v.Simple = panel(filtered, charts.Request{Kind: kind, Column: col}, opt, rev)

	v.ShowHistogram = d.Widgets.ShowHistogram
	hist := pick(v.Selected, d.Widgets.HistColumn)
	v.HistColumns = options(v.Selected, hist)
	if v.ShowHistogram {
		v.Histogram = panel(filtered, charts.Request{Kind: charts.Histogram, Column: hist}, opt, rev)
	}

	v.ShowScatter = d.Widgets.ShowScatter
	x := pick(v.Selected, d.Widgets.ScatterX)
	y := pick(v.Selected, d.Widgets.ScatterY)
	v.ScatterXCols = options(v.Selected, x)
	v.ScatterYCols = options(v.Selected, y)
	if v.ShowScatter {
		v.Scatter = panel(filtered, charts.Request{Kind: charts.Scatter, X: x, Y: y}, opt, rev)
		if v.Scatter.Err == "" {
			xc, _ := filtered.Column(x)
			yc, _ := filtered.Column(y)
			if r, ok := analysis.Pearson(charts.Pairs(xc, yc)); ok {
				v.Scatter.Note = fmt.Sprintf("r = %.3f", r)
			}
		}
	}
	return v
}

// panel renders the chart once, discarding the image, so a chart that cannot
// be drawn shows a message instead of a broken image. The image itself is
// served by the chart endpoint.
func panel(t *table.Table, req charts.Request, opt Options, rev string) ChartPanel {
	p := ChartPanel{Column: req.Column, X: req.X, Y: req.Y}
	if err := charts.RenderPNG(io.Discard, t, req, opt.Charts); err != nil {
		switch {
		case errors.Is(err, charts.ErrNoData):
			p.Err = "Sem dados numéricos para este gráfico."
		case errors.Is(err, charts.ErrRange):
			p.Err = "Valores extremos demais para este gráfico."
		default:
			p.Err = err.Error()
		}
		return p
	}
	q := url.Values{}
	q.Set("kind", string(req.Kind))
	if req.Kind == charts.Scatter {
		q.Set("x", req.X)
		q.Set("y", req.Y)
	} else {
		q.Set("col", req.Column)
	}
	q.Set("v", rev)
	p.URL = "/chart.png?" + q.Encode()
	return p
}

// pick returns want when it is one of cols, else the first column.
func pick(cols []string, want string) string {
	for _, c := range cols {
		if c == want {
			return c
		}
	}
	if len(cols) == 0 {
		return ""
	}
	return cols[0]
}

// selectionFirst lists selected in order, then the remaining columns in table
// order. A multi-select posts its values in page order, so this keeps the
// posted order equal to the order the columns were picked in.
func selectionFirst(cols, selected []string) []string {
	out := make([]string, 0, len(cols))
	seen := make(map[string]bool, len(selected))
	for _, s := range selected {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, c := range cols {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

func options(values []string, selected ...string) []Option {
	sel := make(map[string]bool, len(selected))
	for _, s := range selected {
		sel[s] = true
	}
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Selected: sel[v]}
	}
	return out
}
