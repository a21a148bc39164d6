package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"math"
	"strconv"
	"testing"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
	chart "github.com/wcharczuk/go-chart/v2"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func turismo() *table.Table {
	return table.New("turismo.csv", []string{"ano", "regiao", "gasto", "nota"}, [][]string{
		{"1997", "x", "310.2", "a"},
		{"1998", "y", "305.9", "b"},
		{"1999", "x", "320.4", "c"},
		{"2000", "y", "299.1", "d"},
		{"2001", "x", "330.0", "e"},
	})
}

func TestPieSlicesProportions(t *testing.T) {
	values, err := PieSlices(turismo(), "regiao")
	if err != nil {
		t.Fatalf("pie: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("slices = %d, want 2", len(values))
	}
	if values[0].Value != 3 || values[1].Value != 2 {
		t.Fatalf("slice values = %v, %v; want 3, 2", values[0].Value, values[1].Value)
	}
	if values[0].Label != "x (3)" {
		t.Fatalf("label = %q", values[0].Label)
	}
}

func TestRenderEveryKind(t *testing.T) {
	reqs := []Request{
		{Kind: Bar, Column: "gasto"},
		{Kind: Line, Column: "gasto"},
		{Kind: Pie, Column: "regiao"},
		{Kind: Histogram, Column: "gasto"},
		{Kind: Histogram, Column: "regiao"},
		{Kind: Scatter, X: "ano", Y: "gasto"},
	}
	for _, req := range reqs {
		var buf bytes.Buffer
		if err := RenderPNG(&buf, turismo(), req, DefaultOptions()); err != nil {
			t.Fatalf("%+v: %v", req, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Fatalf("%+v: output is not a PNG", req)
		}
	}
}

func TestScatterSameColumnRenders(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPNG(&buf, turismo(), Request{Kind: Scatter, X: "gasto", Y: "gasto"}, DefaultOptions())
	if err != nil {
		t.Fatalf("scatter with X == Y: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("output is not a PNG")
	}
}

func TestSingleRowCharts(t *testing.T) {
	one := table.New("", []string{"v"}, [][]string{{"7"}})
	for _, k := range []Kind{Bar, Line, Histogram} {
		var buf bytes.Buffer
		if err := RenderPNG(&buf, one, Request{Kind: k, Column: "v"}, DefaultOptions()); err != nil {
			t.Fatalf("%s on one row: %v", k, err)
		}
	}
	var buf bytes.Buffer
	if err := RenderPNG(&buf, one, Request{Kind: Scatter, X: "v", Y: "v"}, DefaultOptions()); err != nil {
		t.Fatalf("scatter on one row: %v", err)
	}
}

func TestNonNumericColumn(t *testing.T) {
	for _, k := range []Kind{Bar, Line} {
		_, err := Build(turismo(), Request{Kind: k, Column: "nota"}, DefaultOptions())
		if !errors.Is(err, ErrNoData) {
			t.Fatalf("%s: expected ErrNoData, got %v", k, err)
		}
	}
	if _, err := Build(turismo(), Request{Kind: Scatter, X: "nota", Y: "gasto"}, DefaultOptions()); !errors.Is(err, ErrNoData) {
		t.Fatalf("scatter: expected ErrNoData, got %v", err)
	}
}

func TestUnknownColumnAndKind(t *testing.T) {
	if _, err := Build(turismo(), Request{Kind: Bar, Column: "nope"}, DefaultOptions()); !errors.Is(err, table.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	if _, err := ParseKind("Radar"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if k, err := ParseKind("Pizza"); err != nil || k != Pie {
		t.Fatalf("ParseKind(Pizza) = %q, %v", k, err)
	}
}

func TestBins(t *testing.T) {
	bins := Bins([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 0)
	if len(bins) != 4 {
		t.Fatalf("bins = %d, want 4 (Sturges)", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 8 {
		t.Fatalf("counted %d values", total)
	}
	if bins[0].Lo != 1 || bins[3].Hi != 8 {
		t.Fatalf("range = [%v, %v]", bins[0].Lo, bins[3].Hi)
	}
	flat := Bins([]float64{5, 5, 5}, 10)
	if len(flat) != 1 || flat[0].Count != 3 {
		t.Fatalf("constant values: %+v", flat)
	}
	if Bins(nil, 3) != nil {
		t.Fatalf("expected nil for no values")
	}
}

func TestPairsSkipsNonNumericRows(t *testing.T) {
	xs, ys := Pairs([]string{"1", "x", "3"}, []string{"2", "4", ""})
	if len(xs) != 1 || xs[0] != 1 || ys[0] != 2 {
		t.Fatalf("pairs = %v %v", xs, ys)
	}
}

func column(n int, value func(i int) string) *table.Table {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{value(i)}
	}
	return table.New("", []string{"v"}, rows)
}

func TestExtremeSpan(t *testing.T) {
	huge := table.New("", []string{"v"}, [][]string{{"-1e308"}, {"1e308"}, {"0"}})

	var buf bytes.Buffer
	if err := RenderPNG(&buf, huge, Request{Kind: Histogram, Column: "v"}, DefaultOptions()); err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("histogram output is not a PNG")
	}

	for _, req := range []Request{
		{Kind: Bar, Column: "v"},
		{Kind: Line, Column: "v"},
		{Kind: Scatter, X: "v", Y: "v"},
	} {
		err := RenderPNG(&bytes.Buffer{}, huge, req, DefaultOptions())
		if !errors.Is(err, ErrRange) {
			t.Fatalf("%s: expected ErrRange, got %v", req.Kind, err)
		}
	}
}

func TestBinsExtremeSpan(t *testing.T) {
	bins := Bins([]float64{-1e308, 1e308, 0}, 0)
	total := 0
	for _, b := range bins {
		if math.IsInf(b.Lo, 0) || math.IsInf(b.Hi, 0) || math.IsNaN(b.Lo) || math.IsNaN(b.Hi) {
			t.Fatalf("non-finite bin edge: %+v", b)
		}
		total += b.Count
	}
	if total != 3 {
		t.Fatalf("counted %d values, want 3", total)
	}
	if bins[0].Lo != -1e308 || bins[len(bins)-1].Hi != 1e308 {
		t.Fatalf("range = [%g, %g]", bins[0].Lo, bins[len(bins)-1].Hi)
	}
}

func TestBarChartFitsCanvas(t *testing.T) {
	opt := DefaultOptions()
	for _, rows := range []int{5, 50, 700, 5000} {
		tbl := column(rows, func(i int) string { return strconv.Itoa(100 + i%37) })
		c, err := BarChart(tbl, "v", opt)
		if err != nil {
			t.Fatalf("%d rows: %v", rows, err)
		}
		if c.BarWidth < 2 || c.BarSpacing < 1 {
			t.Fatalf("%d rows: bar width %d, spacing %d", rows, c.BarWidth, c.BarSpacing)
		}
		used := len(c.Bars) * (c.BarWidth + c.BarSpacing)
		if used > opt.Width-yAxisReserve {
			t.Fatalf("%d rows: bars take %dpx of a %dpx canvas", rows, used, opt.Width)
		}
		if rows <= maxBars(opt.Width) && len(c.Bars) != rows {
			t.Fatalf("%d rows: got %d bars", rows, len(c.Bars))
		}
		if rows > maxBars(opt.Width) && c.Title == "v" {
			t.Fatalf("%d rows: grouped chart should say so in the title", rows)
		}

		var buf bytes.Buffer
		if err := c.Render(chart.PNG, &buf); err != nil {
			t.Fatalf("%d rows: render: %v", rows, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("%d rows: decode: %v", rows, err)
		}
		if img.Bounds().Dx() != opt.Width {
			t.Fatalf("%d rows: image width %d", rows, img.Bounds().Dx())
		}
		// nothing bar-colored right of the bars, where the y axis lives
		b := img.Bounds()
		for x := 20 + used + 15; x < b.Max.X; x++ {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				if r>>8 == 0x1F && g>>8 == 0x77 && bl>>8 == 0xB4 {
					t.Fatalf("%d rows: bar pixel at x=%d (bars end near %d)", rows, x, 20+used)
				}
			}
		}
	}
}

func TestBarLabelsThinnedOnLargeTables(t *testing.T) {
	tbl := column(200, func(i int) string { return strconv.Itoa(i) })
	c, err := BarChart(tbl, "v", DefaultOptions())
	if err != nil {
		t.Fatalf("bar: %v", err)
	}
	labelled := 0
	for _, b := range c.Bars {
		if b.Label != "" {
			labelled++
		}
	}
	if labelled == 0 || labelled > sparseLabels {
		t.Fatalf("labelled %d of %d bars", labelled, len(c.Bars))
	}
	if c.Bars[0].Label != "0" {
		t.Fatalf("first label = %q", c.Bars[0].Label)
	}
}

func TestHistogramFoldsExtraCategories(t *testing.T) {
	opt := DefaultOptions()
	limit := maxBars(opt.Width)
	tbl := column(limit+74, func(i int) string { return fmt.Sprintf("cat%04d", i) })
	c, err := HistogramChart(tbl, "v", opt)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(c.Bars) != limit {
		t.Fatalf("bars = %d, want %d", len(c.Bars), limit)
	}
	if last := c.Bars[len(c.Bars)-1].Value; last != 75 {
		t.Fatalf("folded bar = %v, want 75", last)
	}
}
