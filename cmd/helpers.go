package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/charts"
	cfgpkg "github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/config"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/dashboard"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/loader"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/session"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
)

// loaderOptions maps the loader keys of c, with an optional --sheet override.
func loaderOptions(c *cfgpkg.Global, sheet int) (loader.Options, error) {
	opt := loader.DefaultOptions()
	r, sniff, err := c.Delimiter()
	if err != nil {
		return opt, err
	}
	opt.Delimiter, opt.SniffDelimiter = r, sniff
	if c.SheetIndex > 0 {
		opt.SheetIndex = c.SheetIndex
	}
	if sheet > 0 {
		opt.SheetIndex = sheet
	}
	return opt, nil
}

func chartOptions(c *cfgpkg.Global) charts.Options {
	opt := charts.DefaultOptions()
	if c.ChartWidth > 0 {
		opt.Width = c.ChartWidth
	}
	if c.ChartHeight > 0 {
		opt.Height = c.ChartHeight
	}
	if c.HistogramBins > 0 {
		opt.Bins = c.HistogramBins
	}
	return opt
}

func dashboardOptions(c *cfgpkg.Global) dashboard.Options {
	opt := dashboard.DefaultOptions()
	if c.MaxUploadMB > 0 {
		opt.MaxUploadBytes = int64(c.MaxUploadMB) << 20
	}
	if c.MaxDisplayRows > 0 {
		opt.MaxDisplayRows = c.MaxDisplayRows
	}
	opt.Charts = chartOptions(c)
	opt.DefaultTheme = session.Theme{
		Background: dashboard.NormalizeColor(c.DefaultBackground, opt.DefaultTheme.Background),
		Text:       dashboard.NormalizeColor(c.DefaultText, opt.DefaultTheme.Text),
	}
	if c.SessionTTLMin > 0 {
		opt.SessionTTL = time.Duration(c.SessionTTLMin) * time.Minute
	}
	return opt
}

// loadFile reads path and parses it by extension.
func loadFile(path string, opt loader.Options) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	t, err := loader.Load(path, data, opt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// splitColumns parses a --columns value. Both repeated flags and
// comma-separated lists are accepted; blanks are dropped.
func splitColumns(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// selectColumns projects t onto cols; no cols keeps every column, as the
// dashboard's selector does after an upload.
func selectColumns(t *table.Table, cols []string) (*table.Table, error) {
	if len(cols) == 0 {
		return t, nil
	}
	return t.Select(cols)
}
