package cmd

import (
	"reflect"
	"testing"
	"time"

	cfgpkg "github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/config"
)

func TestSplitColumns(t *testing.T) {
	got := splitColumns([]string{"Ano, Diaria", "", " Hotel ", "Gasto,"})
	want := []string{"Ano", "Diaria", "Hotel", "Gasto"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitColumns = %v, want %v", got, want)
	}
	if splitColumns(nil) != nil {
		t.Fatalf("expected nil for no flags")
	}
}

func TestLoaderOptionsPrecedence(t *testing.T) {
	c := cfgpkg.Defaults()
	c.CSVDelimiter = "auto"
	c.SheetIndex = 2
	opt, err := loaderOptions(c, 0)
	if err != nil {
		t.Fatalf("loaderOptions: %v", err)
	}
	if !opt.SniffDelimiter || opt.SheetIndex != 2 {
		t.Fatalf("unexpected options: %+v", opt)
	}
	if opt, _ = loaderOptions(c, 3); opt.SheetIndex != 3 {
		t.Fatalf("--sheet should override config, got %d", opt.SheetIndex)
	}
	c.CSVDelimiter = "|"
	if _, err := loaderOptions(c, 0); err == nil {
		t.Fatalf("expected error for bad delimiter")
	}
}

func TestDashboardOptionsFromConfig(t *testing.T) {
	c := cfgpkg.Defaults()
	c.MaxUploadMB = 5
	c.ChartWidth = 640
	c.DefaultBackground = "#abcdef"
	c.DefaultText = "not-a-color"
	c.SessionTTLMin = 30
	opt := dashboardOptions(c)
	if opt.MaxUploadBytes != 5<<20 {
		t.Fatalf("MaxUploadBytes = %d", opt.MaxUploadBytes)
	}
	if opt.Charts.Width != 640 || opt.Charts.Height != 420 {
		t.Fatalf("chart size %dx%d", opt.Charts.Width, opt.Charts.Height)
	}
	if opt.DefaultTheme.Background != "#ABCDEF" || opt.DefaultTheme.Text != "#000000" {
		t.Fatalf("theme %+v", opt.DefaultTheme)
	}
	if opt.SessionTTL != 30*time.Minute {
		t.Fatalf("ttl %s", opt.SessionTTL)
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8501"); got != "localhost:8501" {
		t.Fatalf("displayAddr = %q", got)
	}
	if got := displayAddr("0.0.0.0:80"); got != "0.0.0.0:80" {
		t.Fatalf("displayAddr = %q", got)
	}
}
