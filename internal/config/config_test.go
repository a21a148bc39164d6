package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":8501" || c.MaxUploadMB != 200 || c.DefaultBackground != "#FFFFFF" || c.DefaultText != "#000000" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "turismo.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9000\"\nchart_width: 640\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TURISMO_CHART_WIDTH", "1024")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":9000" {
		t.Fatalf("addr = %q, want value from file", c.Addr)
	}
	if c.ChartWidth != 1024 {
		t.Fatalf("chart_width = %d, want env override", c.ChartWidth)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.DefaultBackground = "#112233"
	if err := Save(c, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.DefaultBackground != "#112233" {
		t.Fatalf("default_background = %q", again.DefaultBackground)
	}
}

func TestDelimiter(t *testing.T) {
	tests := []struct {
		in    string
		want  rune
		sniff bool
		err   bool
	}{
		{",", ',', false, false},
		{";", ';', false, false},
		{"tab", '\t', false, false},
		{"auto", 0, true, false},
		{"|", 0, false, true},
	}
	for _, tt := range tests {
		c := &Global{CSVDelimiter: tt.in}
		r, sniff, err := c.Delimiter()
		if (err != nil) != tt.err || r != tt.want || sniff != tt.sniff {
			t.Errorf("Delimiter(%q) = %q, %v, %v", tt.in, r, sniff, err)
		}
	}
}

func TestDefaultsMatchLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d := Defaults(); *d != *c {
		t.Fatalf("Defaults() = %+v, Load = %+v", d, c)
	}
}
