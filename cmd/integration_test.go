package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag of c and its subcommands back to its default,
// since cobra keeps values and Changed state across Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := runCmd(t, args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// isolate points HOME at a temp dir so no real config is read or written.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "turismo.csv")
	body := "Ano,Diaria,Hotel\n1997,120.5,Copacabana\n1998,130,Ipanema\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCLI_ExportSelectedColumns(t *testing.T) {
	home := isolate(t)
	src := writeCSV(t, home)
	out := filepath.Join(home, "out", "dados_filtrados.csv")

	mustRun(t, "export", src, "--columns", "Ano,Hotel", "-o", out)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if want := "Ano,Hotel\n1997,Copacabana\n1998,Ipanema\n"; string(b) != want {
		t.Fatalf("export = %q, want %q", b, want)
	}

	// repeated flags work as well as a comma list
	mustRun(t, "export", src, "-c", "Diaria", "-c", "Ano", "-o", out)
	b, _ = os.ReadFile(out)
	if !strings.HasPrefix(string(b), "Diaria,Ano\n") {
		t.Fatalf("export header = %q", b)
	}
}

func TestCLI_ExportUnknownColumnAndFormat(t *testing.T) {
	home := isolate(t)
	src := writeCSV(t, home)
	if err := runCmd(t, "export", src, "--columns", "Nope", "-o", filepath.Join(home, "x.csv")); err == nil {
		t.Fatalf("expected unknown column error")
	}
	txt := filepath.Join(home, "notes.txt")
	_ = os.WriteFile(txt, []byte("hello"), 0o644)
	err := runCmd(t, "export", txt, "-o", filepath.Join(home, "y.csv"))
	if err == nil || !strings.Contains(err.Error(), "unsupported file format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestCLI_InspectWritesSummary(t *testing.T) {
	home := isolate(t)
	src := writeCSV(t, home)
	out := filepath.Join(home, "summary.md")
	mustRun(t, "inspect", src, "--columns", "Diaria", "-o", out)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Total de registros: 2") || !strings.Contains(s, "Diaria: numeric") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
	if strings.Contains(s, "Hotel") {
		t.Fatalf("unselected column in summary:\n%s", s)
	}
}

func TestCLI_ChartWritesPNG(t *testing.T) {
	home := isolate(t)
	src := writeCSV(t, home)
	for _, args := range [][]string{
		{"--kind", "Pizza", "--column", "Hotel"},
		{"--kind", "scatter", "--x", "Diaria", "--y", "Diaria"},
	} {
		out := filepath.Join(home, "chart.png")
		mustRun(t, append([]string{"chart", src, "-o", out}, args...)...)
		b, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read chart: %v", err)
		}
		if !bytes.HasPrefix(b, []byte("\x89PNG")) {
			t.Fatalf("%v: not a png", args)
		}
	}
	if err := runCmd(t, "chart", src, "--kind", "Radar", "--column", "Ano"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if err := runCmd(t, "chart", src, "--kind", "scatter", "--x", "Ano"); err == nil {
		t.Fatalf("expected missing --y error")
	}
}

func TestCLI_ConfigSetPersists(t *testing.T) {
	isolate(t)
	mustRun(t, "config", "set", "default_background", "#112233")
	if err := runCmd(t, "config", "set", "default_text", "black"); err == nil {
		t.Fatalf("expected invalid color error")
	}
	if err := runCmd(t, "config", "set", "csv_delimiter", "|"); err == nil {
		t.Fatalf("expected invalid delimiter error")
	}
	c, err := cfgpkg.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultBackground != "#112233" || c.CSVDelimiter != "," {
		t.Fatalf("unexpected config: %+v", c)
	}
}
