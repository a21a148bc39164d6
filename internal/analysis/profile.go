package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
)

// Column kinds reported in ColumnSummary.Kind.
const (
	KindNumeric     = "numeric"
	KindDatetime    = "datetime"
	KindCategorical = "categorical"
	KindText        = "text"
	KindUnknown     = "unknown"
)

// Options controls profiling of a table.
type Options struct {
	// SampleRows determines how many leading rows to include in the report.
	SampleRows int
	// TopValues caps the categories listed per categorical column.
	TopValues int
	// Outlier detection via robust Z-score (MAD). Counts |z| > OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for profiling.
func DefaultOptions() Options {
	return Options{SampleRows: 5, TopValues: 8, Outliers: true, OutlierThreshold: 3.5}
}

// Report summarizes a table: the row count shown as the dashboard's basic
// metric plus a per-column profile.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
}

// ColumnSummary captures inferred type and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutlierThreshold float64
	// Categorical top values
	TopValues    []CategoryCount
	ExampleTexts []string
}

// Profile computes a Report for t.
func Profile(t *table.Table, opt Options) *Report {
	rep := &Report{Name: t.Name, Rows: t.NumRows()}
	sampleRows := opt.SampleRows
	if sampleRows < 0 {
		sampleRows = 0
	}
	for i := 0; i < len(t.Rows) && i < sampleRows; i++ {
		rep.Samples = append(rep.Samples, t.Rows[i])
	}
	for _, name := range t.Columns {
		cells, err := t.Column(name)
		if err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
			continue
		}
		rep.Cols = append(rep.Cols, summarize(name, cells, opt))
	}
	return rep
}

func summarize(name string, cells []string, opt Options) ColumnSummary {
	s := ColumnSummary{Name: name}
	var (
		nums          []float64
		dtCnt, txtCnt int
		texts         []string
	)
	// Welford
	var n int
	var mean, m2 float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range cells {
		v := strings.TrimSpace(c)
		if v == "" {
			s.Missing++
			continue
		}
		s.NonNull++
		if x, ok := ParseNumber(v); ok {
			nums = append(nums, x)
			n++
			delta := x - mean
			mean += delta / float64(n)
			m2 += delta * (x - mean)
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
			continue
		}
		if _, ok := parseTimeMaybe(v); ok {
			dtCnt++
			continue
		}
		txtCnt++
		texts = append(texts, v)
	}

	switch {
	case n > 0 && n >= dtCnt && n >= txtCnt:
		s.Kind = KindNumeric
		s.Min, s.Max, s.Mean = lo, hi, mean
		if n > 1 {
			s.Std = math.Sqrt(m2 / float64(n-1))
		}
		if opt.Outliers && len(nums) >= 8 {
			thr := opt.OutlierThreshold
			if thr <= 0 {
				thr = 3.5
			}
			median, mad := medianMAD(nums)
			if mad > 0 {
				for _, v := range nums {
					if math.Abs(0.6745*(v-median)/mad) > thr {
						s.OutliersCount++
					}
				}
			}
			s.OutlierThreshold = thr
		}
	case dtCnt > 0 && dtCnt >= txtCnt:
		s.Kind = KindDatetime
	case txtCnt > 0:
		cats := CountCategories(texts)
		s.Unique = len(cats)
		// mostly-unique strings read as free text
		if s.Unique > 20 && s.Unique*2 > txtCnt {
			s.Kind = KindText
			for i := 0; i < len(texts) && i < 3; i++ {
				s.ExampleTexts = append(s.ExampleTexts, texts[i])
			}
			break
		}
		s.Kind = KindCategorical
		top := opt.TopValues
		if top <= 0 {
			top = 8
		}
		if len(cats) > top {
			cats = cats[:top]
		}
		s.TopValues = cats
	default:
		s.Kind = KindUnknown
	}
	return s
}

// Markdown renders the report as a compact text block for the terminal.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Total de registros: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case KindNumeric:
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
			}
		case KindCategorical:
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		case KindText:
			if len(c.ExampleTexts) > 0 {
				b.WriteString(" — e.g., ")
				for i, ex := range c.ExampleTexts {
					if i > 0 {
						b.WriteString(" | ")
					}
					b.WriteString(safeVal(ex))
				}
			}
		}
		b.WriteString("\n")
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD]\n| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n|")
		for range r.Cols {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
