package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownColumn is returned when a requested column does not exist in the table.
var ErrUnknownColumn = errors.New("unknown column")

// ErrDuplicateColumn is returned when a selection names the same column twice.
var ErrDuplicateColumn = errors.New("duplicate column in selection")

// Table is an in-memory tabular structure: named columns and ordered rows of
// cell text. A loaded Table is never mutated; projections return new tables.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// New builds a Table from a header and rows. Rows shorter than the header are
// padded with empty cells and longer rows are truncated, so every row has
// exactly len(columns) cells.
func New(name string, columns []string, rows [][]string) *Table {
	cols := NormalizeHeader(columns)
	out := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, len(cols))
		copy(row, r)
		out[i] = row
	}
	return newTable(name, cols, out)
}

func newTable(name string, cols []string, rows [][]string) *Table {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return &Table{Name: name, Columns: cols, Rows: rows, index: idx}
}

// NormalizeHeader trims header names, names blank headers "Unnamed: N"
// (0-based position) and suffixes repeated names with ".1", ".2", ...
func NormalizeHeader(columns []string) []string {
	out := make([]string, len(columns))
	used := make(map[string]bool, len(columns))
	dups := make(map[string]int)
	for i, c := range columns {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		if c == "" {
			c = fmt.Sprintf("Unnamed: %d", i)
		}
		name := c
		for used[name] {
			dups[c]++
			name = fmt.Sprintf("%s.%d", c, dups[c])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the cells of one column in row order.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// Select projects the table onto cols, in the given order. Row order and row
// count are preserved. The receiver is left untouched.
func (t *Table) Select(cols []string) (*Table, error) {
	pos := make([]int, len(cols))
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		j, ok := t.index[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		seen[c] = true
		pos[i] = j
	}
	rows := make([][]string, len(t.Rows))
	for r, src := range t.Rows {
		row := make([]string, len(pos))
		for i, j := range pos {
			row[i] = src[j]
		}
		rows[r] = row
	}
	header := make([]string, len(cols))
	copy(header, cols)
	return newTable(t.Name, header, rows), nil
}

// FilterColumns keeps the names in want that exist in the table, in order,
// dropping unknown and repeated names.
func (t *Table) FilterColumns(want []string) []string {
	out := make([]string, 0, len(want))
	seen := make(map[string]bool, len(want))
	for _, c := range want {
		if t.HasColumn(c) && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// WriteCSV writes the header and rows as comma-separated text without an
// index column.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// CSV returns the table serialized by WriteCSV.
func (t *Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
