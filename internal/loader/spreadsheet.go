package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
	"github.com/xuri/excelize/v2"
)

type spreadsheetParser struct{}

func (spreadsheetParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls")
}

// Parse reads the selected sheet; its first row is the header.
func (spreadsheetParser) Parse(content []byte, opt Options) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open spreadsheet: no sheets")
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return nil, fmt.Errorf("sheet %d not found; workbook has %d sheet(s): %s",
			idx, len(sheets), strings.Join(sheets, ", "))
	}
	rows, err := f.GetRows(sheets[idx-1])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[idx-1], err)
	}
	if len(rows) == 0 {
		return table.New("", nil, nil), nil
	}
	body := rows[1:]
	out := body[:0]
	for _, r := range body {
		if !isBlankRecord(r) {
			out = append(out, r)
		}
	}
	return table.New("", rows[0], out), nil
}
