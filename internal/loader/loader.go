package loader

import (
	"errors"
	"fmt"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
)

// ErrUnsupportedFormat indicates the upload's extension is not one the loader
// understands. Load returns it together with a nil table.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmpty indicates a recognised file with no header row.
var ErrEmpty = errors.New("no columns to parse from file")

// Options controls how uploads are parsed.
type Options struct {
	// Delimiter for CSV. If 0, ',' is used unless SniffDelimiter is set.
	Delimiter rune
	// SniffDelimiter picks the most frequent of ',', ';' and tab on the header line.
	SniffDelimiter bool
	// SheetIndex selects the spreadsheet sheet, 1-based. 0 means the first sheet.
	SheetIndex int
}

// DefaultOptions matches the dashboard's behavior: comma-separated CSV and the
// first sheet of a workbook.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Parser turns the bytes of one uploaded file into a table.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte, opt Options) (*table.Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// Load selects a parser by the file name's extension and parses data. For an
// extension no parser claims it returns (nil, ErrUnsupportedFormat); a
// recognised file with bad content returns the parser's wrapped error.
func Load(name string, data []byte, opt Options) (*table.Table, error) {
	for _, p := range registry {
		if !p.CanParse(name) {
			continue
		}
		t, err := p.Parse(data, opt)
		if err != nil {
			return nil, err
		}
		t.Name = name
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Supported reports whether some registered parser accepts name.
func Supported(name string) bool {
	for _, p := range registry {
		if p.CanParse(name) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvParser{})
	Register(spreadsheetParser{})
}
