package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// CSVParser handles CSV files as a single table whose first record is the
// header row.
type CSVParser struct {
	Options docml.Options
}

func (p *CSVParser) Parse(r io.Reader, filename string) (*portabledoc.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var blocks []portabledoc.Block
	if len(records) > 0 {
		rows := make([]portabledoc.TableRow, 0, len(records))
		for i, record := range records {
			cells := make([]portabledoc.TableCell, 0, len(record))
			for _, field := range record {
				cells = append(cells, portabledoc.TableCell{
					Header:  i == 0,
					Content: docml.SplitPlaceholders(field, nil),
				})
			}
			rows = append(rows, portabledoc.TableRow{Cells: cells})
		}
		blocks = append(blocks, portabledoc.Table{Rows: rows})
	}
	return imported(filename, blocks, p.Options), nil
}
