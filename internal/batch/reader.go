// Package batch classifies many purchase orders from a CSV file.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/potax/internal/flow"
)

// Column names recognized in the CSV header, matched case-insensitively.
const (
	ColumnDescription = "description"
	ColumnSupplier    = "supplier"
)

// ErrMissingDescriptionColumn is returned when the header has no description column.
var ErrMissingDescriptionColumn = errors.New("CSV header has no description column")

// Row is one CSV record turned into a request. Line is the 1-based line
// number of the record in the file.
type Row struct {
	Request flow.Request
	Line    int
}

// ReadRows reads a CSV with a header line. Cells are kept as written so
// the flow sees the description exactly as entered.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingDescriptionColumn
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	descIdx, supplierIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case ColumnDescription:
			descIdx = i
		case ColumnSupplier:
			supplierIdx = i
		}
	}
	if descIdx < 0 {
		return nil, ErrMissingDescriptionColumn
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{
			Line: line,
			Request: flow.Request{
				Description: cell(record, descIdx),
				Supplier:    cell(record, supplierIdx),
			},
		})
	}

	return rows, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
