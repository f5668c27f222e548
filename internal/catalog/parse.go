package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one data row keyed by header column name
type Row map[string]string

// Table is the parsed tabular form of a sanitized catalog
type Table struct {
	Header []string // Column names in file order
	Rows   []Row
}

// Parse turns sanitized CSV text into a Table using standard quoting rules:
// quoted fields may hold embedded commas and newlines, and doubled quotes
// escape a literal quote. No domain interpretation happens here.
//
// Ragged rows are tolerated the way the original archive tooling tolerated
// them: short rows leave the trailing columns empty, long rows drop the
// surplus cells.
func Parse(sanitized string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(sanitized))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedInput, err)
	}

	table := &Table{Header: header}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", len(table.Rows)+2, err)
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("%w: header without data rows", ErrMalformedInput)
	}

	return table, nil
}

// HasColumns reports which of the requested columns are absent from the header
func (t *Table) HasColumns(names []string) (missing []string) {
	present := make(map[string]bool, len(t.Header))
	for _, name := range t.Header {
		present[name] = true
	}
	for _, name := range names {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
