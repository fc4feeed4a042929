package extract

import (
	"encoding/csv"
	"fmt"
	"io"
)

func readCSV(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return newTable(dropBlankRows(records), true)
}

// dropBlankRows removes rows whose every cell is empty.
func dropBlankRows(records [][]string) [][]string {
	kept := records[:0]
	for _, row := range records {
		for _, cell := range row {
			if cell != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}
