package admixture

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes the table as comma-separated text with a header row. The
// sample ID leads each row and proportions are printed with 6 decimals. Rows
// are written in their current order.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns()); err != nil {
		return err
	}

	record := make([]string, 0, t.K+3)
	for _, row := range t.Rows {
		record = append(record[:0], row.SampleID, row.PopLabel)
		for _, p := range row.Proportions {
			record = append(record, strconv.FormatFloat(p, 'f', 6, 64))
		}
		record = append(record, row.Assignment)

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportedRow holds the descriptive columns of a table written by WriteCSV.
type ExportedRow struct {
	SampleID   string `csv:"Sample"`
	PopLabel   string `csv:"Pop_Label"`
	Assignment string `csv:"assignment"`
}

// ReadExported reads back the sample, label and assignment columns of a table
// written by WriteCSV. Proportion columns are ignored.
func ReadExported(r io.Reader) ([]*ExportedRow, error) {
	rows := []*ExportedRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}
