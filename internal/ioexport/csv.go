package ioexport

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/happidata/whr/pkg/table"
	"github.com/happidata/whr/pkg/whr"
)

type csvExporter struct{}

// NewCSV creates an exporter that writes the table as a CSV file with
// a header row. Null cells become empty fields.
func NewCSV() whr.Exporter {
	return &csvExporter{}
}

func (e *csvExporter) Export(
	ctx context.Context,
	t *table.Table,
	path string,
) error {
	f, err := os.Create(path)
	if err != nil {
		return CreateError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	cols := t.Columns()
	if err = w.Write(cols); err != nil {
		return WriteError(path, err)
	}
	record := make([]string, len(cols))
	for row := 0; row < t.Len(); row++ {
		for i, col := range cols {
			record[i] = fieldValue(t.Cell(col, row))
		}
		if err = w.Write(record); err != nil {
			return WriteError(path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func fieldValue(c table.Cell) string {
	if c.IsNull() {
		return ""
	}
	if f, ok := c.Float(); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return c.String()
}
