// Package ioupload reads user-uploaded yearly report files into the
// pipeline's table representation. CSV and XLSX uploads are supported;
// the header row is required, the schema is not fixed.
package ioupload

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/happidata/whr/pkg/table"
)

// Read loads an uploaded file into a table. The format is picked by
// file extension; anything that is not a spreadsheet is treated as CSV.
func Read(path string) (*table.Table, error) {
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, EmptyError(path)
	}

	res, err := toTable(records)
	if err != nil {
		return nil, ReadError(path, err)
	}
	slog.Info("Loaded upload",
		"path", path,
		"rows", humanize.Comma(int64(res.Len())),
		"columns", len(res.Columns()),
	)
	return res, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// yearly reports are occasionally ragged
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ReadError(path, err)
		}
		records = append(records, rec)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, EmptyError(path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ReadError(path, err)
	}
	return rows, nil
}

// toTable converts header + data rows into a table. Short rows are
// padded with nulls; duplicate headers keep the first occurrence only,
// later ones get an ordinal suffix so no data is silently lost.
func toTable(records [][]string) (*table.Table, error) {
	header := records[0]
	data := records[1:]

	seen := make(map[string]int, len(header))
	res := table.New()
	for col, name := range header {
		name = strings.TrimSpace(name)
		if n := seen[name]; n > 0 {
			name = name + "." + strconv.Itoa(n)
		}
		seen[strings.TrimSpace(header[col])]++

		cells := make([]table.Cell, len(data))
		for row, rec := range data {
			if col < len(rec) {
				cells[row] = table.Parse(strings.TrimSpace(rec[col]))
			} else {
				cells[row] = table.Null()
			}
		}
		if err := res.AppendColumn(name, cells); err != nil {
			return nil, err
		}
	}
	return res, nil
}
