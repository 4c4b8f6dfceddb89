// Package table provides a schema-light, column-oriented table used
// throughout the pipeline. Columns are ordered, cells are nullable, and
// canonical attribute columns may be absent; every consumer states which
// columns it requires.
package table

import (
	"fmt"
	"strconv"
)

// Kind describes the content of a single cell.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
)

// Cell is one value of a column. The zero value is a null cell.
type Cell struct {
	kind Kind
	text string
	num  float64
}

// Null returns a null cell.
func Null() Cell { return Cell{} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{kind: KindText, text: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }

// Parse converts a raw string from an uploaded file into a cell.
// Empty strings become null, parseable numbers become numeric cells,
// everything else stays text.
func Parse(s string) Cell {
	if s == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Text(s)
}

func (c Cell) Kind() Kind   { return c.kind }
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Float returns the numeric value of the cell. The second value is
// false for null and text cells.
func (c Cell) Float() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// String renders the cell for output. Null cells render as an empty
// string.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Table is an ordered collection of equally sized columns.
type Table struct {
	cols []string
	data map[string][]Cell
	rows int
}

// New creates an empty table.
func New() *Table {
	return &Table{data: make(map[string][]Cell)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns column names in their current order.
func (t *Table) Columns() []string {
	res := make([]string, len(t.cols))
	copy(res, t.cols)
	return res
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns the cells of a column. The returned slice is shared
// with the table and must not be mutated by callers.
func (t *Table) Column(name string) ([]Cell, bool) {
	cells, ok := t.data[name]
	return cells, ok
}

// Cell returns a single cell. Absent columns and out-of-range rows
// yield a null cell.
func (t *Table) Cell(name string, row int) Cell {
	cells, ok := t.data[name]
	if !ok || row < 0 || row >= len(cells) {
		return Null()
	}
	return cells[row]
}

// AppendColumn adds a column at the end of the column order. The first
// column added determines the row count of the table.
func (t *Table) AppendColumn(name string, cells []Cell) error {
	if _, ok := t.data[name]; ok {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(t.cols) > 0 && len(cells) != t.rows {
		return fmt.Errorf(
			"column %q has %d cells, table has %d rows",
			name, len(cells), t.rows,
		)
	}
	if len(t.cols) == 0 {
		t.rows = len(cells)
	}
	t.cols = append(t.cols, name)
	t.data[name] = cells
	return nil
}

// SetColumn replaces the cells of an existing column, keeping its
// position in the column order.
func (t *Table) SetColumn(name string, cells []Cell) error {
	if _, ok := t.data[name]; !ok {
		return fmt.Errorf("column %q does not exist", name)
	}
	if len(cells) != t.rows {
		return fmt.Errorf(
			"column %q has %d cells, table has %d rows",
			name, len(cells), t.rows,
		)
	}
	t.data[name] = cells
	return nil
}

// DropColumn removes a column if present.
func (t *Table) DropColumn(name string) {
	if _, ok := t.data[name]; !ok {
		return
	}
	delete(t.data, name)
	for i, col := range t.cols {
		if col == name {
			t.cols = append(t.cols[:i], t.cols[i+1:]...)
			break
		}
	}
	if len(t.cols) == 0 {
		t.rows = 0
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	res := New()
	for _, col := range t.cols {
		cells := make([]Cell, len(t.data[col]))
		copy(cells, t.data[col])
		// error impossible: source columns are consistent
		_ = res.AppendColumn(col, cells)
	}
	return res
}

// Filter returns a new table containing only rows for which keep
// returns true. Column order is preserved.
func (t *Table) Filter(keep func(row int) bool) *Table {
	var idx []int
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	res := New()
	for _, col := range t.cols {
		src := t.data[col]
		cells := make([]Cell, 0, len(idx))
		for _, i := range idx {
			cells = append(cells, src[i])
		}
		_ = res.AppendColumn(col, cells)
	}
	return res
}

// Floats extracts a column as float64 values with a validity mask.
// Null and text cells are marked invalid.
func (t *Table) Floats(name string) ([]float64, []bool) {
	cells, ok := t.data[name]
	if !ok {
		return nil, nil
	}
	vals := make([]float64, len(cells))
	mask := make([]bool, len(cells))
	for i, c := range cells {
		vals[i], mask[i] = c.Float()
	}
	return vals, mask
}

// IsNumeric reports whether the column holds at least one number and
// no text cells. Null cells are ignored.
func (t *Table) IsNumeric(name string) bool {
	cells, ok := t.data[name]
	if !ok {
		return false
	}
	var numbers int
	for _, c := range cells {
		switch c.Kind() {
		case KindText:
			return false
		case KindNumber:
			numbers++
		}
	}
	return numbers > 0
}
