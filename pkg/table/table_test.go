package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happidata/whr/pkg/table"
)

func TestParse(t *testing.T) {
	tests := []struct {
		msg    string
		input  string
		isNull bool
		num    float64
		isNum  bool
	}{
		{msg: "empty is null", input: "", isNull: true},
		{msg: "number", input: "7.741", num: 7.741, isNum: true},
		{msg: "integer", input: "42", num: 42, isNum: true},
		{msg: "text", input: "Finland"},
	}

	for _, v := range tests {
		c := table.Parse(v.input)
		assert.Equal(t, v.isNull, c.IsNull(), v.msg)
		f, ok := c.Float()
		assert.Equal(t, v.isNum, ok, v.msg)
		if v.isNum {
			assert.InDelta(t, v.num, f, 1e-9, v.msg)
		}
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", table.Null().String())
	assert.Equal(t, "Finland", table.Text("Finland").String())
	assert.Equal(t, "7.741", table.Number(7.741).String())
}

func TestAppendColumn(t *testing.T) {
	tbl := table.New()
	err := tbl.AppendColumn("Country", []table.Cell{
		table.Text("Finland"), table.Text("Denmark"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	t.Run("rejects duplicate column", func(t *testing.T) {
		err := tbl.AppendColumn("Country", nil)
		assert.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		err := tbl.AppendColumn("Score", []table.Cell{table.Number(7.7)})
		assert.Error(t, err)
	})
}

func TestDropColumn(t *testing.T) {
	tbl := twoColTable(t)
	tbl.DropColumn("Score")
	assert.Equal(t, []string{"Country"}, tbl.Columns())

	// absent column is a no-op
	tbl.DropColumn("Score")
	assert.Equal(t, []string{"Country"}, tbl.Columns())
}

func TestCloneIsDeep(t *testing.T) {
	tbl := twoColTable(t)
	cp := tbl.Clone()
	err := cp.SetColumn("Score", []table.Cell{
		table.Number(1), table.Number(2),
	})
	require.NoError(t, err)

	f, _ := tbl.Cell("Score", 0).Float()
	assert.InDelta(t, 7.741, f, 1e-9)
}

func TestFilter(t *testing.T) {
	tbl := twoColTable(t)
	res := tbl.Filter(func(row int) bool {
		return tbl.Cell("Country", row).String() == "Denmark"
	})
	assert.Equal(t, 1, res.Len())
	assert.Equal(t, "Denmark", res.Cell("Country", 0).String())
	assert.Equal(t, tbl.Columns(), res.Columns())
}

func TestFloats(t *testing.T) {
	tbl := table.New()
	err := tbl.AppendColumn("Score", []table.Cell{
		table.Number(7.7), table.Null(), table.Text("n/a"),
	})
	require.NoError(t, err)

	vals, mask := tbl.Floats("Score")
	require.Len(t, vals, 3)
	assert.Equal(t, []bool{true, false, false}, mask)
	assert.InDelta(t, 7.7, vals[0], 1e-9)
}

func TestIsNumeric(t *testing.T) {
	tbl := table.New()
	require.NoError(t, tbl.AppendColumn("Score", []table.Cell{
		table.Number(7.7), table.Null(),
	}))
	require.NoError(t, tbl.AppendColumn("Country", []table.Cell{
		table.Text("Finland"), table.Text("Denmark"),
	}))
	require.NoError(t, tbl.AppendColumn("Empty", []table.Cell{
		table.Null(), table.Null(),
	}))

	assert.True(t, tbl.IsNumeric("Score"))
	assert.False(t, tbl.IsNumeric("Country"))
	assert.False(t, tbl.IsNumeric("Empty"))
	assert.False(t, tbl.IsNumeric("Missing"))
}

func twoColTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New()
	require.NoError(t, tbl.AppendColumn("Country", []table.Cell{
		table.Text("Finland"), table.Text("Denmark"),
	}))
	require.NoError(t, tbl.AppendColumn("Score", []table.Cell{
		table.Number(7.741), table.Number(7.583),
	}))
	return tbl
}
