package standardize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

func TestTableMapsReportHeaders(t *testing.T) {
	tests := []struct {
		msg    string
		header string
		attr   string
	}{
		{msg: "2024 country", header: "Country name", attr: standardize.AttrCountry},
		{msg: "2024 region", header: "Regional indicator", attr: standardize.AttrRegion},
		{msg: "2024 score", header: "Ladder score", attr: standardize.AttrHappinessScore},
		{msg: "2022 score", header: "Happiness score", attr: standardize.AttrHappinessScore},
		{msg: "gdp", header: "Explained by: Log GDP per capita", attr: standardize.AttrGDP},
		{msg: "support", header: "Social support", attr: standardize.AttrSocialSupport},
		{msg: "expectancy", header: "Healthy life expectancy", attr: standardize.AttrLifeExpectancy},
		{msg: "freedom", header: "Freedom to make life choices", attr: standardize.AttrFreedom},
		{msg: "generosity", header: "Generosity", attr: standardize.AttrGenerosity},
		{msg: "corruption", header: "Perceptions of corruption", attr: standardize.AttrCorruption},
	}

	for _, v := range tests {
		src := table.New()
		require.NoError(t, src.AppendColumn(v.header, []table.Cell{
			table.Text("x"),
		}))
		res := standardize.Table(src)
		assert.True(t, res.HasColumn(v.attr), v.msg)
		if v.header != v.attr {
			assert.False(t, res.HasColumn(v.header), v.msg)
		}
	}
}

func TestTablePrefersExplainedBy(t *testing.T) {
	src := table.New()
	require.NoError(t, src.AppendColumn("Log GDP per capita", []table.Cell{
		table.Number(10.8),
	}))
	require.NoError(t, src.AppendColumn(
		"Explained by: Log GDP per capita", []table.Cell{
			table.Number(1.844),
		}))

	res := standardize.Table(src)
	f, ok := res.Cell(standardize.AttrGDP, 0).Float()
	require.True(t, ok)
	assert.InDelta(t, 1.844, f, 1e-9)

	// the losing header stays as a pass-through column
	assert.True(t, res.HasColumn("Log GDP per capita"))
}

func TestTableKeepsUnmappedColumns(t *testing.T) {
	src := table.New()
	require.NoError(t, src.AppendColumn("Country name", []table.Cell{
		table.Text("Finland"),
	}))
	require.NoError(t, src.AppendColumn("Dystopia + residual", []table.Cell{
		table.Number(1.881),
	}))

	res := standardize.Table(src)
	assert.Equal(t,
		[]string{standardize.AttrCountry, "Dystopia + residual"},
		res.Columns())
}

func TestTableIsIdempotent(t *testing.T) {
	src := table.New()
	require.NoError(t, src.AppendColumn("Country name", []table.Cell{
		table.Text("Finland"),
	}))
	require.NoError(t, src.AppendColumn("Ladder score", []table.Cell{
		table.Number(7.741),
	}))

	once := standardize.Table(src)
	twice := standardize.Table(once)
	assert.Equal(t, once.Columns(), twice.Columns())
	f, _ := twice.Cell(standardize.AttrHappinessScore, 0).Float()
	assert.InDelta(t, 7.741, f, 1e-9)
}

func TestTableAttributeOrder(t *testing.T) {
	// attributes come out in canonical order regardless of source order
	src := table.New()
	require.NoError(t, src.AppendColumn("Generosity", []table.Cell{
		table.Number(0.153),
	}))
	require.NoError(t, src.AppendColumn("Country name", []table.Cell{
		table.Text("Finland"),
	}))

	res := standardize.Table(src)
	assert.Equal(t,
		[]string{standardize.AttrCountry, standardize.AttrGenerosity},
		res.Columns())
}
