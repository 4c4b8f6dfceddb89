package enrich_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happidata/whr/pkg/catalog"
	"github.com/happidata/whr/pkg/enrich"
	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{CanonicalName: "Finland", Region: "Western Europe"},
		{CanonicalName: "Turkiye", Region: "Middle East and North Africa"},
	})
}

func TestTable(t *testing.T) {
	std := table.New()
	require.NoError(t, std.AppendColumn(standardize.AttrCountry,
		[]table.Cell{
			table.Text("Finland"),
			table.Text("Turkey"),
			table.Text("Narnia"),
		}))
	require.NoError(t, std.AppendColumn(standardize.AttrHappinessScore,
		[]table.Cell{
			table.Number(7.741),
			table.Number(4.975),
			table.Number(9.9),
		}))

	mapping := map[string]string{
		"Finland": "Finland",
		"Turkey":  "Turkiye",
	}
	res, err := enrich.Table(std, mapping, testCatalog())
	require.NoError(t, err)

	t.Run("row count is preserved", func(t *testing.T) {
		assert.Equal(t, std.Len(), res.Len())
	})

	t.Run("country becomes canonical", func(t *testing.T) {
		assert.Equal(t, "Turkiye",
			res.Cell(standardize.AttrCountry, 1).String())
	})

	t.Run("unmapped country keeps its name", func(t *testing.T) {
		assert.Equal(t, "Narnia",
			res.Cell(standardize.AttrCountry, 2).String())
	})

	t.Run("regions come from the catalog", func(t *testing.T) {
		assert.Equal(t, "Western Europe",
			res.Cell(standardize.AttrRegion, 0).String())
		assert.Equal(t, "Middle East and North Africa",
			res.Cell(standardize.AttrRegion, 1).String())
	})

	t.Run("unknown country gets the sentinel region", func(t *testing.T) {
		assert.Equal(t, enrich.UnknownRegion,
			res.Cell(standardize.AttrRegion, 2).String())
	})

	t.Run("no null regions", func(t *testing.T) {
		cells, ok := res.Column(standardize.AttrRegion)
		require.True(t, ok)
		for _, c := range cells {
			assert.False(t, c.IsNull())
		}
	})

	t.Run("input table is untouched", func(t *testing.T) {
		assert.Equal(t, "Turkey",
			std.Cell(standardize.AttrCountry, 1).String())
	})
}

func TestTableDropsUploadedRegion(t *testing.T) {
	std := table.New()
	require.NoError(t, std.AppendColumn(standardize.AttrCountry,
		[]table.Cell{table.Text("Finland")}))
	require.NoError(t, std.AppendColumn(standardize.AttrRegion,
		[]table.Cell{table.Text("Scandinavia")}))

	res, err := enrich.Table(std, map[string]string{
		"Finland": "Finland",
	}, testCatalog())
	require.NoError(t, err)

	// the uploaded region value never survives the merge
	assert.Equal(t, "Western Europe",
		res.Cell(standardize.AttrRegion, 0).String())
}

func TestTableNullCountry(t *testing.T) {
	std := table.New()
	require.NoError(t, std.AppendColumn(standardize.AttrCountry,
		[]table.Cell{table.Null()}))

	res, err := enrich.Table(std, nil, testCatalog())
	require.NoError(t, err)
	assert.True(t, res.Cell(standardize.AttrCountry, 0).IsNull())
	assert.Equal(t, enrich.UnknownRegion,
		res.Cell(standardize.AttrRegion, 0).String())
}

func TestTableNoCountryColumn(t *testing.T) {
	std := table.New()
	require.NoError(t, std.AppendColumn(standardize.AttrHappinessScore,
		[]table.Cell{table.Number(7.7)}))

	_, err := enrich.Table(std, nil, testCatalog())
	assert.ErrorIs(t, err, enrich.ErrNoCountryColumn)
}
