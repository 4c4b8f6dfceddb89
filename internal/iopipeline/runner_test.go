package iopipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happidata/whr/internal/iocatalog"
	"github.com/happidata/whr/internal/iopipeline"
	"github.com/happidata/whr/internal/iotesting"
	"github.com/happidata/whr/pkg/config"
	"github.com/happidata/whr/pkg/enrich"
	"github.com/happidata/whr/pkg/impute"
	"github.com/happidata/whr/pkg/resolve"
	"github.com/happidata/whr/pkg/standardize"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := iotesting.GetTestConfig(t)
	iotesting.WriteCatalog(t, cfg,
		"Czechia,Central and Eastern Europe\n"+
			"Denmark,Western Europe\n"+
			"Finland,Western Europe\n"+
			"Turkiye,Middle East and North Africa\n")
	return cfg
}

func uploadCSV(t *testing.T) string {
	t.Helper()
	return iotesting.WriteFile(t, t.TempDir(), "WHR2024.csv",
		"Country name,Ladder score,Explained by: Log GDP per capita,Generosity\n"+
			"Finland,7.741,1.844,0.153\n"+
			"Denmark,7.583,1.908,0.204\n"+
			"Turkey,4.975,1.642,\n"+
			"Czech Rep.,6.822,1.845,0.089\n")
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	loader := iocatalog.New(cfg)
	pipe := iopipeline.New(cfg, loader, iopipeline.OptChoices(
		map[string]string{"Czech Rep.": "Czechia"},
	))

	res, err := pipe.Run(context.Background(), uploadCSV(t))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Rows)

	t.Run("countries are canonical", func(t *testing.T) {
		assert.Equal(t, "Turkiye",
			res.Table.Cell(standardize.AttrCountry, 2).String())
		assert.Equal(t, "Czechia",
			res.Table.Cell(standardize.AttrCountry, 3).String())
	})

	t.Run("regions attached from catalog", func(t *testing.T) {
		assert.Equal(t, []string{
			"Central and Eastern Europe",
			"Middle East and North Africa",
			"Western Europe",
		}, res.Regions)
	})

	t.Run("missing generosity was imputed", func(t *testing.T) {
		f, ok := res.Table.Cell(standardize.AttrGenerosity, 2).Float()
		require.True(t, ok)
		// median of 0.153, 0.204, 0.089
		assert.InDelta(t, 0.153, f, 1e-9)
	})

	t.Run("insights are present", func(t *testing.T) {
		assert.NotNil(t, res.Insights.Correlation)
		assert.NotNil(t, res.Insights.Outliers)
		assert.NotEmpty(t, res.Insights.Factors)
	})
}

func TestRunDropStrategy(t *testing.T) {
	cfg := testConfig(t)
	pipe := iopipeline.New(cfg, iocatalog.New(cfg),
		iopipeline.OptChoices(map[string]string{"Czech Rep.": "Czechia"}),
		iopipeline.OptStrategy(impute.Drop),
	)

	res, err := pipe.Run(context.Background(), uploadCSV(t))
	require.NoError(t, err)

	// the Turkey row has a missing Generosity value
	assert.Equal(t, 3, res.Rows)
	for row := 0; row < res.Rows; row++ {
		assert.NotEqual(t, "Turkiye",
			res.Table.Cell(standardize.AttrCountry, row).String())
	}
}

func TestRunRegionFilter(t *testing.T) {
	cfg := testConfig(t)
	pipe := iopipeline.New(cfg, iocatalog.New(cfg),
		iopipeline.OptChoices(map[string]string{"Czech Rep.": "Czechia"}),
		iopipeline.OptRegions([]string{"Western Europe"}),
	)

	res, err := pipe.Run(context.Background(), uploadCSV(t))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, []string{"Western Europe"}, res.Regions)
}

func TestRunKeepOriginal(t *testing.T) {
	cfg := testConfig(t)
	pipe := iopipeline.New(cfg, iocatalog.New(cfg),
		iopipeline.OptChoices(
			map[string]string{"Czech Rep.": resolve.KeepOriginal},
		),
	)

	res, err := pipe.Run(context.Background(), uploadCSV(t))
	require.NoError(t, err)

	assert.Equal(t, "Czech Rep.",
		res.Table.Cell(standardize.AttrCountry, 3).String())
	assert.Equal(t, enrich.UnknownRegion,
		res.Table.Cell(standardize.AttrRegion, 3).String())
}

func TestRunNonInteractiveWithoutChoices(t *testing.T) {
	cfg := testConfig(t)
	pipe := iopipeline.New(cfg, iocatalog.New(cfg))

	res, err := pipe.Run(context.Background(), uploadCSV(t))
	require.NoError(t, err)

	// unmatched countries fall back to their original names
	assert.Equal(t, "Czech Rep.",
		res.Table.Cell(standardize.AttrCountry, 3).String())
}

func TestRunCollision(t *testing.T) {
	cfg := testConfig(t)
	path := iotesting.WriteFile(t, t.TempDir(), "collide.csv",
		"Country name,Ladder score\n"+
			"Czech Rep.,6.8\n"+
			"Czech Republic,6.7\n")
	pipe := iopipeline.New(cfg, iocatalog.New(cfg),
		iopipeline.OptChoices(map[string]string{
			"Czech Rep.":     "Czechia",
			"Czech Republic": "Czechia",
		}),
	)

	_, err := pipe.Run(context.Background(), path)
	assert.Error(t, err)
}

func TestRunMissingCountryColumn(t *testing.T) {
	cfg := testConfig(t)
	path := iotesting.WriteFile(t, t.TempDir(), "nocountry.csv",
		"Ladder score\n7.7\n")
	pipe := iopipeline.New(cfg, iocatalog.New(cfg))

	_, err := pipe.Run(context.Background(), path)
	assert.Error(t, err)
}

func TestRunMissingCatalog(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	pipe := iopipeline.New(cfg, iocatalog.New(cfg))

	_, err := pipe.Run(context.Background(), uploadCSV(t))
	assert.Error(t, err)
}

func TestReadChoices(t *testing.T) {
	path := iotesting.WriteFile(t, t.TempDir(), "choices.yaml",
		"Czech Rep.: Czechia\nNarnia: keep\n")

	choices, err := iopipeline.ReadChoices(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Czech Rep.": "Czechia",
		"Narnia":     resolve.KeepOriginal,
	}, choices)
}

func TestReadChoicesBadFile(t *testing.T) {
	_, err := iopipeline.ReadChoices("/no/such/choices.yaml")
	assert.Error(t, err)

	path := iotesting.WriteFile(t, t.TempDir(), "bad.yaml",
		"- just\n- a\n- list\n")
	_, err = iopipeline.ReadChoices(path)
	assert.Error(t, err)
}
