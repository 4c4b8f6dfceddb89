package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happidata/whr/pkg/catalog"
	"github.com/happidata/whr/pkg/match"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{CanonicalName: "Finland", Region: "Western Europe"},
		{CanonicalName: "Turkiye", Region: "Middle East and North Africa"},
		{CanonicalName: "Czechia", Region: "Central and Eastern Europe"},
		{CanonicalName: "United States", Region: "North America and ANZ"},
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		msg, input, want string
	}{
		{msg: "footnote marker", input: "Luxembourg*", want: "Luxembourg"},
		{msg: "whitespace", input: "  Finland ", want: "Finland"},
		{msg: "both", input: " Czechia* ", want: "Czechia"},
		{msg: "clean", input: "Finland", want: "Finland"},
	}
	for _, v := range tests {
		assert.Equal(t, v.want, match.Normalize(v.input), v.msg)
	}
}

func TestBest(t *testing.T) {
	m := match.New(testCatalog(), 0, 0)

	t.Run("exact match scores 100", func(t *testing.T) {
		name, score := m.Best("Turkiye")
		assert.Equal(t, "Turkiye", name)
		assert.Equal(t, 100, score)
	})

	t.Run("near spelling clears the threshold", func(t *testing.T) {
		name, score := m.Best("Turkey")
		assert.Equal(t, "Turkiye", name)
		assert.GreaterOrEqual(t, score, match.DefaultThreshold)
	})

	t.Run("distinct name stays below threshold", func(t *testing.T) {
		_, score := m.Best("Narnia")
		assert.Less(t, score, match.DefaultThreshold)
	})

	t.Run("footnote marker is ignored", func(t *testing.T) {
		name, score := m.Best("Finland*")
		assert.Equal(t, "Finland", name)
		assert.Equal(t, 100, score)
	})
}

func TestTop(t *testing.T) {
	m := match.New(testCatalog(), 0, 0)
	res := m.Top("Czech Republic", 3)
	require.Len(t, res, 3)
	assert.Equal(t, "Czechia", res[0].Name)
	for i := 1; i < len(res); i++ {
		assert.LessOrEqual(t, res[i].Score, res[i-1].Score)
	}
}

func TestRun(t *testing.T) {
	m := match.New(
		testCatalog(), match.DefaultThreshold, match.DefaultSuggestions,
	)
	res := m.Run([]string{"Finland", "Turkey", "Narnia"})

	assert.Equal(t, "Finland", res.Mapping["Finland"])
	assert.Equal(t, "Turkiye", res.Mapping["Turkey"])

	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, "Narnia", res.Unmatched[0].Raw)
	assert.Len(t, res.Unmatched[0].Suggestions, match.DefaultSuggestions)
}

func TestRunEmpty(t *testing.T) {
	m := match.New(testCatalog(), 0, 0)
	res := m.Run(nil)
	assert.Empty(t, res.Mapping)
	assert.Empty(t, res.Unmatched)
}
