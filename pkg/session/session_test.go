package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happidata/whr/pkg/match"
	"github.com/happidata/whr/pkg/resolve"
	"github.com/happidata/whr/pkg/session"
	"github.com/happidata/whr/pkg/table"
)

func TestNew(t *testing.T) {
	sess := session.New("/tmp/WHR2024.csv", table.New())

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "/tmp/WHR2024.csv", sess.Path)
	assert.Equal(t, resolve.Unresolved, sess.State())
	assert.False(t, sess.NeedsInput())

	t.Run("upload identity is deterministic", func(t *testing.T) {
		other := session.New("/tmp/WHR2024.csv", table.New())
		assert.Equal(t, sess.UploadID, other.UploadID)
		assert.NotEqual(t, sess.ID, other.ID)
	})
}

func TestBeginResolutionCleanMatch(t *testing.T) {
	sess := session.New("a.csv", table.New())
	sess.BeginResolution(match.Result{
		Mapping: map[string]string{"Turkey": "Turkiye"},
	})

	assert.Equal(t, resolve.Resolved, sess.State())
	assert.False(t, sess.NeedsInput())

	mapping, ok := sess.Mapping()
	require.True(t, ok)
	assert.Equal(t, "Turkiye", mapping["Turkey"])
}

func TestBeginResolutionWithResidue(t *testing.T) {
	sess := session.New("a.csv", table.New())
	sess.BeginResolution(match.Result{
		Mapping: map[string]string{"Turkey": "Turkiye"},
		Unmatched: []match.Unmatched{
			{Raw: "Czech Rep."},
		},
	})

	assert.True(t, sess.NeedsInput())
	_, ok := sess.Mapping()
	assert.False(t, ok)

	collisions, err := sess.Submit(map[string]string{
		"Czech Rep.": "Czechia",
	})
	require.NoError(t, err)
	assert.Empty(t, collisions)
	assert.False(t, sess.NeedsInput())

	mapping, ok := sess.Mapping()
	require.True(t, ok)
	assert.Equal(t, "Czechia", mapping["Czech Rep."])
}
