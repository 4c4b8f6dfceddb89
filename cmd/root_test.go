package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Exists verifies the root command is wired.
func TestRootCmd_Exists(t *testing.T) {
	require.NotNil(t, rootCmd, "Root command should exist")
	assert.Equal(t, "whr", rootCmd.Use,
		"Command name should be whr")
}

// TestRootCmd_Subcommands verifies all subcommands are registered.
func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{
		"process", "catalog", "corrupt", "export",
	} {
		assert.Contains(t, names, want)
	}
}

// TestProcessCmd_Flags verifies the process command flags.
func TestProcessCmd_Flags(t *testing.T) {
	cmd := getProcessCmd()
	require.NotNil(t, cmd)

	for _, flag := range []string{
		"strategy", "regions", "choices", "interactive", "json", "out",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(flag),
			"process should have the %s flag", flag)
	}

	t.Run("requires a file argument", func(t *testing.T) {
		err := cmd.Args(cmd, []string{})
		assert.Error(t, err)
	})
}

// TestCatalogCmd_Subcommands verifies the catalog subcommands.
func TestCatalogCmd_Subcommands(t *testing.T) {
	cmd := getCatalogCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "build")
	assert.Contains(t, names, "check")
}

// TestCorruptCmd_Defaults verifies the corrupt command defaults.
func TestCorruptCmd_Defaults(t *testing.T) {
	cmd := getCorruptCmd()

	percent, err := cmd.Flags().GetFloat64("percent")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, percent, 1e-9)

	columns, err := cmd.Flags().GetStringSlice("columns")
	require.NoError(t, err)
	assert.Len(t, columns, 3)
}

// TestExportCmd_Flags verifies the export command flags.
func TestExportCmd_Flags(t *testing.T) {
	cmd := getExportCmd()
	for _, flag := range []string{"db", "csv", "strategy", "choices"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag),
			"export should have the %s flag", flag)
	}
}
