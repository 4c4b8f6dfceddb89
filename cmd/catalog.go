/*
Copyright © 2025 HappiData

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/happidata/whr/internal/iocatalog"
)

// getCatalogCmd returns the catalog command with its subcommands.
func getCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the country and region reference catalog",
	}
	catalogCmd.AddCommand(getCatalogBuildCmd())
	catalogCmd.AddCommand(getCatalogCheckCmd())
	return catalogCmd
}

func getCatalogBuildCmd() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build <data-dir>",
		Short: "Rebuild the reference catalog from yearly report files",
		Long: `Scan a directory for WHR*.csv report files and regenerate the
country to region reference catalog.

Regions are taken from the newest report that has them; countries
that appear only in reports without region data are listed so their
regions can be filled in by hand.

Examples:
  whr catalog build ./data
  whr catalog build ~/Downloads/whr-reports`,
		Args: cobra.ExactArgs(1),
		RunE: runCatalogBuild,
	}
	return buildCmd
}

func runCatalogBuild(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	builder := iocatalog.NewBuilder(cfg)
	report, err := builder.Build(ctx, args[0])
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Catalog written to <em>%s</em>", report.Path)
	gn.Info("Countries: <em>%d</em>, with region: <em>%d</em>",
		report.Total, report.Filled)
	if len(report.MissingRegion) > 0 {
		gn.Warn("Countries without a region (fill in by hand):")
		for _, name := range report.MissingRegion {
			gn.Warn("  - %s", name)
		}
	}
	return nil
}

func getCatalogCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the reference catalog loads cleanly",
		RunE:  runCatalogCheck,
	}
	return checkCmd
}

func runCatalogCheck(_ *cobra.Command, _ []string) error {
	loader := iocatalog.New(cfg)
	cat, err := loader.Load()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Catalog <em>%s</em> is usable", cfg.CatalogPath())
	gn.Info("Entries: <em>%d</em>", cat.Len())
	if cat.Dropped() > 0 {
		gn.Warn("Dropped <em>%d</em> incomplete or duplicate entries",
			cat.Dropped())
	}
	return nil
}
