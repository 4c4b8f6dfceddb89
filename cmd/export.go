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
	"errors"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/happidata/whr/internal/ioexport"
	"github.com/happidata/whr/pkg/whr"
)

// getExportCmd returns the export command. It runs the pipeline
// non-interactively and writes the cleaned table for downstream tools.
func getExportCmd() *cobra.Command {
	var (
		dbPath      string
		csvPath     string
		strategy    string
		regions     []string
		choicesPath string
	)

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Clean a report file and write the result to SQLite or CSV",
		Long: `Run the full reconciliation pipeline over a report file without
prompts and write the cleaned table to an SQLite database, a CSV
file, or both.

Unmatched countries keep their original names unless a choices file
is given.

Examples:
  whr export WHR2024.csv --db happiness.db
  whr export WHR2024.csv --csv cleaned.csv
  whr export data.xlsx --db out.db --choices fixes.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], dbPath, csvPath, processFlags{
				strategy:    strategy,
				regions:     regions,
				choicesPath: choicesPath,
			})
		},
	}

	exportCmd.Flags().StringVar(&dbPath, "db", "",
		"write the cleaned table to this SQLite database")
	exportCmd.Flags().StringVar(&csvPath, "csv", "",
		"write the cleaned table to this CSV file")
	exportCmd.Flags().StringVarP(&strategy, "strategy", "s", "",
		"imputation strategy: median, mean or drop")
	exportCmd.Flags().StringSliceVarP(&regions, "regions", "r", nil,
		"keep only these regions in the result")
	exportCmd.Flags().StringVarP(&choicesPath, "choices", "c", "",
		"YAML file with choices for unmatched countries")

	return exportCmd
}

func runExport(
	path, dbPath, csvPath string,
	flags processFlags,
) error {
	ctx := context.Background()

	if dbPath == "" && csvPath == "" {
		err := errors.New("either --db or --csv is required")
		gn.PrintErrorMessage(err)
		return err
	}

	pipe, err := newPipeline(cfg, flags)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	res, err := pipe.Run(ctx, path)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	targets := []struct {
		path string
		exp  whr.Exporter
	}{
		{dbPath, ioexport.NewSQLite()},
		{csvPath, ioexport.NewCSV()},
	}
	for _, tgt := range targets {
		if tgt.path == "" {
			continue
		}
		if err = tgt.exp.Export(ctx, res.Table, tgt.path); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Cleaned table written to <em>%s</em>", tgt.path)
	}
	return nil
}
