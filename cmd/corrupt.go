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
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/happidata/whr/internal/ioexport"
	"github.com/happidata/whr/internal/ioupload"
	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

// getCorruptCmd returns the corrupt command. It produces test fixtures
// for the imputation engine by blanking a share of values in otherwise
// complete report files.
func getCorruptCmd() *cobra.Command {
	var (
		percent float64
		columns []string
		outPath string
		seed    int64
	)

	corruptCmd := &cobra.Command{
		Use:   "corrupt <file>",
		Short: "Blank a share of values to exercise imputation",
		Long: `Read a report file, standardize its columns, and blank a random
share of values in the chosen columns. The result is written as CSV
and is meant as input for testing the missing-data handling of
"whr process".

Examples:
  whr corrupt WHR2024.csv
  whr corrupt WHR2024.csv --percent 20 --columns "Generosity"
  whr corrupt WHR2024.csv --seed 42 --out broken.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCorrupt(args[0], percent, columns, outPath, seed)
		},
	}

	corruptCmd.Flags().Float64VarP(&percent, "percent", "p", 10,
		"share of values to blank per column")
	corruptCmd.Flags().StringSliceVarP(&columns, "columns", "c",
		[]string{
			standardize.AttrSocialSupport,
			standardize.AttrLifeExpectancy,
			standardize.AttrGenerosity,
		},
		"columns to blank values in")
	corruptCmd.Flags().StringVarP(&outPath, "out", "o", "",
		"output file, default <file>_corrupted.csv")
	corruptCmd.Flags().Int64Var(&seed, "seed", 0,
		"random seed, 0 means time-based")

	return corruptCmd
}

func runCorrupt(
	path string,
	percent float64,
	columns []string,
	outPath string,
	seed int64,
) error {
	ctx := context.Background()

	raw, err := ioupload.Read(path)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	std := standardize.Table(raw)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	total := 0
	for _, col := range columns {
		n, err := blankColumn(std, col, percent, rng)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		total += n
	}

	if outPath == "" {
		ext := filepath.Ext(path)
		outPath = strings.TrimSuffix(path, ext) + "_corrupted.csv"
	}
	exp := ioexport.NewCSV()
	if err = exp.Export(ctx, std, outPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Blanked <em>%d</em> values across %d columns",
		total, len(columns))
	gn.Info("Corrupted file written to <em>%s</em>", outPath)
	return nil
}

// blankColumn nulls a percentage of the non-null cells of one column,
// chosen uniformly at random.
func blankColumn(
	t *table.Table,
	col string,
	percent float64,
	rng *rand.Rand,
) (int, error) {
	cells, ok := t.Column(col)
	if !ok {
		gn.Warn("Column <em>%s</em> is not in the table, skipping", col)
		return 0, nil
	}
	var candidates []int
	for i, c := range cells {
		if !c.IsNull() {
			candidates = append(candidates, i)
		}
	}
	n := int(float64(len(candidates)) * percent / 100)
	if n < 0 {
		n = 0
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	updated := make([]table.Cell, len(cells))
	copy(updated, cells)
	for _, row := range candidates[:n] {
		updated[row] = table.Null()
	}
	if err := t.SetColumn(col, updated); err != nil {
		return 0, err
	}
	return n, nil
}
