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
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/happidata/whr/internal/iocatalog"
	"github.com/happidata/whr/internal/iopipeline"
	"github.com/happidata/whr/pkg/config"
	"github.com/happidata/whr/pkg/impute"
	"github.com/happidata/whr/pkg/whr"
)

// getProcessCmd returns the process command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getProcessCmd() *cobra.Command {
	var (
		strategy    string
		regions     []string
		choicesPath string
		interactive bool
		jsonOut     bool
		outPath     string
	)

	processCmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Clean an uploaded report file and derive insights",
		Long: `Run the full reconciliation pipeline over a CSV or Excel file.

This command:
  1. Standardizes column names across report years
  2. Matches country names against the reference catalog
  3. Resolves unmatched countries interactively or from a choices file
  4. Enriches rows with region data from the catalog
  5. Imputes missing numeric values with the chosen strategy
  6. Derives correlation, outlier and factor insights

Examples:
  whr process WHR2024.csv
  whr process WHR2023.xlsx --strategy drop
  whr process data.csv --choices fixes.yaml --regions "Western Europe"
  whr process data.csv --json --out result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args[0], processFlags{
				strategy:    strategy,
				regions:     regions,
				choicesPath: choicesPath,
				interactive: interactive,
				jsonOut:     jsonOut,
				outPath:     outPath,
			})
		},
	}

	processCmd.Flags().StringVarP(&strategy, "strategy", "s", "",
		"imputation strategy: median, mean or drop")
	processCmd.Flags().StringSliceVarP(&regions, "regions", "r", nil,
		"keep only these regions in the result")
	processCmd.Flags().StringVarP(&choicesPath, "choices", "c", "",
		"YAML file with choices for unmatched countries")
	processCmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"prompt for unmatched countries on the terminal")
	processCmd.Flags().BoolVarP(&jsonOut, "json", "j", false,
		"print the result as JSON")
	processCmd.Flags().StringVarP(&outPath, "out", "o", "",
		"write JSON result to a file instead of stdout")

	return processCmd
}

type processFlags struct {
	strategy    string
	regions     []string
	choicesPath string
	interactive bool
	jsonOut     bool
	outPath     string
}

func runProcess(_ *cobra.Command, path string, flags processFlags) error {
	ctx := context.Background()

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

	if flags.jsonOut || flags.outPath != "" {
		return writeJSON(res, flags.outPath)
	}
	printResult(res)
	return nil
}

func newPipeline(
	cfg *config.Config,
	flags processFlags,
) (whr.Pipeline, error) {
	var opts []iopipeline.Option
	if flags.strategy != "" {
		strategy, err := impute.ParseStrategy(flags.strategy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, iopipeline.OptStrategy(strategy))
	}
	if len(flags.regions) > 0 {
		opts = append(opts, iopipeline.OptRegions(flags.regions))
	}
	if flags.choicesPath != "" {
		choices, err := iopipeline.ReadChoices(flags.choicesPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, iopipeline.OptChoices(choices))
	} else if flags.interactive {
		opts = append(opts, iopipeline.OptInteractive(true))
	}

	loader := iocatalog.New(cfg)
	return iopipeline.New(cfg, loader, opts...), nil
}

func writeJSON(res *whr.Result, outPath string) error {
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(res)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if outPath == "" {
		fmt.Println(string(bs))
		return nil
	}
	if err = os.WriteFile(outPath, bs, 0644); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Result written to <em>%s</em>", outPath)
	return nil
}

func printResult(res *whr.Result) {
	gn.Info("Cleaned table: <em>%d</em> rows, <em>%d</em> columns",
		res.Rows, len(res.Columns))
	gn.Info("Regions: %s", strings.Join(res.Regions, ", "))

	if corr := res.Insights.Correlation; corr != nil {
		gn.Info("GDP and happiness: %s (r = %0.2f)",
			corr.Summary, corr.Coefficient)
	}
	if out := res.Insights.Outliers; out != nil {
		gn.Info(
			"Happier than GDP predicts: <em>%s</em>, unhappier: <em>%s</em>",
			out.Happiest, out.Unhappiest)
	}
	if len(res.Insights.Factors) > 0 {
		gn.Info("Factors most correlated with happiness:")
		for i, f := range res.Insights.Factors {
			fmt.Printf("  %d. %s (r = %0.2f)\n", i+1, f.Name, f.Coefficient)
		}
	}
}
