/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmhart/spotify-trend-tools/internal/analysis"
	"github.com/jmhart/spotify-trend-tools/internal/dataset"
)

var correlationsCompute bool
var correlationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Shows which features correlate with popularity",
	Long: `Prints the Pearson correlation of each audio feature with track
popularity. Reads the published summary by default; --compute recomputes the
coefficients from the imported raw dataset.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := CorrelationsAnalyser{Compute: correlationsCompute}.GetResults(
			viper.GetString("data_dir"), viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(correlationsCmd)

	correlationsCmd.Flags().BoolVar(&correlationsCompute, "compute",
		false, "Recompute correlations from the raw dataset instead of reading the summary")
}

type CorrelationsAnalyser struct {
	Compute bool
}

func (c CorrelationsAnalyser) GetName() string {
	return "Popularity correlations"
}

func (c CorrelationsAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	var rows []dataset.CorrelationRow
	var source string
	var err error

	if c.Compute {
		rows, err = computeCorrelations(dbPath)
		source = "raw dataset"
	} else {
		rows, err = loadCorrelations(dataDir)
		source = "published summary"
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("correlations: %w", err)
	}

	analysis.SortCorrelations(rows)

	results := [][]string{{"Feature", "Correlation"}}
	for _, row := range rows {
		results = append(results, []string{string(row.Feature), fmt.Sprintf("%+.4f", row.Coefficient)})
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Pearson correlation with popularity, from the %s.", source),
	}, nil
}

func loadCorrelations(dataDir string) ([]dataset.CorrelationRow, error) {
	data, err := openData(dataDir)
	if err != nil {
		return nil, err
	}
	return data.Correlations()
}

func computeCorrelations(dbPath string) ([]dataset.CorrelationRow, error) {
	s, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return analysis.ComputeCorrelations(s)
}
