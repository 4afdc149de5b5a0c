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
)

var statTestsCmd = &cobra.Command{
	Use:   "stat-tests",
	Short: "Shows the dataset's hypothesis test results",
	Long:  `Prints the published t-test results, marking statistically significant differences (p < 0.05).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := StatTestsAnalyser{}.GetResults(viper.GetString("data_dir"), viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(statTestsCmd)
}

type StatTestsAnalyser struct{}

func (s StatTestsAnalyser) GetName() string {
	return "Statistical tests"
}

func (s StatTestsAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	data, err := openData(dataDir)
	if err != nil {
		return Analysis{}, fmt.Errorf("stat-tests: %w", err)
	}
	rows, err := data.StatTests()
	if err != nil {
		return Analysis{}, fmt.Errorf("stat-tests: %w", err)
	}

	results := [][]string{{"Hypothesis", "Groups", "Mean diff", "t", "p", "Conclusion"}}
	significant := 0
	for _, row := range rows {
		p := fmt.Sprintf("%.4f", row.PValue)
		if row.PValue < 0.05 {
			p += " *"
			significant++
		}
		results = append(results, []string{
			row.Hypothesis,
			fmt.Sprintf("%s vs %s", row.GroupA, row.GroupB),
			fmt.Sprintf("%+.3f", row.MeanDiff),
			fmt.Sprintf("%.2f", row.TStatistic),
			p,
			row.Conclusion,
		})
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("%d of %d tests significant at p < 0.05 (marked *).", significant, len(rows)),
	}, nil
}
