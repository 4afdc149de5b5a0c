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
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Prints the headline numbers of the dataset",
	Long:  `Average danceability, the most popular genre, the year span analyzed, and the loudest year on record.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := OverviewAnalyser{}.GetResults(viper.GetString("data_dir"), viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

type OverviewAnalyser struct{}

func (o OverviewAnalyser) GetName() string {
	return "Overview"
}

func (o OverviewAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	data, err := openData(dataDir)
	if err != nil {
		return Analysis{}, fmt.Errorf("overview: %w", err)
	}

	genres, err := data.Genres()
	if err != nil {
		return Analysis{}, fmt.Errorf("overview: %w", err)
	}
	temporal, err := data.Temporal()
	if err != nil {
		return Analysis{}, fmt.Errorf("overview: %w", err)
	}

	overview, err := analysis.ComputeOverview(genres, temporal)
	if err != nil {
		return Analysis{}, fmt.Errorf("overview: %w", err)
	}

	results := [][]string{
		{"Metric", "Value"},
		{"Avg. danceability", fmtFloat(overview.AvgDanceability)},
		{"Most popular genre", overview.MostPopularGenre},
		{"Years analyzed", fmt.Sprintf("%d-%d", overview.FirstYear, overview.LastYear)},
		{"Loudest year", fmt.Sprintf("%d (%.1f dB)", overview.LoudestYear, overview.LoudestYearDb)},
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Summaries cover %d genres over %d years.",
			len(genres), overview.LastYear-overview.FirstYear+1),
	}, nil
}
