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
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmhart/spotify-trend-tools/internal/analysis"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

var temporalCompare bool
var temporalCmd = &cobra.Command{
	Use:   "temporal [feature...]",
	Short: "Shows how audio features evolved year by year",
	Long: `Prints the yearly mean of the selected features (default: all nine).
With --compare, contrasts the mean profiles of the top-10% and bottom-10%
popularity cohorts of the imported raw dataset instead.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var out Analysis
		var err error
		if temporalCompare {
			out, err = compareCohorts(viper.GetString("database"))
		} else {
			var features []profile.Feature
			features, err = parseFeatureArgs(args)
			if err == nil {
				out, err = TemporalAnalyser{Features: features}.GetResults(
					viper.GetString("data_dir"), viper.GetString("database"))
			}
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(temporalCmd)

	temporalCmd.Flags().BoolVar(&temporalCompare, "compare",
		false, "Compare top and bottom popularity cohorts from the raw dataset")
}

// parseFeatureArgs resolves feature names given on the command line; no args
// means all nine audio features.
func parseFeatureArgs(args []string) ([]profile.Feature, error) {
	if len(args) == 0 {
		return profile.AudioFeatures, nil
	}
	features := make([]profile.Feature, 0, len(args))
	for _, arg := range args {
		f, ok := profile.ParseFeature(arg)
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", arg)
		}
		features = append(features, f)
	}
	return features, nil
}

type TemporalAnalyser struct {
	Features []profile.Feature
}

func (t TemporalAnalyser) GetName() string {
	return "Temporal trends"
}

func (t TemporalAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	features := t.Features
	if len(features) == 0 {
		features = profile.AudioFeatures
	}

	data, err := openData(dataDir)
	if err != nil {
		return Analysis{}, fmt.Errorf("temporal: %w", err)
	}
	rows, err := data.Temporal()
	if err != nil {
		return Analysis{}, fmt.Errorf("temporal: %w", err)
	}

	header := []string{"Year"}
	for _, f := range features {
		header = append(header, string(f))
	}

	analysis := Analysis{results: [][]string{header}}
	for _, row := range rows {
		line := []string{strconv.Itoa(row.Year)}
		for _, f := range features {
			line = append(line, fmtFloat(row.Features[f]))
		}
		analysis.results = append(analysis.results, line)
	}

	analysis.summary = fmt.Sprintf("Found %d years of feature means.", len(rows))
	return analysis, nil
}

func compareCohorts(dbPath string) (Analysis, error) {
	s, err := openStore(dbPath)
	if err != nil {
		return Analysis{}, err
	}
	defer s.Close()

	population, err := s.Vectors()
	if err != nil {
		return Analysis{}, fmt.Errorf("compareCohorts: %w", err)
	}

	comparison, err := analysis.ComparePopularityCohorts(population)
	if err != nil {
		return Analysis{}, fmt.Errorf("compareCohorts: %w", err)
	}

	results := [][]string{{"Feature", "Hits (top 10%)", "Flops (bottom 10%)", "Delta"}}
	for _, f := range profile.AudioFeatures {
		hit := comparison.Hit[f]
		flop := comparison.Flop[f]
		results = append(results, []string{
			string(f), fmtFloat(hit), fmtFloat(flop), fmtFloat(hit - flop),
		})
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Compared %d hit tracks against %d flop tracks.",
			comparison.HitSize, comparison.FlopSize),
	}, nil
}
