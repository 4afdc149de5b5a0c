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

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

var decadesCmd = &cobra.Command{
	Use:   "decades",
	Short: "Shows the audio fingerprint of each decade's hits",
	Long: `Prints each decade's mean feature profile, min-max scaled across the
decades so a column's highest decade reads 1.000 and its lowest 0.000.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := DecadesAnalyser{}.GetResults(viper.GetString("data_dir"), viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(decadesCmd)
}

type DecadesAnalyser struct{}

func (d DecadesAnalyser) GetName() string {
	return "Decadal trends"
}

func (d DecadesAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	data, err := openData(dataDir)
	if err != nil {
		return Analysis{}, fmt.Errorf("decades: %w", err)
	}
	rows, err := data.Decades()
	if err != nil {
		return Analysis{}, fmt.Errorf("decades: %w", err)
	}
	if len(rows) == 0 {
		return Analysis{}, fmt.Errorf("decades: no rows")
	}

	// Scale each column over the observed decade values rather than the
	// fixed native ranges, so the table shows which decade peaked where.
	population := make([]profile.Vector, 0, len(rows))
	for _, row := range rows {
		population = append(population, row.Features)
	}
	ranges, err := profile.RangesFromPopulation(population, profile.AudioFeatures)
	if err != nil {
		return Analysis{}, fmt.Errorf("decades: %w", err)
	}

	header := []string{"Decade"}
	for _, f := range profile.AudioFeatures {
		header = append(header, string(f))
	}

	results := [][]string{header}
	for _, row := range rows {
		line := []string{row.Label}
		for _, f := range profile.AudioFeatures {
			line = append(line, fmtFloat(profile.Normalize(f, row.Features[f], ranges)))
		}
		results = append(results, line)
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Found %d decades. Values are scaled 0-1 within each column.", len(rows)),
	}, nil
}
