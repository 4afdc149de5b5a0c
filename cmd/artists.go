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

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

var artistsNumber int
var artistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "Shows the chart-topping artists and their sound",
	Long:  `Prints the mean audio profile of the artists with the most charting songs.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := ArtistsAnalyser{NumToReturn: artistsNumber}.GetResults(
			viper.GetString("data_dir"), viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(artistsCmd)

	artistsCmd.Flags().IntVarP(&artistsNumber, "number", "n", 0, "number of artists to show (default all)")
}

type ArtistsAnalyser struct {
	NumToReturn int
}

func (a ArtistsAnalyser) GetName() string {
	return "Top artists"
}

func (a ArtistsAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	data, err := openData(dataDir)
	if err != nil {
		return Analysis{}, fmt.Errorf("artists: %w", err)
	}
	rows, err := data.Artists()
	if err != nil {
		return Analysis{}, fmt.Errorf("artists: %w", err)
	}

	header := []string{"Artist", "Songs"}
	for _, f := range profile.AudioFeatures {
		header = append(header, string(f))
	}

	results := [][]string{header}
	for i, row := range rows {
		if a.NumToReturn > 0 && i >= a.NumToReturn {
			break
		}
		line := []string{row.Name, strconv.Itoa(row.SongCount)}
		for _, f := range profile.AudioFeatures {
			line = append(line, fmtFloat(row.Features[f]))
		}
		results = append(results, line)
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Found %d artists.", len(rows)),
	}, nil
}
