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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// maxGenreSelection caps the genre comparison the way the radar chart does.
const maxGenreSelection = 5

var genresCmd = &cobra.Command{
	Use:   "genres [name...]",
	Short: "Compares the audio profiles of genres",
	Long: `Prints the normalized feature profile of up to five genres side by
side, the values a radar chart would plot. With no arguments, lists every
genre with its raw profile and popularity.`,
	Args: cobra.MaximumNArgs(maxGenreSelection),
	Run: func(cmd *cobra.Command, args []string) {
		out, err := GenresAnalyser{Names: args}.GetResults(viper.GetString("data_dir"), viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

type GenresAnalyser struct {
	Names []string
}

func (g GenresAnalyser) GetName() string {
	return "Genre profiles"
}

func (g GenresAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	data, err := openData(dataDir)
	if err != nil {
		return Analysis{}, fmt.Errorf("genres: %w", err)
	}
	rows, err := data.Genres()
	if err != nil {
		return Analysis{}, fmt.Errorf("genres: %w", err)
	}

	if len(g.Names) == 0 {
		return genreListing(rows), nil
	}
	return genreComparison(rows, g.Names)
}

func genreListing(rows []dataset.GenreRow) Analysis {
	header := []string{"Genre", "Popularity"}
	for _, f := range profile.AudioFeatures {
		header = append(header, string(f))
	}

	results := [][]string{header}
	for _, row := range rows {
		line := []string{row.Genre, fmt.Sprintf("%.1f", row.Popularity)}
		for _, f := range profile.AudioFeatures {
			line = append(line, fmtFloat(row.Features[f]))
		}
		results = append(results, line)
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Found %d genres.", len(rows)),
	}
}

// genreComparison prints normalized axis values for the selected genres, one
// column per genre.
func genreComparison(rows []dataset.GenreRow, names []string) (Analysis, error) {
	byName := make(map[string]dataset.GenreRow, len(rows))
	for _, row := range rows {
		byName[strings.ToLower(row.Genre)] = row
	}

	selected := make([]dataset.GenreRow, 0, len(names))
	for _, name := range names {
		row, ok := byName[strings.ToLower(name)]
		if !ok {
			return Analysis{}, fmt.Errorf("unknown genre %q", name)
		}
		selected = append(selected, row)
	}

	ranges := profile.DefaultRanges()

	header := []string{"Feature"}
	for _, row := range selected {
		header = append(header, row.Genre)
	}

	results := [][]string{header}
	for _, f := range profile.AudioFeatures {
		line := []string{string(f)}
		for _, row := range selected {
			line = append(line, fmtFloat(profile.Normalize(f, row.Features[f], ranges)))
		}
		results = append(results, line)
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Comparing %d genres on normalized 0-1 axes.", len(selected)),
	}, nil
}
