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
	"github.com/jmhart/spotify-trend-tools/internal/store"
)

var exploreBy string
var exploreLimit int
var exploreCmd = &cobra.Command{
	Use:   "explore <feature>",
	Short: "Slices one feature across the raw dataset",
	Long: `Averages a feature over the imported raw dataset, grouped by release
year, genre, or artist. Requires a prior import.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printExplore(viper.GetString("database"), exploreBy, exploreLimit, args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().StringVar(&exploreBy, "by", "year", "grouping: year, genre, or artist")
	exploreCmd.Flags().IntVarP(&exploreLimit, "number", "n", 20, "number of groups to show (genre and artist only)")
}

func printExplore(dbPath string, by string, limit int, featureName string) error {
	f, ok := profile.ParseFeature(featureName)
	if !ok {
		return fmt.Errorf("unknown feature %q", featureName)
	}

	s, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	var groups []store.GroupMean
	var groupHeader string
	switch by {
	case "year":
		groupHeader = "Year"
		groups, err = s.FeatureMeansByYear(f)
	case "genre":
		groupHeader = "Genre"
		groups, err = s.FeatureMeansByGenre(f, limit)
	case "artist":
		groupHeader = "Artist"
		groups, err = s.FeatureMeansByArtist(f, 3)
	default:
		return fmt.Errorf("invalid --by value %q: must be year, genre, or artist", by)
	}
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}

	analysis := Analysis{results: [][]string{{groupHeader, string(f), "Tracks"}}}
	for i, g := range groups {
		if by == "artist" && limit > 0 && i >= limit {
			break
		}
		analysis.results = append(analysis.results, []string{
			g.Group, fmtFloat(g.Mean), strconv.FormatInt(g.Count, 10),
		})
	}
	analysis.summary = fmt.Sprintf("Mean %s by %s over the imported dataset.", f, by)

	fmt.Println(analysis)
	return nil
}
