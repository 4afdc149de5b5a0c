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

	"github.com/jmhart/spotify-trend-tools/internal/analysis"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// predictDefaults are the starting values of the original predictor's
// sliders: a bright, loud, danceable pop track.
var predictDefaults = profile.Vector{
	profile.Danceability:     0.7,
	profile.Energy:           0.8,
	profile.Valence:          0.6,
	profile.Acousticness:     0.1,
	profile.Liveness:         0.2,
	profile.Speechiness:      0.1,
	profile.Instrumentalness: 0.0,
	profile.Loudness:         -5.0,
	profile.Tempo:            120,
}

var predictValues = map[profile.Feature]*float64{}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Scores a hypothetical track against historical hits",
	Long: `Derives the average profile of the top-10% and bottom-10% popularity
cohorts from the imported raw dataset, then scores the candidate track given
by the feature flags against both: a similarity score to the hit profile and
a relative hit-vs-flop score. Requires a prior import.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printPrediction(viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	for _, f := range profile.AudioFeatures {
		value := new(float64)
		predictValues[f] = value
		predictCmd.Flags().Float64Var(value, strings.ToLower(string(f)),
			predictDefaults[f], f.Description())
	}
}

func printPrediction(dbPath string) error {
	candidate := profile.Vector{}
	for f, value := range predictValues {
		candidate[f] = *value
	}

	s, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	population, err := s.Vectors()
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	predictor, err := analysis.NewPredictor(population)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	hitScore, err := predictor.Score(candidate)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	relative, err := predictor.RelativeScore(candidate)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	table := Analysis{results: [][]string{{"Feature", "Candidate", "Hit profile", "Flop profile"}}}
	for _, f := range predictor.Features {
		table.results = append(table.results, []string{
			string(f),
			fmtFloat(relative.Candidate[f]),
			fmtFloat(relative.Hit[f]),
			fmtFloat(relative.Flop[f]),
		})
	}
	table.summary = "Values are normalized to 0-1 for comparison."
	fmt.Println(table)

	fmt.Println(rawComparison(candidate, predictor.Hit, predictor.Flop, predictor.Features))

	fmt.Printf("Similarity to hit profile: %.1f / 100\n", hitScore.Value)
	fmt.Printf("Hit-vs-flop score:         %.1f / 100\n", relative.Value)
	fmt.Println(verdict(relative.Value))
	return nil
}

// rawComparison tabulates the candidate against the reference profiles in
// native units (dB, BPM), the values the flags were given in.
func rawComparison(candidate, hit, flop profile.Vector, features []profile.Feature) Analysis {
	table := Analysis{results: [][]string{{"Feature", "Candidate", "Hit profile", "Flop profile"}}}
	for _, f := range features {
		table.results = append(table.results, []string{
			string(f),
			fmtFloat(candidate[f]),
			fmtFloat(hit[f]),
			fmtFloat(flop[f]),
		})
	}
	table.summary = "Values are in native units."
	return table
}

func verdict(score float64) string {
	switch {
	case score >= 75:
		return "Verdict: sounds like a hit."
	case score >= 50:
		return "Verdict: leans toward the hits."
	case score >= 25:
		return "Verdict: leans toward the flops."
	default:
		return "Verdict: sounds like a flop."
	}
}
