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

	"github.com/spf13/cobra"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Explains the audio features and the dataset",
	Long:  `Prints the glossary of Spotify audio features and the dataset files the tools read.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printDocs()
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func printDocs() {
	glossary := Analysis{results: [][]string{{"Feature", "Range", "Description"}}}
	ranges := profile.DefaultRanges()
	for _, f := range profile.AudioFeatures {
		r := ranges[f]
		glossary.results = append(glossary.results, []string{
			string(f),
			fmt.Sprintf("%g to %g", r.Min, r.Max),
			f.Description(),
		})
	}
	glossary.results = append(glossary.results, []string{
		string(profile.Popularity), "0 to 100", profile.Popularity.Description(),
	})
	glossary.summary = "Ranges are the native units used for 0-1 normalization."
	fmt.Println(glossary)

	fmt.Println("Summary tables read from data_dir:")
	for _, name := range dataset.SummaryFiles() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("  %s (raw dataset, for the import command)\n", dataset.RawFile)
}
