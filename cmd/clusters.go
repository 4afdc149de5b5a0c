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

	"github.com/jmhart/spotify-trend-tools/internal/clustering"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

var clustersRecompute bool
var clustersK int
var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Shows the dataset's song clusters",
	Long: `Prints the centroid profile and size of each song cluster. Reads the
published summary by default; --recompute runs k-means over the imported raw
dataset's normalized feature vectors.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var out Analysis
		var err error
		if clustersRecompute {
			out, err = recomputeClusters(viper.GetString("database"), clustersK)
		} else {
			out, err = ClustersAnalyser{}.GetResults(viper.GetString("data_dir"), viper.GetString("database"))
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(clustersCmd)

	clustersCmd.Flags().BoolVar(&clustersRecompute, "recompute",
		false, "Run k-means over the raw dataset instead of reading the summary")
	clustersCmd.Flags().IntVarP(&clustersK, "clusters", "k",
		clustering.DefaultConfig().NumClusters, "number of clusters for --recompute")
}

type ClustersAnalyser struct{}

func (c ClustersAnalyser) GetName() string {
	return "Song clusters"
}

func (c ClustersAnalyser) GetResults(dataDir string, dbPath string) (Analysis, error) {
	data, err := openData(dataDir)
	if err != nil {
		return Analysis{}, fmt.Errorf("clusters: %w", err)
	}
	rows, err := data.Clusters()
	if err != nil {
		return Analysis{}, fmt.Errorf("clusters: %w", err)
	}

	header := []string{"Cluster", "Songs"}
	for _, f := range profile.AudioFeatures {
		header = append(header, string(f))
	}

	results := [][]string{header}
	total := 0
	for _, row := range rows {
		line := []string{strconv.Itoa(row.Cluster), strconv.Itoa(row.Count)}
		for _, f := range profile.AudioFeatures {
			line = append(line, fmtFloat(row.Features[f]))
		}
		results = append(results, line)
		total += row.Count
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Found %d clusters covering %d songs.", len(rows), total),
	}, nil
}

func recomputeClusters(dbPath string, k int) (Analysis, error) {
	s, err := openStore(dbPath)
	if err != nil {
		return Analysis{}, err
	}
	defer s.Close()

	population, err := s.Vectors()
	if err != nil {
		return Analysis{}, fmt.Errorf("recomputeClusters: %w", err)
	}

	cfg := clustering.DefaultConfig()
	if k > 0 {
		cfg.NumClusters = k
	}

	fmt.Printf("Clustering %d tracks into %d groups...\n", len(population), cfg.NumClusters)
	found, err := clustering.Partition(population, cfg)
	if err != nil {
		return Analysis{}, fmt.Errorf("recomputeClusters: %w", err)
	}

	header := []string{"Cluster", "Songs"}
	for _, f := range profile.AudioFeatures {
		header = append(header, string(f))
	}

	results := [][]string{header}
	for i, cluster := range found {
		line := []string{strconv.Itoa(i), strconv.Itoa(cluster.Size)}
		for _, f := range profile.AudioFeatures {
			line = append(line, fmtFloat(cluster.Centroid[f]))
		}
		results = append(results, line)
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("Recomputed %d clusters from %d tracks. Centroids are in native units.",
			len(found), len(population)),
	}, nil
}
