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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/fetch"
)

var fetchRaw bool
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Downloads the summary CSVs into the data directory",
	Long: `Downloads the seven summary tables from dataset_url into data_dir.
With --raw, also downloads the full raw track dataset for the import command.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("dataset_url") == "" {
			return fmt.Errorf("required flag(s) \"dataset_url\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := fetchDataset(viper.GetString("dataset_url"), viper.GetString("data_dir"), fetchRaw)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchRaw, "raw", false, "Also download the raw track dataset")
}

func fetchDataset(baseURL string, dataDir string, includeRaw bool) error {
	names := dataset.SummaryFiles()
	if includeRaw {
		names = append(names, dataset.RawFile)
	}

	client := fetch.New(baseURL)
	if err := client.DownloadAll(context.Background(), names, dataDir); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	fmt.Printf("Downloaded %d files to %s\n", len(names), dataDir)
	return nil
}
