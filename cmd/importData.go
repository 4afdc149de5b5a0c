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
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Imports the raw track dataset into the database",
	Long: `Loads the full track-level CSV into the SQLite database, replacing
any previous import. With no argument, reads the raw dataset from data_dir.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := filepath.Join(viper.GetString("data_dir"), dataset.RawFile)
		if len(args) == 1 {
			path = args[0]
		}
		err := importDataset(viper.GetString("database"), path)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importDataset(dbPath string, csvPath string) error {
	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer s.Close()

	result, err := s.ImportCSV(csvPath)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("Imported %d tracks (%d rows skipped), snapshot %s\n",
		result.Imported, result.Skipped, result.SnapshotID)
	return nil
}
