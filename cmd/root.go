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
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/store"
)

var cfgFile string
var dataDir string
var databasePath string
var datasetURL string
var sendgridApiKey string
var fromAddress string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-trend-tools",
	Short: "Performs analysis on Spotify chart-track data",
	Long: `Explores 70+ years of popular music through its audio features:
yearly and decadal trends, genre profiles, popularity correlations, song
clusters, and a hit predictor that scores a candidate track against
reference profiles derived from the dataset.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-trend-tools.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&dataDir, "data_dir", "", "./data", "Directory holding the summary CSV exports")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data_dir"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./spotify.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&datasetURL, "dataset_url", "", "Base URL to download dataset files from")
	viper.BindPFlag("dataset_url", rootCmd.PersistentFlags().Lookup("dataset_url"))

	rootCmd.PersistentFlags().StringVar(
		&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key, for the email command")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))

	rootCmd.PersistentFlags().StringVar(&fromAddress, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-trend-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-trend-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func openData(dataDir string) (*dataset.Dir, error) {
	data, err := dataset.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("openData: %w", err)
	}
	return data, nil
}

// openStore opens the raw-track database and refuses to proceed when nothing
// has been imported yet.
func openStore(dbPath string) (*store.Store, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("openStore: %w", err)
	}

	hasData, err := s.HasData()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("openStore: %w", err)
	}
	if !hasData {
		s.Close()
		return nil, fmt.Errorf("Database doesn't exist - run import first.")
	}
	return s, nil
}
