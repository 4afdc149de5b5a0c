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

	"github.com/jmhart/spotify-trend-tools/internal/analysis"
	"github.com/jmhart/spotify-trend-tools/internal/web"
)

var serveAddr string
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analysis tables as a JSON API",
	Long: `Serves every dashboard table under /api, plus POST /api/predict for
scoring candidate tracks. The predictor needs an imported raw dataset; without
one, the other endpoints still work and predict reports 503.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runServer(viper.GetString("data_dir"), viper.GetString("database"), serveAddr)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", web.DefaultAddr, "Listen address")
}

func runServer(dataDir string, dbPath string, addr string) error {
	data, err := openData(dataDir)
	if err != nil {
		return err
	}

	// The predictor is optional: its profiles come from the raw store,
	// which may not have been imported yet.
	predictor, err := buildPredictor(dbPath)
	if err != nil {
		fmt.Printf("Predictor disabled: %v\n", err)
	}

	server, err := web.NewServer(web.Config{
		Addr:      addr,
		Data:      data,
		Predictor: predictor,
	})
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return server.Run(context.Background())
}

func buildPredictor(dbPath string) (*analysis.Predictor, error) {
	s, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	population, err := s.Vectors()
	if err != nil {
		return nil, fmt.Errorf("buildPredictor: %w", err)
	}

	return analysis.NewPredictor(population)
}
