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
)

// defaultReportAnalyses is the order the dashboard presents its pages in.
var defaultReportAnalyses = []string{
	"overview", "temporal", "decades", "genres", "artists",
	"correlations", "stat-tests", "clusters",
}

var reportCmd = &cobra.Command{
	Use:   "report [analysis_name...]",
	Short: "Renders several analyses into one text report",
	Long: `Prints the named analyses back to back. <analysis_name> is one or
more of: ` + strings.Join(defaultReportAnalyses, ", ") + `.
With no arguments, renders all of them.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		names := args
		if len(names) == 0 {
			names = defaultReportAnalyses
		}
		out, err := generateReport(viper.GetString("data_dir"), viper.GetString("database"), names)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func generateReport(dataDir string, dbPath string, names []string) (string, error) {
	out := new(strings.Builder)
	for _, name := range names {
		analyser, err := getAnalyserFromName(name)
		if err != nil {
			return "", err
		}

		analysis, err := analyser.GetResults(dataDir, dbPath)
		if err != nil {
			return "", fmt.Errorf("getting results for %s: %w", analyser.GetName(), err)
		}

		fmt.Fprintf(out, "== %s ==\n%s\n", analyser.GetName(), analysis)
	}
	return out.String(), nil
}
