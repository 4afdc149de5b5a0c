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
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

type Analysis struct {
	results [][]string
	summary string
}

// Analyser is one named dashboard panel. dataDir holds the summary CSVs and
// dbPath the raw-track database; each analyser reads only what it renders.
type Analyser interface {
	GetResults(dataDir string, dbPath string) (Analysis, error)

	GetName() string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

func getAnalyserFromName(name string) (Analyser, error) {
	analyserMap := map[string]Analyser{
		"overview":     OverviewAnalyser{},
		"temporal":     TemporalAnalyser{},
		"decades":      DecadesAnalyser{},
		"genres":       GenresAnalyser{},
		"artists":      ArtistsAnalyser{},
		"correlations": CorrelationsAnalyser{},
		"stat-tests":   StatTestsAnalyser{},
		"clusters":     ClustersAnalyser{},
	}

	analyser, ok := analyserMap[name]
	if !ok {
		return nil, fmt.Errorf("Invalid analysis_name: %s", name)
	}

	return analyser, nil
}

// fmtFloat renders a feature value the way the dashboard tables do.
func fmtFloat(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
