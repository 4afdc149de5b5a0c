package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
	"github.com/jmhart/spotify-trend-tools/internal/store"
)

// ComputeCorrelations recomputes the Pearson correlation of every audio
// feature with popularity from the raw-track store, strongest-positive
// first. This is the same calculation the popularity_correlations.csv
// export was produced with.
func ComputeCorrelations(s *store.Store) ([]dataset.CorrelationRow, error) {
	rows := make([]dataset.CorrelationRow, 0, len(profile.AudioFeatures))
	for _, f := range profile.AudioFeatures {
		popularity, values, err := s.FeatureColumns(f)
		if err != nil {
			return nil, err
		}
		if len(values) < 2 {
			return nil, fmt.Errorf("correlating %s: need at least 2 tracks, have %d", f, len(values))
		}

		r, err := stats.Pearson(values, popularity)
		if err != nil {
			return nil, fmt.Errorf("correlating %s with popularity: %w", f, err)
		}
		rows = append(rows, dataset.CorrelationRow{Feature: f, Coefficient: r})
	}

	SortCorrelations(rows)
	return rows, nil
}
