// Package analysis derives the dashboard's headline numbers from the loaded
// tables and the raw-track store: the overview KPIs, popularity-cohort
// comparisons, recomputed feature/popularity correlations, and the track
// predictor. Rendering is left to the callers in cmd/ and internal/web.
package analysis

import (
	"fmt"
	"sort"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// Overview holds the landing-page KPIs.
type Overview struct {
	AvgDanceability  float64 `json:"avg_danceability"`
	MostPopularGenre string  `json:"most_popular_genre"`
	FirstYear        int     `json:"first_year"`
	LastYear         int     `json:"last_year"`
	LoudestYear      int     `json:"loudest_year"`
	LoudestYearDb    float64 `json:"loudest_year_db"`
}

// ComputeOverview derives the KPIs from the genre and temporal summaries.
func ComputeOverview(genres []dataset.GenreRow, temporal []dataset.TemporalRow) (Overview, error) {
	if len(genres) == 0 {
		return Overview{}, fmt.Errorf("computing overview: no genre rows")
	}
	if len(temporal) == 0 {
		return Overview{}, fmt.Errorf("computing overview: no temporal rows")
	}

	var overview Overview

	var danceSum float64
	top := genres[0]
	for _, g := range genres {
		danceSum += g.Features[profile.Danceability]
		if g.Popularity > top.Popularity {
			top = g
		}
	}
	overview.AvgDanceability = danceSum / float64(len(genres))
	overview.MostPopularGenre = top.Genre

	overview.FirstYear = temporal[0].Year
	overview.LastYear = temporal[0].Year
	loudest := temporal[0]
	for _, row := range temporal {
		if row.Year < overview.FirstYear {
			overview.FirstYear = row.Year
		}
		if row.Year > overview.LastYear {
			overview.LastYear = row.Year
		}
		if row.Features[profile.Loudness] > loudest.Features[profile.Loudness] {
			loudest = row
		}
	}
	overview.LoudestYear = loudest.Year
	overview.LoudestYearDb = loudest.Features[profile.Loudness]

	return overview, nil
}

// CohortComparison contrasts the mean profiles of the most and least
// popular cohorts of a population.
type CohortComparison struct {
	HitSize  int            `json:"hit_size"`
	FlopSize int            `json:"flop_size"`
	Hit      profile.Vector `json:"hit"`
	Flop     profile.Vector `json:"flop"`
}

// ComparePopularityCohorts splits a population into top-10% and bottom-10%
// popularity cohorts and returns their mean profiles.
func ComparePopularityCohorts(population []profile.Vector) (CohortComparison, error) {
	hitCohort, err := profile.SelectCohort(population, profile.HitRule())
	if err != nil {
		return CohortComparison{}, fmt.Errorf("hit cohort: %w", err)
	}
	flopCohort, err := profile.SelectCohort(population, profile.FlopRule())
	if err != nil {
		return CohortComparison{}, fmt.Errorf("flop cohort: %w", err)
	}

	hit, err := profile.MeanProfile(hitCohort, profile.AudioFeatures)
	if err != nil {
		return CohortComparison{}, fmt.Errorf("hit profile: %w", err)
	}
	flop, err := profile.MeanProfile(flopCohort, profile.AudioFeatures)
	if err != nil {
		return CohortComparison{}, fmt.Errorf("flop profile: %w", err)
	}

	return CohortComparison{
		HitSize:  len(hitCohort),
		FlopSize: len(flopCohort),
		Hit:      hit,
		Flop:     flop,
	}, nil
}

// SortCorrelations orders correlation rows strongest-positive first, the
// order the popularity-drivers page presents them in.
func SortCorrelations(rows []dataset.CorrelationRow) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Coefficient > rows[j].Coefficient
	})
}
