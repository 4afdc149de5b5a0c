package analysis

import (
	"math"
	"testing"

	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

func TestComputeOverview(t *testing.T) {
	genres := []dataset.GenreRow{
		{Genre: "Pop", Popularity: 70, Features: profile.Vector{profile.Danceability: 0.7, profile.Loudness: -6}},
		{Genre: "Jazz", Popularity: 40, Features: profile.Vector{profile.Danceability: 0.5, profile.Loudness: -12}},
	}
	temporal := []dataset.TemporalRow{
		{Year: 1950, Features: profile.Vector{profile.Loudness: -14}},
		{Year: 2020, Features: profile.Vector{profile.Loudness: -6.5}},
		{Year: 1987, Features: profile.Vector{profile.Loudness: -9}},
	}

	overview, err := ComputeOverview(genres, temporal)
	if err != nil {
		t.Fatalf("ComputeOverview: %v", err)
	}

	if overview.MostPopularGenre != "Pop" {
		t.Errorf("MostPopularGenre = %q, want Pop", overview.MostPopularGenre)
	}
	if math.Abs(overview.AvgDanceability-0.6) > 1e-9 {
		t.Errorf("AvgDanceability = %v, want 0.6", overview.AvgDanceability)
	}
	if overview.FirstYear != 1950 || overview.LastYear != 2020 {
		t.Errorf("year span = %d-%d, want 1950-2020", overview.FirstYear, overview.LastYear)
	}
	if overview.LoudestYear != 2020 || overview.LoudestYearDb != -6.5 {
		t.Errorf("loudest = %d (%v dB), want 2020 (-6.5 dB)", overview.LoudestYear, overview.LoudestYearDb)
	}
}

func TestComputeOverviewEmptyInput(t *testing.T) {
	if _, err := ComputeOverview(nil, nil); err == nil {
		t.Fatal("ComputeOverview should error on empty input")
	}
}

func syntheticPopulation() []profile.Vector {
	population := make([]profile.Vector, 0, 100)
	for i := 1; i <= 100; i++ {
		v := profile.Vector{profile.Popularity: float64(i)}
		for _, f := range profile.AudioFeatures {
			v[f] = 0.5
		}
		// Popular tracks skew danceable so the cohorts differ.
		if i > 90 {
			v[profile.Danceability] = 0.9
		} else if i <= 10 {
			v[profile.Danceability] = 0.1
		}
		v[profile.Loudness] = -8
		v[profile.Tempo] = 120
		population = append(population, v)
	}
	return population
}

func TestComparePopularityCohorts(t *testing.T) {
	comparison, err := ComparePopularityCohorts(syntheticPopulation())
	if err != nil {
		t.Fatalf("ComparePopularityCohorts: %v", err)
	}

	if comparison.HitSize != 10 || comparison.FlopSize != 10 {
		t.Errorf("cohort sizes = %d/%d, want 10/10", comparison.HitSize, comparison.FlopSize)
	}
	if math.Abs(comparison.Hit[profile.Danceability]-0.9) > 1e-9 {
		t.Errorf("hit Danceability = %v, want 0.9", comparison.Hit[profile.Danceability])
	}
	if math.Abs(comparison.Flop[profile.Danceability]-0.1) > 1e-9 {
		t.Errorf("flop Danceability = %v, want 0.1", comparison.Flop[profile.Danceability])
	}
}

func TestPredictorScores(t *testing.T) {
	predictor, err := NewPredictor(syntheticPopulation())
	if err != nil {
		t.Fatalf("NewPredictor: %v", err)
	}

	// A candidate sitting exactly on the hit profile.
	score, err := predictor.Score(predictor.Hit.Clone())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score.Value != 100 {
		t.Errorf("score on hit profile = %v, want 100", score.Value)
	}

	relative, err := predictor.RelativeScore(predictor.Hit.Clone())
	if err != nil {
		t.Fatalf("RelativeScore: %v", err)
	}
	if relative.Value != 100 {
		t.Errorf("relative score on hit profile = %v, want 100", relative.Value)
	}

	relative, err = predictor.RelativeScore(predictor.Flop.Clone())
	if err != nil {
		t.Fatalf("RelativeScore: %v", err)
	}
	if relative.Value != 0 {
		t.Errorf("relative score on flop profile = %v, want 0", relative.Value)
	}
}

func TestPredictorRejectsIncompleteCandidate(t *testing.T) {
	predictor, err := NewPredictor(syntheticPopulation())
	if err != nil {
		t.Fatalf("NewPredictor: %v", err)
	}

	if _, err := predictor.Score(profile.Vector{profile.Danceability: 0.5}); err == nil {
		t.Fatal("Score should reject a candidate missing features")
	}
}
