package profile

import (
	"errors"
	"math"
	"testing"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	// Integers 1..100. The 90th percentile interpolates between the order
	// statistics at indices 89 and 90: 90 + 0.1*(91-90) = 90.1.
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}

	got, err := Percentile(values, 0.90)
	if err != nil {
		t.Fatalf("Percentile: %v", err)
	}
	if math.Abs(got-90.1) > 1e-9 {
		t.Errorf("Percentile(1..100, 0.90) = %v, want 90.1", got)
	}

	got, err = Percentile(values, 0.10)
	if err != nil {
		t.Fatalf("Percentile: %v", err)
	}
	if math.Abs(got-10.9) > 1e-9 {
		t.Errorf("Percentile(1..100, 0.10) = %v, want 10.9", got)
	}
}

func TestPercentileEdges(t *testing.T) {
	values := []float64{3, 1, 2}

	if got, _ := Percentile(values, 0); got != 1 {
		t.Errorf("Percentile(0) = %v, want 1", got)
	}
	if got, _ := Percentile(values, 1); got != 3 {
		t.Errorf("Percentile(1) = %v, want 3", got)
	}
	if _, err := Percentile(nil, 0.5); err == nil {
		t.Error("Percentile of empty slice should error")
	}
	if _, err := Percentile(values, 1.5); err == nil {
		t.Error("Percentile out of [0, 1] should error")
	}
}

func TestSelectCohortPercentile(t *testing.T) {
	population := make([]Vector, 100)
	for i := range population {
		population[i] = Vector{Popularity: float64(i + 1)}
	}

	cohort, err := SelectCohort(population, HitRule())
	if err != nil {
		t.Fatalf("SelectCohort: %v", err)
	}
	// Cutoff 90.1, so popularity 91..100 survives.
	if got, want := len(cohort), 10; got != want {
		t.Errorf("hit cohort size = %d, want %d", got, want)
	}

	cohort, err = SelectCohort(population, FlopRule())
	if err != nil {
		t.Fatalf("SelectCohort: %v", err)
	}
	// Cutoff 10.9, so popularity 1..10 survives.
	if got, want := len(cohort), 10; got != want {
		t.Errorf("flop cohort size = %d, want %d", got, want)
	}
}

func TestSelectCohortAbsoluteThreshold(t *testing.T) {
	population := []Vector{
		{Popularity: 85},
		{Popularity: 79},
		{Popularity: 80},
	}

	rule := ThresholdRule{On: Popularity, Kind: AtLeast, Value: 80}
	cohort, err := SelectCohort(population, rule)
	if err != nil {
		t.Fatalf("SelectCohort: %v", err)
	}
	if got, want := len(cohort), 2; got != want {
		t.Errorf("cohort size = %d, want %d", got, want)
	}
}

func TestDeriveProfileMean(t *testing.T) {
	population := []Vector{
		{Popularity: 90, Danceability: 0.8, Energy: 0.6},
		{Popularity: 95, Danceability: 0.6, Energy: 0.8},
		{Popularity: 5, Danceability: 0.1, Energy: 0.1},
	}

	rule := ThresholdRule{On: Popularity, Kind: AtLeast, Value: 80}
	got, err := DeriveProfile(population, []Feature{Danceability, Energy}, rule)
	if err != nil {
		t.Fatalf("DeriveProfile: %v", err)
	}

	if math.Abs(got[Danceability]-0.7) > 1e-9 {
		t.Errorf("mean Danceability = %v, want 0.7", got[Danceability])
	}
	if math.Abs(got[Energy]-0.7) > 1e-9 {
		t.Errorf("mean Energy = %v, want 0.7", got[Energy])
	}
}

func TestDeriveProfileEmptyCohort(t *testing.T) {
	population := []Vector{
		{Popularity: 10, Danceability: 0.5},
		{Popularity: 20, Danceability: 0.6},
	}

	rule := ThresholdRule{On: Popularity, Kind: AtLeast, Value: 99}
	_, err := DeriveProfile(population, []Feature{Danceability}, rule)
	if !errors.Is(err, ErrEmptyCohort) {
		t.Fatalf("DeriveProfile error = %v, want ErrEmptyCohort", err)
	}
}
