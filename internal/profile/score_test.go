package profile

import (
	"math"
	"testing"
)

func unitRanges(features ...Feature) Ranges {
	ranges := make(Ranges, len(features))
	for _, f := range features {
		ranges[f] = Range{Min: 0, Max: 1}
	}
	return ranges
}

func TestSimilarityIdenticalVectors(t *testing.T) {
	features := []Feature{Danceability, Energy, Valence}
	ranges := unitRanges(features...)
	v := Vector{Danceability: 0.7, Energy: 0.8, Valence: 0.6}

	score, err := Similarity(v, v.Clone(), features, ranges)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if score.Value != 100 {
		t.Errorf("identical vectors score = %v, want 100", score.Value)
	}
	if score.DistanceToHit != 0 {
		t.Errorf("identical vectors distance = %v, want 0", score.DistanceToHit)
	}
}

func TestSimilarityOppositeCorners(t *testing.T) {
	features := []Feature{Danceability, Energy, Valence}
	ranges := unitRanges(features...)
	zero := Vector{Danceability: 0, Energy: 0, Valence: 0}
	one := Vector{Danceability: 1, Energy: 1, Valence: 1}

	score, err := Similarity(zero, one, features, ranges)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if math.Abs(score.Value) > 1e-9 {
		t.Errorf("opposite corners score = %v, want 0", score.Value)
	}
	if math.Abs(score.DistanceToHit-math.Sqrt(3)) > 1e-9 {
		t.Errorf("opposite corners distance = %v, want sqrt(3)", score.DistanceToHit)
	}
}

func TestSimilarityNormalizesBeforeDistance(t *testing.T) {
	// Tempo spans 140 BPM natively; without normalization it would dominate
	// the distance. After min-max scaling a 14 BPM gap weighs the same as a
	// 0.1 gap in Danceability.
	features := []Feature{Danceability, Tempo}
	ranges := DefaultRanges()
	candidate := Vector{Danceability: 0.5, Tempo: 120}
	reference := Vector{Danceability: 0.6, Tempo: 134}

	score, err := Similarity(candidate, reference, features, ranges)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}

	want := math.Sqrt(0.1*0.1 + 0.1*0.1)
	if math.Abs(score.DistanceToHit-want) > 1e-9 {
		t.Errorf("distance = %v, want %v", score.DistanceToHit, want)
	}
}

func TestRelativeSimilarityCorners(t *testing.T) {
	features := []Feature{Danceability, Energy}
	ranges := unitRanges(features...)
	hit := Vector{Danceability: 0.8, Energy: 0.9}
	flop := Vector{Danceability: 0.2, Energy: 0.1}

	score, err := RelativeSimilarity(hit.Clone(), hit, flop, features, ranges)
	if err != nil {
		t.Fatalf("RelativeSimilarity: %v", err)
	}
	if score.Value != 100 {
		t.Errorf("candidate on hit profile = %v, want 100", score.Value)
	}

	score, err = RelativeSimilarity(flop.Clone(), hit, flop, features, ranges)
	if err != nil {
		t.Fatalf("RelativeSimilarity: %v", err)
	}
	if score.Value != 0 {
		t.Errorf("candidate on flop profile = %v, want 0", score.Value)
	}

	mid := Vector{Danceability: 0.5, Energy: 0.5}
	score, err = RelativeSimilarity(mid, hit, flop, features, ranges)
	if err != nil {
		t.Fatalf("RelativeSimilarity: %v", err)
	}
	if math.Abs(score.Value-50) > 1e-9 {
		t.Errorf("equidistant candidate = %v, want 50", score.Value)
	}
}

func TestRelativeSimilarityDegenerateProfiles(t *testing.T) {
	features := []Feature{Danceability}
	ranges := unitRanges(features...)
	v := Vector{Danceability: 0.5}

	score, err := RelativeSimilarity(v, v.Clone(), v.Clone(), features, ranges)
	if err != nil {
		t.Fatalf("RelativeSimilarity: %v", err)
	}
	if score.Value != 50 {
		t.Errorf("all-identical profiles score = %v, want 50", score.Value)
	}
}

func TestSimilarityEndToEndScenario(t *testing.T) {
	// Population of three tracks, Danceability 0.2 / 0.5 / 0.9. The top
	// cohort (everything, via AtLeast 0) has mean 0.5333; a candidate at
	// 0.5 lands a single-feature distance of 0.0333 and a Mode A score of
	// about 96.7.
	population := []Vector{
		{Danceability: 0.2, Popularity: 50},
		{Danceability: 0.5, Popularity: 60},
		{Danceability: 0.9, Popularity: 70},
	}
	features := []Feature{Danceability}
	ranges := unitRanges(features...)

	reference, err := DeriveProfile(population, features, ThresholdRule{On: Popularity, Kind: AtLeast, Value: 0})
	if err != nil {
		t.Fatalf("DeriveProfile: %v", err)
	}
	if math.Abs(reference[Danceability]-0.53333333) > 1e-6 {
		t.Fatalf("reference mean = %v, want 0.5333", reference[Danceability])
	}

	score, err := Similarity(Vector{Danceability: 0.5}, reference, features, ranges)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if math.Abs(score.DistanceToHit-0.03333333) > 1e-6 {
		t.Errorf("distance = %v, want 0.0333", score.DistanceToHit)
	}
	if math.Abs(score.Value-96.6666667) > 1e-4 {
		t.Errorf("score = %v, want about 96.67", score.Value)
	}
}
