package profile

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Range is the (min, max) pair a feature is rescaled by.
type Range struct {
	Min float64
	Max float64
}

// Ranges maps each feature to its normalization range. Build one with
// DefaultRanges or RangesFromPopulation rather than by hand, so that the
// max >= min invariant is checked in one place.
type Ranges map[Feature]Range

// DefaultRanges returns the fixed native ranges of the nine audio features:
// the 0-1 confidence features as-is, Loudness in [-60, 0] dB, and Tempo in
// [60, 200] BPM.
func DefaultRanges() Ranges {
	ranges := make(Ranges, len(AudioFeatures))
	for _, f := range AudioFeatures {
		switch f {
		case Loudness:
			ranges[f] = Range{Min: -60, Max: 0}
		case Tempo:
			ranges[f] = Range{Min: 60, Max: 200}
		default:
			ranges[f] = Range{Min: 0, Max: 1}
		}
	}
	return ranges
}

// RangesFromPopulation computes the observed min/max of each requested
// feature across a reference population. A feature missing from any row is
// an error naming the feature.
func RangesFromPopulation(population []Vector, features []Feature) (Ranges, error) {
	if len(population) == 0 {
		return nil, fmt.Errorf("computing ranges: empty population")
	}

	ranges := make(Ranges, len(features))
	column := make([]float64, 0, len(population))
	for _, f := range features {
		column = column[:0]
		for i, row := range population {
			value, ok := row[f]
			if !ok {
				return nil, fmt.Errorf("computing ranges: row %d missing feature %q", i, f)
			}
			column = append(column, value)
		}
		ranges[f] = Range{Min: floats.Min(column), Max: floats.Max(column)}
	}
	return ranges, nil
}

// Normalize rescales a raw feature value to [0, 1] using the feature's range.
//
// When max > min the result is clamped min-max scaling, so candidate values
// outside the reference range map to exactly 0 or 1 rather than
// extrapolating. A degenerate range (max == min) maps every input to 0.5.
// A feature with no configured range passes the raw value through unchanged;
// that fallback is deliberate and lets callers plot features outside the
// configured set on their native scale.
func Normalize(f Feature, raw float64, ranges Ranges) float64 {
	r, ok := ranges[f]
	if !ok {
		return raw
	}
	if r.Max == r.Min {
		return 0.5
	}
	return clamp01((raw - r.Min) / (r.Max - r.Min))
}

// NormalizeVector normalizes every requested feature of a vector. A feature
// absent from the vector is rejected rather than silently defaulting to
// zero, since a zeroed dimension would drag similarity scores down for what
// is really an incomplete input.
func NormalizeVector(v Vector, features []Feature, ranges Ranges) (Vector, error) {
	out := make(Vector, len(features))
	for _, f := range features {
		raw, ok := v[f]
		if !ok {
			return nil, &MissingFeatureError{Feature: f}
		}
		out[f] = Normalize(f, raw, ranges)
	}
	return out, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
