package profile

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// RuleKind selects how a ThresholdRule interprets its value.
type RuleKind int

const (
	// PercentileAbove keeps rows whose value on the rule's feature is at
	// or above the population's q-th percentile (q in [0, 1]).
	PercentileAbove RuleKind = iota
	// PercentileBelow keeps rows at or below the q-th percentile.
	PercentileBelow
	// AtLeast keeps rows at or above an absolute cutoff.
	AtLeast
)

// ThresholdRule selects a cohort out of a population by thresholding a
// single feature, typically Popularity.
type ThresholdRule struct {
	On    Feature
	Kind  RuleKind
	Value float64
}

// HitRule is the standard "top 10% by popularity" cohort.
func HitRule() ThresholdRule {
	return ThresholdRule{On: Popularity, Kind: PercentileAbove, Value: 0.90}
}

// FlopRule is the standard "bottom 10% by popularity" cohort.
func FlopRule() ThresholdRule {
	return ThresholdRule{On: Popularity, Kind: PercentileBelow, Value: 0.10}
}

// Percentile returns the q-th quantile (q in [0, 1]) of values, linearly
// interpolating between the order statistics around index (len-1)*q. This
// is the same convention the dataset's summary exports were produced with,
// so cohort cutoffs reproduce exactly.
func Percentile(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("percentile of empty slice")
	}
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("percentile %v out of range [0, 1]", q)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := float64(len(sorted)-1) * q
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower], nil
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower]), nil
}

// SelectCohort returns the rows of the population the rule keeps. The
// returned slice aliases the population's vectors; cohorts are read-only.
func SelectCohort(population []Vector, rule ThresholdRule) ([]Vector, error) {
	if len(population) == 0 {
		return nil, fmt.Errorf("selecting cohort on %q: %w", rule.On, ErrEmptyCohort)
	}

	column := make([]float64, 0, len(population))
	for i, row := range population {
		value, ok := row[rule.On]
		if !ok {
			return nil, fmt.Errorf("selecting cohort: row %d missing feature %q", i, rule.On)
		}
		column = append(column, value)
	}

	cutoff := rule.Value
	keepAbove := true
	switch rule.Kind {
	case PercentileAbove, PercentileBelow:
		var err error
		cutoff, err = Percentile(column, rule.Value)
		if err != nil {
			return nil, fmt.Errorf("selecting cohort on %q: %w", rule.On, err)
		}
		keepAbove = rule.Kind == PercentileAbove
	case AtLeast:
	default:
		return nil, fmt.Errorf("selecting cohort: unknown rule kind %d", rule.Kind)
	}

	var cohort []Vector
	for i, row := range population {
		if keepAbove && column[i] >= cutoff {
			cohort = append(cohort, row)
		} else if !keepAbove && column[i] <= cutoff {
			cohort = append(cohort, row)
		}
	}
	if len(cohort) == 0 {
		return nil, fmt.Errorf("selecting cohort on %q: %w", rule.On, ErrEmptyCohort)
	}
	return cohort, nil
}

// DeriveProfile filters the population with the rule and returns the
// column-wise mean of every requested feature over the surviving rows.
// An empty cohort is ErrEmptyCohort, never a zero-valued profile.
func DeriveProfile(population []Vector, features []Feature, rule ThresholdRule) (Vector, error) {
	cohort, err := SelectCohort(population, rule)
	if err != nil {
		return nil, err
	}
	return MeanProfile(cohort, features)
}

// MeanProfile is the column-wise mean of a cohort's features.
func MeanProfile(cohort []Vector, features []Feature) (Vector, error) {
	if len(cohort) == 0 {
		return nil, ErrEmptyCohort
	}

	out := make(Vector, len(features))
	column := make([]float64, 0, len(cohort))
	for _, f := range features {
		column = column[:0]
		for i, row := range cohort {
			value, ok := row[f]
			if !ok {
				return nil, fmt.Errorf("mean profile: row %d missing feature %q", i, f)
			}
			column = append(column, value)
		}
		mean, err := stats.Mean(column)
		if err != nil {
			return nil, fmt.Errorf("mean profile for %q: %w", f, err)
		}
		out[f] = mean
	}
	return out, nil
}
