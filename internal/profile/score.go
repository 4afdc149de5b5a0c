package profile

import "math"

// Score is a 0-100 similarity summary plus the distances it was computed
// from and the normalized vectors, so callers can render radar values and
// comparison tables without redoing the normalization.
type Score struct {
	Value          float64
	DistanceToHit  float64
	DistanceToFlop float64

	Candidate Vector
	Hit       Vector
	Flop      Vector
}

// Similarity scores a candidate against a single reference profile
// ("Mode A"). Both vectors are normalized through the same ranges, then
//
//	score = 100 * (1 - d / sqrt(n))
//
// where d is the Euclidean distance over the n requested features and
// sqrt(n) is the diagonal of the unit hypercube, the largest separation two
// normalized vectors can have. Identical profiles score 100, opposite
// corners score 0.
func Similarity(candidate, hit Vector, features []Feature, ranges Ranges) (Score, error) {
	candN, err := NormalizeVector(candidate, features, ranges)
	if err != nil {
		return Score{}, err
	}
	hitN, err := NormalizeVector(hit, features, ranges)
	if err != nil {
		return Score{}, err
	}

	d := euclidean(candN, hitN, features)
	maxDistance := math.Sqrt(float64(len(features)))
	value := 100.0
	if maxDistance > 0 {
		value = clamp(100*(1-d/maxDistance), 0, 100)
	}

	return Score{
		Value:         value,
		DistanceToHit: d,
		Candidate:     candN,
		Hit:           hitN,
	}, nil
}

// RelativeSimilarity scores a candidate against a hit and a flop profile
// ("Mode B"): 100 * dFlop / (dHit + dFlop), i.e. the candidate's relative
// proximity to the hit profile. Sitting on the hit profile scores 100, on
// the flop profile 0, equidistant 50. If all three vectors normalize to the
// same point both distances are zero and the score is defined as the
// neutral 50.
func RelativeSimilarity(candidate, hit, flop Vector, features []Feature, ranges Ranges) (Score, error) {
	candN, err := NormalizeVector(candidate, features, ranges)
	if err != nil {
		return Score{}, err
	}
	hitN, err := NormalizeVector(hit, features, ranges)
	if err != nil {
		return Score{}, err
	}
	flopN, err := NormalizeVector(flop, features, ranges)
	if err != nil {
		return Score{}, err
	}

	dHit := euclidean(candN, hitN, features)
	dFlop := euclidean(candN, flopN, features)

	value := 50.0
	if dHit+dFlop > 0 {
		value = clamp(100*dFlop/(dHit+dFlop), 0, 100)
	}

	return Score{
		Value:          value,
		DistanceToHit:  dHit,
		DistanceToFlop: dFlop,
		Candidate:      candN,
		Hit:            hitN,
		Flop:           flopN,
	}, nil
}

// euclidean assumes both vectors carry every requested feature; the
// normalization step above guarantees that.
func euclidean(a, b Vector, features []Feature) float64 {
	var sum float64
	for _, f := range features {
		diff := a[f] - b[f]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
