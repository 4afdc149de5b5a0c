package analysis

import (
	"fmt"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// Predictor scores candidate tracks against the historical hit and flop
// profiles. The profiles and ranges are derived once from a dataset
// snapshot; after construction a Predictor is read-only and safe to share.
type Predictor struct {
	Features []profile.Feature
	Ranges   profile.Ranges
	Hit      profile.Vector
	Flop     profile.Vector
}

// NewPredictor derives the top-10% and bottom-10% popularity profiles from
// the population and fixes the native normalization ranges.
func NewPredictor(population []profile.Vector) (*Predictor, error) {
	hit, err := profile.DeriveProfile(population, profile.AudioFeatures, profile.HitRule())
	if err != nil {
		return nil, fmt.Errorf("deriving hit profile: %w", err)
	}
	flop, err := profile.DeriveProfile(population, profile.AudioFeatures, profile.FlopRule())
	if err != nil {
		return nil, fmt.Errorf("deriving flop profile: %w", err)
	}

	return &Predictor{
		Features: profile.AudioFeatures,
		Ranges:   profile.DefaultRanges(),
		Hit:      hit,
		Flop:     flop,
	}, nil
}

// Score is the candidate's Mode A similarity to the hit profile.
func (p *Predictor) Score(candidate profile.Vector) (profile.Score, error) {
	return profile.Similarity(candidate, p.Hit, p.Features, p.Ranges)
}

// RelativeScore is the candidate's Mode B proximity to the hit profile
// relative to the flop profile.
func (p *Predictor) RelativeScore(candidate profile.Vector) (profile.Score, error) {
	return profile.RelativeSimilarity(candidate, p.Hit, p.Flop, p.Features, p.Ranges)
}
