// Package profile holds the computation core of the trend tools: feature
// normalization, reference-profile derivation, and similarity scoring.
// Everything here is a pure function over in-memory values; loading data and
// rendering results is the caller's job.
package profile

// Feature identifies one named numeric column of the track dataset.
type Feature string

const (
	Danceability     Feature = "Danceability"
	Energy           Feature = "Energy"
	Valence          Feature = "Valence"
	Acousticness     Feature = "Acousticness"
	Liveness         Feature = "Liveness"
	Speechiness      Feature = "Speechiness"
	Instrumentalness Feature = "Instrumentalness"
	Loudness         Feature = "Loudness"
	Tempo            Feature = "Tempo"

	// Popularity is not an audio feature, but threshold rules select
	// cohorts on it, so it shares the Feature namespace.
	Popularity Feature = "Popularity"
)

// AudioFeatures is the canonical ordering of the nine audio features. Vectors
// are maps, so anything that needs a stable ordering (distance computation,
// table columns, radar axes) iterates this slice.
var AudioFeatures = []Feature{
	Danceability,
	Energy,
	Valence,
	Acousticness,
	Liveness,
	Speechiness,
	Instrumentalness,
	Loudness,
	Tempo,
}

// ParseFeature returns the Feature with the given name.
func ParseFeature(name string) (Feature, bool) {
	for _, f := range AudioFeatures {
		if string(f) == name {
			return f, true
		}
	}
	if name == string(Popularity) {
		return Popularity, true
	}
	return "", false
}

// Description returns the glossary text for a feature, matching the Spotify
// audio feature documentation the dataset was exported with.
func (f Feature) Description() string {
	switch f {
	case Danceability:
		return "How suitable a track is for dancing (0.0 = least, 1.0 = most)."
	case Energy:
		return "Perceptual measure of intensity and activity (0.0 = calm, 1.0 = aggressive/fast)."
	case Valence:
		return "Musical positivity conveyed by a track (0.0 = sad/negative, 1.0 = happy/positive)."
	case Acousticness:
		return "A confidence measure of whether the track is acoustic (1.0 = high confidence)."
	case Liveness:
		return "Detects the presence of an audience in the recording (1.0 = high probability it's live)."
	case Speechiness:
		return "Detects the presence of spoken words (e.g. talk shows, rap, spoken word)."
	case Instrumentalness:
		return "Predicts whether a track contains no vocals."
	case Loudness:
		return "The overall loudness in decibels (dB), typically ranging from -60 dB (quiet) to 0 dB (loudest)."
	case Tempo:
		return "The estimated speed of the track in Beats Per Minute (BPM)."
	case Popularity:
		return "Spotify popularity score (0-100), driven by recent stream counts."
	}
	return ""
}

// Vector maps feature name to a raw (un-normalized) value.
type Vector map[Feature]float64

// Clone returns a copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for f, value := range v {
		out[f] = value
	}
	return out
}
