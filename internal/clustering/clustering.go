// Package clustering groups tracks by audio-feature similarity with k-means,
// the same analysis the song_clusters.csv summary export was produced with.
// Vectors are min-max normalized before partitioning so Loudness and Tempo
// don't dominate the distance on raw scale alone.
package clustering

import (
	"fmt"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// Config holds clustering parameters.
type Config struct {
	NumClusters int
	Features    []profile.Feature
	Ranges      profile.Ranges
}

// DefaultConfig clusters on all nine audio features with the fixed native
// ranges, into four groups like the published summary.
func DefaultConfig() Config {
	return Config{
		NumClusters: 4,
		Features:    profile.AudioFeatures,
		Ranges:      profile.DefaultRanges(),
	}
}

// Cluster is one detected group of tracks.
type Cluster struct {
	// Centroid holds the cluster center in raw feature units, mapped back
	// from the normalized space for display.
	Centroid profile.Vector
	Size     int
}

// trackObservation adapts a normalized feature vector to the
// clusters.Observation interface.
type trackObservation struct {
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Partition runs k-means over the population and returns the clusters,
// largest first.
func Partition(population []profile.Vector, cfg Config) ([]Cluster, error) {
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}
	if len(cfg.Features) == 0 {
		cfg.Features = profile.AudioFeatures
	}
	if cfg.Ranges == nil {
		cfg.Ranges = profile.DefaultRanges()
	}

	if len(population) < cfg.NumClusters {
		return nil, fmt.Errorf("clustering: %d tracks is fewer than %d clusters", len(population), cfg.NumClusters)
	}

	var obs clusters.Observations
	for i, v := range population {
		normalized, err := profile.NormalizeVector(v, cfg.Features, cfg.Ranges)
		if err != nil {
			return nil, fmt.Errorf("clustering: row %d: %w", i, err)
		}
		coords := make(clusters.Coordinates, len(cfg.Features))
		for j, f := range cfg.Features {
			coords[j] = normalized[f]
		}
		obs = append(obs, trackObservation{coords: coords})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		return nil, fmt.Errorf("clustering: %w", err)
	}

	out := make([]Cluster, 0, len(result))
	for _, c := range result {
		centroid := make(profile.Vector, len(cfg.Features))
		for i, f := range cfg.Features {
			centroid[f] = denormalize(f, c.Center[i], cfg.Ranges)
		}
		out = append(out, Cluster{Centroid: centroid, Size: len(c.Observations)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out, nil
}

// denormalize maps a normalized centroid coordinate back to the feature's
// native scale. Degenerate ranges collapse to the single observed value.
func denormalize(f profile.Feature, normalized float64, ranges profile.Ranges) float64 {
	r, ok := ranges[f]
	if !ok {
		return normalized
	}
	if r.Max == r.Min {
		return r.Min
	}
	return r.Min + normalized*(r.Max-r.Min)
}
