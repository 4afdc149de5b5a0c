package dataset

import (
	"fmt"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// TemporalRow is one year of feature means.
type TemporalRow struct {
	Year     int
	Features profile.Vector
}

// GenreRow is the mean feature profile of one genre.
type GenreRow struct {
	Genre      string
	Popularity float64
	Features   profile.Vector
}

// DecadeRow is the mean feature profile of hit songs in one decade.
type DecadeRow struct {
	Decade   int
	Label    string
	Features profile.Vector
}

// ArtistRow is the mean feature profile of one top-charting artist.
type ArtistRow struct {
	Name      string
	SongCount int
	Features  profile.Vector
}

// CorrelationRow is the Pearson correlation of one feature with popularity.
type CorrelationRow struct {
	Feature     profile.Feature
	Coefficient float64
}

// ClusterRow is the centroid profile of one k-means song cluster.
type ClusterRow struct {
	Cluster  int
	Count    int
	Features profile.Vector
}

// StatTestRow is one pre-computed hypothesis test.
type StatTestRow struct {
	Hypothesis string
	GroupA     string
	GroupB     string
	MeanDiff   float64
	TStatistic float64
	PValue     float64
	Conclusion string
}

// Temporal loads temporal_trends.csv.
func (d *Dir) Temporal() ([]TemporalRow, error) {
	t, err := d.read(TemporalFile, append([]string{"Year"}, featureColumns()...)...)
	if err != nil {
		return nil, err
	}

	rows := make([]TemporalRow, 0, len(t.rows))
	for i := range t.rows {
		year, err := t.int(i, "Year")
		if err != nil {
			return nil, err
		}
		features, err := t.features(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, TemporalRow{Year: year, Features: features})
	}
	return rows, nil
}

// Genres loads genre_profiles.csv.
func (d *Dir) Genres() ([]GenreRow, error) {
	t, err := d.read(GenresFile, append([]string{"genre", "popularity"}, featureColumns()...)...)
	if err != nil {
		return nil, err
	}

	rows := make([]GenreRow, 0, len(t.rows))
	for i := range t.rows {
		popularity, err := t.float(i, "popularity")
		if err != nil {
			return nil, err
		}
		features, err := t.features(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, GenreRow{
			Genre:      t.str(i, "genre"),
			Popularity: popularity,
			Features:   features,
		})
	}
	return rows, nil
}

// Decades loads decadal_trends.csv.
func (d *Dir) Decades() ([]DecadeRow, error) {
	t, err := d.read(DecadesFile, append([]string{"Decade"}, featureColumns()...)...)
	if err != nil {
		return nil, err
	}

	rows := make([]DecadeRow, 0, len(t.rows))
	for i := range t.rows {
		decade, err := t.int(i, "Decade")
		if err != nil {
			return nil, err
		}
		features, err := t.features(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, DecadeRow{
			Decade:   decade,
			Label:    fmt.Sprintf("%ds", decade),
			Features: features,
		})
	}
	return rows, nil
}

// Artists loads top_30_artists_features.csv.
func (d *Dir) Artists() ([]ArtistRow, error) {
	t, err := d.read(ArtistsFile, append([]string{"Artist_Name", "Song_Count"}, featureColumns()...)...)
	if err != nil {
		return nil, err
	}

	rows := make([]ArtistRow, 0, len(t.rows))
	for i := range t.rows {
		count, err := t.int(i, "Song_Count")
		if err != nil {
			return nil, err
		}
		features, err := t.features(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ArtistRow{
			Name:      t.str(i, "Artist_Name"),
			SongCount: count,
			Features:  features,
		})
	}
	return rows, nil
}

// Correlations loads popularity_correlations.csv.
func (d *Dir) Correlations() ([]CorrelationRow, error) {
	t, err := d.read(CorrelationsFile, "Feature", "Correlation_Coefficient")
	if err != nil {
		return nil, err
	}

	rows := make([]CorrelationRow, 0, len(t.rows))
	for i := range t.rows {
		name := t.str(i, "Feature")
		feature, ok := profile.ParseFeature(name)
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown feature %q", CorrelationsFile, i+2, name)
		}
		coefficient, err := t.float(i, "Correlation_Coefficient")
		if err != nil {
			return nil, err
		}
		rows = append(rows, CorrelationRow{Feature: feature, Coefficient: coefficient})
	}
	return rows, nil
}

// Clusters loads song_clusters.csv.
func (d *Dir) Clusters() ([]ClusterRow, error) {
	t, err := d.read(ClustersFile, append([]string{"Cluster", "Count"}, featureColumns()...)...)
	if err != nil {
		return nil, err
	}

	rows := make([]ClusterRow, 0, len(t.rows))
	for i := range t.rows {
		cluster, err := t.int(i, "Cluster")
		if err != nil {
			return nil, err
		}
		count, err := t.int(i, "Count")
		if err != nil {
			return nil, err
		}
		features, err := t.features(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ClusterRow{Cluster: cluster, Count: count, Features: features})
	}
	return rows, nil
}

// StatTests loads statistical_results.csv.
func (d *Dir) StatTests() ([]StatTestRow, error) {
	t, err := d.read(StatTestsFile,
		"Hypothesis", "Group_A", "Group_B", "Mean_Diff", "T_Statistic", "P_Value", "Conclusion")
	if err != nil {
		return nil, err
	}

	rows := make([]StatTestRow, 0, len(t.rows))
	for i := range t.rows {
		meanDiff, err := t.float(i, "Mean_Diff")
		if err != nil {
			return nil, err
		}
		tStat, err := t.float(i, "T_Statistic")
		if err != nil {
			return nil, err
		}
		pValue, err := t.float(i, "P_Value")
		if err != nil {
			return nil, err
		}
		rows = append(rows, StatTestRow{
			Hypothesis: t.str(i, "Hypothesis"),
			GroupA:     t.str(i, "Group_A"),
			GroupB:     t.str(i, "Group_B"),
			MeanDiff:   meanDiff,
			TStatistic: tStat,
			PValue:     pValue,
			Conclusion: t.str(i, "Conclusion"),
		})
	}
	return rows, nil
}
