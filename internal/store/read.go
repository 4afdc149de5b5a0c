package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// SnapshotInfo describes one recorded import.
type SnapshotInfo struct {
	ID         string
	Source     string
	TrackCount int
	ImportedAt time.Time
}

// Count returns the number of imported tracks.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Track").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tracks: %w", err)
	}
	return count, nil
}

// YearSpan returns the earliest and latest release year.
func (s *Store) YearSpan() (int, int, error) {
	var min, max sql.NullInt64
	err := s.db.QueryRow("SELECT MIN(year), MAX(year) FROM Track").Scan(&min, &max)
	if err != nil {
		return 0, 0, fmt.Errorf("querying year span: %w", err)
	}
	if !min.Valid {
		return 0, 0, fmt.Errorf("querying year span: no tracks imported")
	}
	return int(min.Int64), int(max.Int64), nil
}

// Tracks returns every imported track.
func (s *Store) Tracks() ([]Track, error) {
	query := fmt.Sprintf("SELECT name, artist, genre, year, popularity, %s FROM Track", featureSelectList())
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		track := Track{Features: make(profile.Vector, len(profile.AudioFeatures))}
		dest := []any{&track.Name, &track.Artist, &track.Genre, &track.Year, &track.Popularity}
		values := make([]float64, len(profile.AudioFeatures))
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning track: %w", err)
		}
		for i, f := range profile.AudioFeatures {
			track.Features[f] = values[i]
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// Vectors returns every track's feature vector with Popularity included, the
// population shape the profile package's derivations consume.
func (s *Store) Vectors() ([]profile.Vector, error) {
	tracks, err := s.Tracks()
	if err != nil {
		return nil, err
	}

	vectors := make([]profile.Vector, len(tracks))
	for i, track := range tracks {
		v := track.Features.Clone()
		v[profile.Popularity] = track.Popularity
		vectors[i] = v
	}
	return vectors, nil
}

// GroupMean is one aggregated row of an exploratory slice.
type GroupMean struct {
	Group string
	Mean  float64
	Count int64
}

// FeatureMeansByYear averages a feature per release year, ordered by year.
func (s *Store) FeatureMeansByYear(f profile.Feature) ([]GroupMean, error) {
	column, ok := featureColumn[f]
	if !ok {
		return nil, fmt.Errorf("no column for feature %q", f)
	}
	query := fmt.Sprintf(`
		SELECT year, AVG(%s), COUNT(*)
		FROM Track
		GROUP BY year
		ORDER BY year`, column)
	return s.groupMeans(query)
}

// FeatureMeansByGenre averages a feature per genre, most-tracked genres
// first, skipping tracks with no genre.
func (s *Store) FeatureMeansByGenre(f profile.Feature, limit int) ([]GroupMean, error) {
	column, ok := featureColumn[f]
	if !ok {
		return nil, fmt.Errorf("no column for feature %q", f)
	}
	query := fmt.Sprintf(`
		SELECT genre, AVG(%s), COUNT(*)
		FROM Track
		WHERE genre != ''
		GROUP BY genre
		ORDER BY COUNT(*) DESC
		LIMIT %d`, column, limit)
	return s.groupMeans(query)
}

// FeatureMeansByArtist averages a feature per artist, restricted to artists
// with at least minSongs charting tracks.
func (s *Store) FeatureMeansByArtist(f profile.Feature, minSongs int) ([]GroupMean, error) {
	column, ok := featureColumn[f]
	if !ok {
		return nil, fmt.Errorf("no column for feature %q", f)
	}
	query := fmt.Sprintf(`
		SELECT artist, AVG(%s), COUNT(*)
		FROM Track
		GROUP BY artist
		HAVING COUNT(*) >= %d
		ORDER BY COUNT(*) DESC`, column, minSongs)
	return s.groupMeans(query)
}

func (s *Store) groupMeans(query string) ([]GroupMean, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying group means: %w", err)
	}
	defer rows.Close()

	var means []GroupMean
	for rows.Next() {
		var m GroupMean
		if err := rows.Scan(&m.Group, &m.Mean, &m.Count); err != nil {
			return nil, fmt.Errorf("scanning group mean: %w", err)
		}
		means = append(means, m)
	}
	return means, rows.Err()
}

// FeatureColumns returns (popularity, feature) value pairs for correlation.
func (s *Store) FeatureColumns(f profile.Feature) (popularity, values []float64, err error) {
	column, ok := featureColumn[f]
	if !ok {
		return nil, nil, fmt.Errorf("no column for feature %q", f)
	}
	rows, err := s.db.Query(fmt.Sprintf("SELECT popularity, %s FROM Track", column))
	if err != nil {
		return nil, nil, fmt.Errorf("querying feature columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p, v float64
		if err := rows.Scan(&p, &v); err != nil {
			return nil, nil, fmt.Errorf("scanning feature column: %w", err)
		}
		popularity = append(popularity, p)
		values = append(values, v)
	}
	return popularity, values, rows.Err()
}

// LatestSnapshot returns the most recent import record, or nil when the
// store has never been populated.
func (s *Store) LatestSnapshot() (*SnapshotInfo, error) {
	row := s.db.QueryRow(`
		SELECT id, source, track_count, imported_at
		FROM Snapshot
		ORDER BY imported_at DESC
		LIMIT 1`)

	var info SnapshotInfo
	err := row.Scan(&info.ID, &info.Source, &info.TrackCount, &info.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	return &info, nil
}
