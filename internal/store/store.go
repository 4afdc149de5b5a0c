// Package store keeps the raw track-level dataset in a local SQLite
// database. Commands that need row-level data (predictor cohorts, recomputed
// correlations, clustering, exploratory slicing) query this store; the
// summary tables live in internal/dataset.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

const schema = `
CREATE TABLE IF NOT EXISTS Track (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	artist TEXT NOT NULL,
	genre TEXT,
	year INTEGER NOT NULL,
	popularity REAL NOT NULL,
	danceability REAL NOT NULL,
	energy REAL NOT NULL,
	valence REAL NOT NULL,
	acousticness REAL NOT NULL,
	liveness REAL NOT NULL,
	speechiness REAL NOT NULL,
	instrumentalness REAL NOT NULL,
	loudness REAL NOT NULL,
	tempo REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_track_year ON Track(year);
CREATE INDEX IF NOT EXISTS idx_track_popularity ON Track(popularity);
CREATE INDEX IF NOT EXISTS idx_track_artist ON Track(artist);

CREATE TABLE IF NOT EXISTS Snapshot (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	track_count INTEGER NOT NULL,
	imported_at TIMESTAMP NOT NULL
);
`

// featureColumn maps a feature to its Track column.
var featureColumn = map[profile.Feature]string{
	profile.Danceability:     "danceability",
	profile.Energy:           "energy",
	profile.Valence:          "valence",
	profile.Acousticness:     "acousticness",
	profile.Liveness:         "liveness",
	profile.Speechiness:      "speechiness",
	profile.Instrumentalness: "instrumentalness",
	profile.Loudness:         "loudness",
	profile.Tempo:            "tempo",
}

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HasData reports whether at least one track has been imported.
func (s *Store) HasData() (bool, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Track").Scan(&count); err != nil {
		return false, fmt.Errorf("checking for tracks: %w", err)
	}
	return count > 0, nil
}

func featureSelectList() string {
	columns := make([]string, len(profile.AudioFeatures))
	for i, f := range profile.AudioFeatures {
		columns[i] = featureColumn[f]
	}
	return strings.Join(columns, ", ")
}
