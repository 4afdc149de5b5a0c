package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// Raw dataset column names, as exported.
const (
	rawTrackName   = "Track Name"
	rawArtistName  = "Artist Name(s)"
	rawGenres      = "Artist Genres"
	rawReleaseDate = "Album Release Date"
	rawPopularity  = "Popularity"
)

// Track is one row of the raw dataset.
type Track struct {
	Name       string
	Artist     string
	Genre      string
	Year       int
	Popularity float64
	Features   profile.Vector
}

// ImportResult describes a completed import.
type ImportResult struct {
	SnapshotID string
	Imported   int
	Skipped    int
}

// ImportCSV ingests the raw track dataset into the store, replacing any
// previous import, and records a snapshot row for it. Rows with a missing
// or unparseable release year or feature value are skipped and counted
// rather than aborting the whole import; the raw export has a handful of
// such rows.
func (s *Store) ImportCSV(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading dataset header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	required := []string{rawTrackName, rawArtistName, rawReleaseDate, rawPopularity}
	for _, feature := range profile.AudioFeatures {
		required = append(required, string(feature))
	}
	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return ImportResult{}, fmt.Errorf("dataset %s: missing column(s): %s", path, strings.Join(missing, ", "))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return ImportResult{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM Track"); err != nil {
		return ImportResult{}, fmt.Errorf("clearing previous import: %w", err)
	}

	insert, err := tx.Prepare(`
		INSERT INTO Track (name, artist, genre, year, popularity,
			danceability, energy, valence, acousticness, liveness,
			speechiness, instrumentalness, loudness, tempo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ImportResult{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	result := ImportResult{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("reading dataset: %w", err)
		}

		track, ok := parseTrack(record, columns)
		if !ok {
			result.Skipped++
			continue
		}

		_, err = insert.Exec(track.Name, track.Artist, track.Genre, track.Year, track.Popularity,
			track.Features[profile.Danceability], track.Features[profile.Energy],
			track.Features[profile.Valence], track.Features[profile.Acousticness],
			track.Features[profile.Liveness], track.Features[profile.Speechiness],
			track.Features[profile.Instrumentalness], track.Features[profile.Loudness],
			track.Features[profile.Tempo])
		if err != nil {
			return ImportResult{}, fmt.Errorf("inserting track %q: %w", track.Name, err)
		}
		result.Imported++

		if result.Imported%2500 == 0 {
			fmt.Printf("Imported %d tracks...\n", result.Imported)
		}
	}

	result.SnapshotID = uuid.NewString()
	_, err = tx.Exec("INSERT INTO Snapshot (id, source, track_count, imported_at) VALUES (?, ?, ?, ?)",
		result.SnapshotID, path, result.Imported, time.Now())
	if err != nil {
		return ImportResult{}, fmt.Errorf("recording snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("committing import: %w", err)
	}
	return result, nil
}

func parseTrack(record []string, columns map[string]int) (Track, bool) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	year, ok := parseReleaseYear(cell(rawReleaseDate))
	if !ok {
		return Track{}, false
	}

	popularity, err := strconv.ParseFloat(cell(rawPopularity), 64)
	if err != nil {
		return Track{}, false
	}

	features := make(profile.Vector, len(profile.AudioFeatures))
	for _, f := range profile.AudioFeatures {
		value, err := strconv.ParseFloat(cell(string(f)), 64)
		if err != nil {
			return Track{}, false
		}
		features[f] = value
	}

	return Track{
		Name:       cell(rawTrackName),
		Artist:     cell(rawArtistName),
		Genre:      primaryGenre(cell(rawGenres)),
		Year:       year,
		Popularity: popularity,
		Features:   features,
	}, true
}

// parseReleaseYear accepts the three date shapes in the export: full dates,
// year-month, and bare years.
func parseReleaseYear(date string) (int, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// primaryGenre picks the first of a comma-separated genre list.
func primaryGenre(genres string) string {
	if i := strings.IndexByte(genres, ','); i >= 0 {
		genres = genres[:i]
	}
	return strings.TrimSpace(genres)
}
