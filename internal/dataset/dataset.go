// Package dataset loads the pre-computed CSV summary tables the trend tools
// render: yearly means, genre and decade profiles, artist features,
// popularity correlations, cluster assignments and t-test results. A Dir is
// an immutable view over a directory of exports; each accessor reads exactly
// the file the caller needs, so a missing file only fails the command that
// renders that table.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// File names of the summary exports, as produced by the dataset pipeline.
const (
	TemporalFile     = "temporal_trends.csv"
	GenresFile       = "genre_profiles.csv"
	DecadesFile      = "decadal_trends.csv"
	ArtistsFile      = "top_30_artists_features.csv"
	CorrelationsFile = "popularity_correlations.csv"
	ClustersFile     = "song_clusters.csv"
	StatTestsFile    = "statistical_results.csv"

	// RawFile is the full track-level dataset, consumed by the import
	// command rather than loaded here.
	RawFile = "top_10000_1950-now.csv"
)

// SummaryFiles lists the seven summary exports, in dashboard page order.
func SummaryFiles() []string {
	return []string{
		TemporalFile,
		GenresFile,
		DecadesFile,
		ArtistsFile,
		CorrelationsFile,
		ClustersFile,
		StatTestsFile,
	}
}

// Dir is a directory of summary CSV exports.
type Dir struct {
	path string
}

// Open returns a Dir over the given directory. The directory itself must
// exist; individual files are checked when their table is requested.
func Open(path string) (*Dir, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening data directory: %q is not a directory", path)
	}
	return &Dir{path: path}, nil
}

// Path returns the absolute location of a named file inside the directory.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// table is a parsed CSV file with column lookup by name.
type table struct {
	file    string
	columns map[string]int
	rows    [][]string
}

func (d *Dir) read(name string, required ...string) (*table, error) {
	path := d.Path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("loading %s: file is empty", name)
	}

	t := &table{
		file:    name,
		columns: make(map[string]int, len(records[0])),
		rows:    records[1:],
	}
	for i, column := range records[0] {
		t.columns[strings.TrimSpace(column)] = i
	}

	var missing []string
	for _, column := range required {
		if _, ok := t.columns[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("loading %s: missing column(s): %s", name, strings.Join(missing, ", "))
	}
	return t, nil
}

func (t *table) str(row int, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

func (t *table) float(row int, column string) (float64, error) {
	raw := t.str(row, column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: column %q: parsing %q: %w", t.file, row+2, column, raw, err)
	}
	return v, nil
}

func (t *table) int(row int, column string) (int, error) {
	raw := t.str(row, column)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: column %q: parsing %q: %w", t.file, row+2, column, raw, err)
	}
	return v, nil
}

// features reads the nine audio feature columns of a row into a Vector.
func (t *table) features(row int) (profile.Vector, error) {
	v := make(profile.Vector, len(profile.AudioFeatures))
	for _, f := range profile.AudioFeatures {
		value, err := t.float(row, string(f))
		if err != nil {
			return nil, err
		}
		v[f] = value
	}
	return v, nil
}

func featureColumns() []string {
	columns := make([]string, len(profile.AudioFeatures))
	for i, f := range profile.AudioFeatures {
		columns[i] = string(f)
	}
	return columns
}
