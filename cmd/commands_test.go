package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

const genresCSVHeader = "genre,popularity,Danceability,Energy,Valence,Acousticness,Liveness,Speechiness,Instrumentalness,Loudness,Tempo\n"

func writeDataDir(t *testing.T, name string, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestGetAnalyserFromName(t *testing.T) {
	for _, name := range defaultReportAnalyses {
		analyser, err := getAnalyserFromName(name)
		if err != nil {
			t.Errorf("getAnalyserFromName(%q) error: %v", name, err)
			continue
		}
		if analyser.GetName() == "" {
			t.Errorf("analyser %q has empty name", name)
		}
	}
}

func TestGetAnalyserFromNameInvalid(t *testing.T) {
	_, err := getAnalyserFromName("mood")
	if err == nil {
		t.Error("getAnalyserFromName(\"mood\") expected error, got nil")
	}
}

func TestOpenStoreWithoutImport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	_, err := openStore(dbPath)
	if err == nil {
		t.Fatal("openStore on empty database expected error, got nil")
	}
	if !strings.Contains(err.Error(), "run import first") {
		t.Errorf("error %q does not tell the user to import", err)
	}
}

func TestBuildPredictorWithoutImport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	predictor, err := buildPredictor(dbPath)
	if err == nil {
		t.Fatal("buildPredictor on empty database expected error, got nil")
	}
	if predictor != nil {
		t.Error("expected nil predictor on error")
	}
}

func TestParseFeatureArgs(t *testing.T) {
	features, err := parseFeatureArgs(nil)
	if err != nil {
		t.Fatalf("parseFeatureArgs(nil) error: %v", err)
	}
	if len(features) != 9 {
		t.Errorf("got %d default features, want 9", len(features))
	}

	features, err = parseFeatureArgs([]string{"Tempo", "Energy"})
	if err != nil {
		t.Fatalf("parseFeatureArgs error: %v", err)
	}
	if len(features) != 2 || string(features[0]) != "Tempo" {
		t.Errorf("got %v, want [Tempo Energy]", features)
	}

	_, err = parseFeatureArgs([]string{"Volume"})
	if err == nil {
		t.Error("parseFeatureArgs(\"Volume\") expected error, got nil")
	}
}

func TestGenresAnalyser(t *testing.T) {
	dataDir := writeDataDir(t, "genre_profiles.csv",
		genresCSVHeader+
			"pop,80,0.7,0.8,0.6,0.1,0.2,0.1,0.0,-5,120\n"+
			"jazz,55,0.5,0.4,0.5,0.7,0.15,0.05,0.3,-12,110\n")

	analysis, err := GenresAnalyser{}.GetResults(dataDir, "")
	if err != nil {
		t.Fatalf("GenresAnalyser error: %v", err)
	}

	// Header plus one row per genre.
	if got, want := len(analysis.results), 3; got != want {
		t.Errorf("got %d result rows, want %d", got, want)
	}

	out := analysis.String()
	if !strings.Contains(out, "jazz") {
		t.Errorf("output missing genre row:\n%s", out)
	}
}

func TestGenresAnalyserUnknownGenre(t *testing.T) {
	dataDir := writeDataDir(t, "genre_profiles.csv",
		genresCSVHeader+"pop,80,0.7,0.8,0.6,0.1,0.2,0.1,0.0,-5,120\n")

	_, err := GenresAnalyser{Names: []string{"polka"}}.GetResults(dataDir, "")
	if err == nil {
		t.Fatal("expected error for unknown genre, got nil")
	}
	if !strings.Contains(err.Error(), "polka") {
		t.Errorf("error %q does not name the genre", err)
	}
}

func TestGenresAnalyserComparisonNormalizes(t *testing.T) {
	dataDir := writeDataDir(t, "genre_profiles.csv",
		genresCSVHeader+"rock,70,0.5,0.9,0.5,0.2,0.2,0.05,0.1,-6,130\n")

	analysis, err := GenresAnalyser{Names: []string{"rock"}}.GetResults(dataDir, "")
	if err != nil {
		t.Fatalf("GenresAnalyser error: %v", err)
	}

	// Loudness -6 dB maps to (−6+60)/60 = 0.9 on the radar axis.
	out := analysis.String()
	if !strings.Contains(out, "0.900") {
		t.Errorf("output missing normalized loudness:\n%s", out)
	}
}

func TestRawComparisonKeepsNativeUnits(t *testing.T) {
	candidate := predictDefaults.Clone()
	hit := profile.Vector{profile.Loudness: -7.5, profile.Tempo: 121.4}
	flop := profile.Vector{profile.Loudness: -14.2, profile.Tempo: 109.8}

	out := rawComparison(candidate, hit, flop, profile.AudioFeatures).String()

	// Loudness stays in dB and Tempo in BPM, not 0-1 radar values.
	for _, want := range []string{"-5.000", "120.000", "-7.500", "121.400", "-14.200", "109.800"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing raw value %s:\n%s", want, out)
		}
	}
}

func TestVerdict(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{90, "sounds like a hit"},
		{60, "leans toward the hits"},
		{40, "leans toward the flops"},
		{10, "sounds like a flop"},
	}
	for _, c := range cases {
		got := verdict(c.score)
		if !strings.Contains(got, c.want) {
			t.Errorf("verdict(%v) = %q, want it to contain %q", c.score, got, c.want)
		}
	}
}
