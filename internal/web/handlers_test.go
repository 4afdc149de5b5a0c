package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmhart/spotify-trend-tools/internal/analysis"
	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

func testServer(t *testing.T, predictor *analysis.Predictor) *Server {
	t.Helper()

	dir := t.TempDir()
	genres := "genre,popularity,Danceability,Energy,Valence,Acousticness,Liveness,Speechiness,Instrumentalness,Loudness,Tempo\n" +
		"pop,75.5,0.7,0.8,0.6,0.1,0.2,0.1,0.0,-5.0,120.0\n"
	if err := os.WriteFile(filepath.Join(dir, dataset.GenresFile), []byte(genres), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := dataset.Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	server, err := NewServer(Config{Data: data, Predictor: predictor})
	if err != nil {
		t.Fatal(err)
	}
	return server
}

func testPredictor(t *testing.T) *analysis.Predictor {
	t.Helper()

	population := make([]profile.Vector, 0, 100)
	for i := 1; i <= 100; i++ {
		danceability := 0.1
		if i > 90 {
			danceability = 0.9
		}
		population = append(population, profile.Vector{
			profile.Popularity:       float64(i),
			profile.Danceability:     danceability,
			profile.Energy:           0.5,
			profile.Valence:          0.5,
			profile.Acousticness:     0.5,
			profile.Liveness:         0.5,
			profile.Speechiness:      0.5,
			profile.Instrumentalness: 0.5,
			profile.Loudness:         -10,
			profile.Tempo:            120,
		})
	}

	predictor, err := analysis.NewPredictor(population)
	if err != nil {
		t.Fatal(err)
	}
	return predictor
}

func TestGetGenres(t *testing.T) {
	server := testServer(t, nil)

	req := httptest.NewRequest("GET", "/api/genres", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var rows []struct {
		Genre      string
		Popularity float64
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Genre != "pop" {
		t.Errorf("got genre %q, want %q", rows[0].Genre, "pop")
	}
	if rows[0].Popularity != 75.5 {
		t.Errorf("got popularity %v, want 75.5", rows[0].Popularity)
	}
}

func TestGetMissingTableFails(t *testing.T) {
	server := testServer(t, nil)

	req := httptest.NewRequest("GET", "/api/temporal", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestPredict(t *testing.T) {
	server := testServer(t, testPredictor(t))

	body := `{"Danceability": 0.9, "Energy": 0.5, "Valence": 0.5, "Acousticness": 0.5,
		"Liveness": 0.5, "Speechiness": 0.5, "Instrumentalness": 0.5,
		"Loudness": -10, "Tempo": 120}`
	req := httptest.NewRequest("POST", "/api/predict", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp predictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	// The candidate matches the hit profile exactly, so the relative score
	// must be the maximum.
	if resp.Score != 100 {
		t.Errorf("got score %v, want 100", resp.Score)
	}
	if resp.DistanceToHit != 0 {
		t.Errorf("got distance to hit %v, want 0", resp.DistanceToHit)
	}
	// Raw vectors stay in native units; the normalized ones are 0-1.
	if got := resp.RawCandidate[profile.Tempo]; got != 120 {
		t.Errorf("got raw candidate tempo %v, want 120", got)
	}
	if got := resp.RawHit[profile.Loudness]; got != -10 {
		t.Errorf("got raw hit loudness %v, want -10", got)
	}
	if got := resp.Candidate[profile.Tempo]; got < 0 || got > 1 {
		t.Errorf("got normalized candidate tempo %v, want a 0-1 value", got)
	}
}

func TestPredictIncompleteVector(t *testing.T) {
	server := testServer(t, testPredictor(t))

	req := httptest.NewRequest("POST", "/api/predict", strings.NewReader(`{"Danceability": 0.9}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "missing feature") {
		t.Errorf("error %q does not name the missing feature", rec.Body.String())
	}
}

func TestPredictBadJSON(t *testing.T) {
	server := testServer(t, testPredictor(t))

	req := httptest.NewRequest("POST", "/api/predict", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPredictUnknownFeature(t *testing.T) {
	server := testServer(t, testPredictor(t))

	req := httptest.NewRequest("POST", "/api/predict", strings.NewReader(`{"Volume": 11}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPredictWithoutDatabase(t *testing.T) {
	server := testServer(t, nil)

	req := httptest.NewRequest("POST", "/api/predict", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
