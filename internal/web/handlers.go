package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmhart/spotify-trend-tools/internal/analysis"
	"github.com/jmhart/spotify-trend-tools/internal/dataset"
	"github.com/jmhart/spotify-trend-tools/internal/profile"
)

// Handlers holds the request handlers and their dependencies.
type Handlers struct {
	data      *dataset.Dir
	predictor *analysis.Predictor
}

// NewHandlers creates the handler set.
func NewHandlers(data *dataset.Dir, predictor *analysis.Predictor) *Handlers {
	return &Handlers{data: data, predictor: predictor}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// table serves one summary table, loading it lazily so that a missing CSV
// only breaks its own endpoint.
func table(w http.ResponseWriter, load func() (interface{}, error)) {
	rows, err := load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Overview serves the headline KPIs.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	genres, err := h.data.Genres()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	temporal, err := h.data.Temporal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	overview, err := analysis.ComputeOverview(genres, temporal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handlers) Temporal(w http.ResponseWriter, r *http.Request) {
	table(w, func() (interface{}, error) { return h.data.Temporal() })
}

func (h *Handlers) Genres(w http.ResponseWriter, r *http.Request) {
	table(w, func() (interface{}, error) { return h.data.Genres() })
}

func (h *Handlers) Decades(w http.ResponseWriter, r *http.Request) {
	table(w, func() (interface{}, error) { return h.data.Decades() })
}

func (h *Handlers) Artists(w http.ResponseWriter, r *http.Request) {
	table(w, func() (interface{}, error) { return h.data.Artists() })
}

func (h *Handlers) Correlations(w http.ResponseWriter, r *http.Request) {
	table(w, func() (interface{}, error) { return h.data.Correlations() })
}

func (h *Handlers) Clusters(w http.ResponseWriter, r *http.Request) {
	table(w, func() (interface{}, error) { return h.data.Clusters() })
}

func (h *Handlers) StatTests(w http.ResponseWriter, r *http.Request) {
	table(w, func() (interface{}, error) { return h.data.StatTests() })
}

// predictRequest carries one candidate track's feature values, in native
// units (Loudness in dB, Tempo in BPM, the rest in [0,1]).
type predictRequest map[string]float64

type predictResponse struct {
	Score          float64 `json:"score"`
	DistanceToHit  float64 `json:"distance_to_hit"`
	DistanceToFlop float64 `json:"distance_to_flop"`

	// Normalized 0-1 vectors, ready for radar axes.
	Candidate profile.Vector `json:"candidate"`
	Hit       profile.Vector `json:"hit"`
	Flop      profile.Vector `json:"flop"`

	// The same vectors in native units (dB, BPM), for tabular display.
	RawCandidate profile.Vector `json:"raw_candidate"`
	RawHit       profile.Vector `json:"raw_hit"`
	RawFlop      profile.Vector `json:"raw_flop"`
}

// Predict scores a candidate track against the hit and flop profiles.
func (h *Handlers) Predict(w http.ResponseWriter, r *http.Request) {
	if h.predictor == nil {
		writeError(w, http.StatusServiceUnavailable, "no track database imported; run the import command first")
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decoding request: "+err.Error())
		return
	}

	candidate := profile.Vector{}
	for name, value := range req {
		f, ok := profile.ParseFeature(name)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown feature "+name)
			return
		}
		candidate[f] = value
	}

	score, err := h.predictor.RelativeScore(candidate)
	if err != nil {
		var missing *profile.MissingFeatureError
		if errors.As(err, &missing) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Score:          score.Value,
		DistanceToHit:  score.DistanceToHit,
		DistanceToFlop: score.DistanceToFlop,
		Candidate:      score.Candidate,
		Hit:            score.Hit,
		Flop:           score.Flop,
		RawCandidate:   candidate,
		RawHit:         h.predictor.Hit,
		RawFlop:        h.predictor.Flop,
	})
}
