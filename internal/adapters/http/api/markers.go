// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/stride/internal/domain/model"
)

// SubmitDependencies defines the interface for marker submission.
type SubmitDependencies interface {
	Submit(ctx context.Context, sub model.Submission) (model.Receipt, error)
}

// MarkerDependencies defines the interface for marker reads.
type MarkerDependencies interface {
	Marker(ctx context.Context, id uint64) (model.Marker, error)
	RecentMarkers(ctx context.Context, n int) []model.Marker
}

// MarkersHandler handles marker submission and reads.
type MarkersHandler struct {
	submit   SubmitDependencies
	reads    MarkerDependencies
	maxLimit int
}

// NewMarkersHandler creates a new markers handler.
func NewMarkersHandler(deps Dependencies, maxLimit int) *MarkersHandler {
	return &MarkersHandler{submit: deps, reads: deps, maxLimit: maxLimit}
}

// HandleMarkers handles POST /markers and GET /markers?limit=N.
func (h *MarkersHandler) HandleMarkers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleRecent(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *MarkersHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req markerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	activity, ok := model.ParseActivity(req.Activity)
	if !ok {
		// Let the pipeline reject it so the reason code is uniform.
		activity = model.ActivityType(^uint8(0))
	}

	receipt, err := h.submit.Submit(r.Context(), model.Submission{
		Player:    model.PlayerID(req.Player),
		Lat:       req.Lat,
		Lng:       req.Lng,
		StateHash: model.HashRegion(req.State),
		CityHash:  model.HashRegion(req.City),
		Landmark:  req.Landmark,
		Activity:  activity,
		SpeedKmh:  req.SpeedKmh,
		Cadence:   req.Cadence,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receiptResponse{
		MarkerID:   receipt.MarkerID,
		DistanceM:  receipt.DistanceM,
		GlobalRank: receipt.GlobalRank,
		CityRank:   receipt.CityRank,
		RewardDue:  receipt.RewardDue,
	})
}

func (h *MarkersHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	n, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	markers := h.reads.RecentMarkers(r.Context(), n)
	out := make([]markerResponse, len(markers))
	for i, m := range markers {
		out[i] = toMarkerResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// markerResponse mirrors model.Marker on the wire. Region hashes are hex so
// they round-trip through region query parameters.
type markerResponse struct {
	ID        uint64 `json:"id"`
	Player    string `json:"player"`
	Lat       int64  `json:"lat"`
	Lng       int64  `json:"lng"`
	State     string `json:"state_hash"`
	City      string `json:"city_hash"`
	Landmark  string `json:"landmark"`
	Activity  string `json:"activity"`
	SpeedKmh  int64  `json:"speed_kmh"`
	Cadence   int64  `json:"cadence"`
	Timestamp int64  `json:"timestamp"`
}

func toMarkerResponse(m model.Marker) markerResponse {
	return markerResponse{
		ID:        m.ID,
		Player:    string(m.Player),
		Lat:       m.Lat,
		Lng:       m.Lng,
		State:     formatRegion(m.StateHash),
		City:      formatRegion(m.CityHash),
		Landmark:  m.Landmark,
		Activity:  m.Activity.String(),
		SpeedKmh:  m.SpeedKmh,
		Cadence:   m.Cadence,
		Timestamp: m.Timestamp,
	}
}

// HandleGetMarker handles GET /markers/{id}.
func (h *MarkersHandler) HandleGetMarker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/markers/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	m, err := h.reads.Marker(r.Context(), id)
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMarkerResponse(m))
}
