// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/stride/internal/domain/model"
)

// PlayerDependencies defines the interface for player queries.
type PlayerDependencies interface {
	PlayerStats(ctx context.Context, player model.PlayerID) (model.PlayerStats, error)
	CityVisits(ctx context.Context, player model.PlayerID, city model.RegionHash) uint64
}

// PlayersHandler handles player queries.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// playerResponse mirrors model.PlayerStats on the wire.
type playerResponse struct {
	Player        string `json:"player"`
	Markers       uint64 `json:"markers"`
	DistanceM     uint64 `json:"distance_m"`
	LastLat       int64  `json:"last_lat"`
	LastLng       int64  `json:"last_lng"`
	LastTimestamp int64  `json:"last_timestamp"`
	HomeState     string `json:"home_state_hash"`
	HomeCity      string `json:"home_city_hash"`
}

type visitsResponse struct {
	Player string `json:"player"`
	City   string `json:"city_hash"`
	Visits uint64 `json:"visits"`
}

// HandleGetPlayer handles GET /players/{id} and GET /players/{id}/visits?city=...
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/players/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if player, ok := strings.CutSuffix(path, "/visits"); ok {
		h.handleVisits(w, r, model.PlayerID(player))
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	stats, err := h.deps.PlayerStats(r.Context(), model.PlayerID(path))
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playerResponse{
		Player:        string(stats.Player),
		Markers:       stats.Markers,
		DistanceM:     stats.DistanceM,
		LastLat:       stats.LastLat,
		LastLng:       stats.LastLng,
		LastTimestamp: stats.LastTimestamp,
		HomeState:     formatRegion(stats.HomeState),
		HomeCity:      formatRegion(stats.HomeCity),
	})
}

func (h *PlayersHandler) handleVisits(w http.ResponseWriter, r *http.Request, player model.PlayerID) {
	if player == "" || strings.Contains(string(player), "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	city, err := parseRegion(r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, visitsResponse{
		Player: string(player),
		City:   formatRegion(city),
		Visits: h.deps.CityVisits(r.Context(), player, city),
	})
}
