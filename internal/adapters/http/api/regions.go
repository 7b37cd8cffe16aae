// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/stride/internal/domain/model"
)

// RegionDependencies defines the interface for region queries.
type RegionDependencies interface {
	CityStats(ctx context.Context, city model.RegionHash) (model.RegionStats, error)
	StateStats(ctx context.Context, state model.RegionHash) (model.RegionStats, error)
}

// RegionsHandler handles region rollup queries.
type RegionsHandler struct {
	deps RegionDependencies
}

// NewRegionsHandler creates a new regions handler.
func NewRegionsHandler(deps RegionDependencies) *RegionsHandler {
	return &RegionsHandler{deps: deps}
}

// regionResponse mirrors model.RegionStats on the wire.
type regionResponse struct {
	Region       string `json:"region_hash"`
	Markers      uint64 `json:"markers"`
	Players      uint64 `json:"players"`
	LastActivity int64  `json:"last_activity"`
}

// HandleGetRegion handles GET /regions/cities/{city} and
// GET /regions/states/{state}. Path parameters accept a canonical name or a
// 16-hex-digit hash.
func (h *RegionsHandler) HandleGetRegion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/regions/")
	kind, name, ok := strings.Cut(path, "/")
	if !ok || name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	region, err := parseRegion(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	var stats model.RegionStats
	switch kind {
	case "cities":
		stats, err = h.deps.CityStats(r.Context(), region)
	case "states":
		stats, err = h.deps.StateStats(r.Context(), region)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regionResponse{
		Region:       formatRegion(stats.Region),
		Markers:      stats.Markers,
		Players:      stats.Players,
		LastActivity: stats.LastActivity,
	})
}
