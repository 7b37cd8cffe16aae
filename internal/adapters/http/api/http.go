// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/app"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/rank"
)

// callerHeader identifies the requester for the administrative surface.
const callerHeader = "X-Stride-Caller"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SubmitDependencies
	MarkerDependencies
	PlayerDependencies
	RegionDependencies
	LeaderboardDependencies
	AdminDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	markersHandler     *MarkersHandler
	playersHandler     *PlayersHandler
	regionsHandler     *RegionsHandler
	leaderboardHandler *LeaderboardHandler
	adminHandler       *AdminHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// limit query parameter on list endpoints.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		markersHandler:     NewMarkersHandler(deps, maxLimit),
		playersHandler:     NewPlayersHandler(deps),
		regionsHandler:     NewRegionsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		adminHandler:       NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/markers", MetricsMiddleware(s.markersHandler.HandleMarkers, "markers"))
	mux.HandleFunc("/markers/", MetricsMiddleware(s.markersHandler.HandleGetMarker, "marker"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "players"))
	mux.HandleFunc("/regions/", MetricsMiddleware(s.regionsHandler.HandleGetRegion, "regions"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGlobal, "leaderboard"))
	mux.HandleFunc("/leaderboard/", MetricsMiddleware(s.leaderboardHandler.HandleCity, "city_leaderboard"))
	mux.HandleFunc("/admin/", MetricsMiddleware(s.adminHandler.HandleAdmin, "admin"))
}

// markerRequest mirrors the submission schema for POST /markers.
type markerRequest struct {
	Player    string `json:"player"`
	Lat       int64  `json:"lat"`
	Lng       int64  `json:"lng"`
	State     string `json:"state"`
	City      string `json:"city"`
	Landmark  string `json:"landmark"`
	Activity  string `json:"activity"`
	SpeedKmh  int64  `json:"speed_kmh"`
	Cadence   int64  `json:"cadence"`
	Timestamp int64  `json:"timestamp"`
}

func (m markerRequest) validate() error {
	switch {
	case strings.TrimSpace(m.Player) == "":
		return errors.New("missing player")
	case strings.TrimSpace(m.State) == "":
		return errors.New("missing state")
	case strings.TrimSpace(m.City) == "":
		return errors.New("missing city")
	case strings.TrimSpace(m.Activity) == "":
		return errors.New("missing activity")
	case m.SpeedKmh < 0:
		return errors.New("negative speed_kmh")
	case m.Cadence < 0:
		return errors.New("negative cadence")
	case m.Timestamp < 0:
		return errors.New("negative timestamp")
	}
	return nil
}

// receiptResponse is returned for an accepted submission.
type receiptResponse struct {
	MarkerID   uint64 `json:"marker_id"`
	DistanceM  uint64 `json:"distance_m"`
	GlobalRank int    `json:"global_rank"`
	CityRank   int    `json:"city_rank"`
	RewardDue  uint64 `json:"reward_due"`
}

// entryResponse mirrors rank.Entry on the wire.
type entryResponse struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Score  uint64 `json:"score"`
}

func toEntryResponses(entries []rank.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse{Rank: e.Rank, Player: string(e.Player), Score: e.Score}
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeRejection maps a pipeline or query error onto the wire.
func writeRejection(w http.ResponseWriter, err error) {
	writeError(w, rejectionStatus(err), app.Reason(err), err)
}

func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrSystemPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, app.ErrCooldownActive), errors.Is(err, app.ErrDuplicateLocation):
		return http.StatusConflict
	case errors.Is(err, app.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrIndexOutOfRange):
		return http.StatusNotFound
	default:
		// Remaining pipeline rejections are validation failures.
		return http.StatusUnprocessableEntity
	}
}

// formatRegion renders a region hash as 16 hex digits, the inverse of the
// hash form accepted by parseRegion.
func formatRegion(h model.RegionHash) string {
	return fmt.Sprintf("%016x", uint64(h))
}

// parseRegion accepts either a canonical region name or a 16-hex-digit hash.
func parseRegion(s string) (model.RegionHash, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadRequest
	}
	if len(s) == 16 {
		if h, err := strconv.ParseUint(s, 16, 64); err == nil {
			return model.RegionHash(h), nil
		}
	}
	return model.HashRegion(s), nil
}

// parseLimit parses the limit query parameter within (0, maxLimit].
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return maxLimit, nil
	}
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 || n > maxLimit {
		return 0, ErrBadRequest
	}
	return n, nil
}
