package simulate

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/stride/pkg/logger"
)

// Coordinate bounds and movement constants. These mirror the service
// defaults so most generated markers land inside the accepted window.
const (
	latMin = 25_000_000
	latMax = 40_000_000
	lngMin = 44_000_000
	lngMax = 64_000_000

	// gridStep moves at least one dedup cell per marker.
	gridStep = 1_000
	// cooldownStep spaces timestamps past the submission cooldown.
	cooldownStep = 31
	// anchorMargin keeps player anchors away from the bounds edges so a
	// walk never leaves the window.
	anchorMargin = 1_000_000

	maxSpeedKmh = 25
	minCadence  = 40
)

// place anchors a city inside a state at a fixed coordinate.
type place struct {
	state    string
	city     string
	landmark string
	lat      int64
	lng      int64
}

// catalog is a small set of real places inside the default bounds.
var catalog = []place{
	{"tehran province", "tehran", "azadi tower", 35_689_000, 51_389_000},
	{"razavi khorasan", "mashhad", "imam reza shrine", 36_297_000, 59_606_000},
	{"isfahan province", "isfahan", "naqsh-e jahan square", 32_654_000, 51_668_000},
	{"fars province", "shiraz", "eram garden", 29_591_000, 52_583_000},
	{"east azerbaijan", "tabriz", "grand bazaar", 38_080_000, 46_291_000},
	{"yazd province", "yazd", "amir chakhmaq complex", 31_897_000, 54_367_000},
}

var activities = []string{"walk", "run", "cycle"}

// player is a simulated submitter walking outward from a home place.
type player struct {
	id    string
	home  place
	steps int64
	clock int64
}

// randInt returns a uniform random int64 in [0, n).
func randInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// newPlayers creates n players with unique ids spread across the catalog.
func newPlayers(n int) []*player {
	players := make([]*player, n)
	for i := range players {
		players[i] = &player{
			id:    uuid.New().String(),
			home:  catalog[randInt(int64(len(catalog)))],
			clock: randInt(cooldownStep),
		}
	}
	return players
}

// nextMarker advances the player one dedup cell and one cooldown window and
// returns the submission payload for the new position.
func (p *player) nextMarker() markerPayload {
	p.steps++
	p.clock += cooldownStep + randInt(cooldownStep)

	// Walk a lattice spiral: alternate axes so consecutive markers always
	// land in fresh grid cells.
	lat := p.home.lat + (p.steps/2)*gridStep
	lng := p.home.lng + ((p.steps+1)/2)*gridStep
	lat = clamp(lat, latMin+anchorMargin, latMax-anchorMargin)
	lng = clamp(lng, lngMin+anchorMargin, lngMax-anchorMargin)

	activity := activities[randInt(int64(len(activities)))]
	speed := randInt(maxSpeedKmh + 1)
	cadence := minCadence + randInt(120)
	if speed == 0 {
		cadence = 0 // resting submissions waive the cadence floor
	}

	return markerPayload{
		Player:    p.id,
		Lat:       lat,
		Lng:       lng,
		State:     p.home.state,
		City:      p.home.city,
		Landmark:  p.home.landmark,
		Activity:  activity,
		SpeedKmh:  speed,
		Cadence:   cadence,
		Timestamp: p.clock,
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// generateMarkers creates the requested number of submissions, round-robin
// across the player population.
func generateMarkers(ctx context.Context, config *Config, stats *Stats) ([]markerPayload, error) {
	logger.Get().Info(ctx, "generating markers",
		logger.Int("players", config.NumPlayers),
		logger.Int("markers", config.NumMarkers))

	if config.NumPlayers < 1 {
		return nil, fmt.Errorf("at least one player is required, got %d", config.NumPlayers)
	}

	players := newPlayers(config.NumPlayers)
	markers := make([]markerPayload, 0, config.NumMarkers)
	for i := 0; i < config.NumMarkers; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("marker generation cancelled: %w", err)
		}
		markers = append(markers, players[i%len(players)].nextMarker())
	}

	stats.MarkersGenerated = len(markers)
	logger.Get().Info(ctx, "generated markers", logger.Int("count", len(markers)))
	return markers, nil
}
