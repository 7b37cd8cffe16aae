// Package repository holds the system of record for the marker ledger: the
// append-only marker sequence, per-player statistics, per-region rollups and
// the ranked leaderboards, kept as one cohesive store behind a single handle.
package repository

import (
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/rank"
)

// Store provides read/write access to all derived aggregates. Implementations
// are not internally synchronized; the submission pipeline serializes writers
// and readers under one service-level lock so no caller ever observes a
// partially applied submission.
type Store interface {
	// Marker ledger: append-only, ids are sequential and zero-based.
	AppendMarker(m model.Marker) uint64
	Marker(id uint64) (model.Marker, error)
	RecentMarkers(n int) []model.Marker
	MarkerCount() uint64

	// Player registry.
	Player(player model.PlayerID) (model.PlayerStats, bool)
	RegisterIfNew(player model.PlayerID, state, city model.RegionHash) bool
	RecordMarker(player model.PlayerID, distanceM uint64, lat, lng, timestamp int64)
	PlayerCount() int

	// Region aggregator. RecordCityVisit and RecordStateVisit bump the
	// region's marker counter and last-activity timestamp unconditionally
	// and report whether this is the player's first-ever marker there.
	RecordCityVisit(player model.PlayerID, city model.RegionHash, timestamp int64) bool
	RecordStateVisit(player model.PlayerID, state model.RegionHash, timestamp int64) bool
	CityStats(city model.RegionHash) (model.RegionStats, bool)
	StateStats(state model.RegionHash) (model.RegionStats, bool)
	CityVisits(player model.PlayerID, city model.RegionHash) uint64
	CityPlayers(city model.RegionHash) []model.PlayerID

	// Leaderboards: one global board and one lazily created board per city.
	UpsertGlobalRank(player model.PlayerID, score uint64) int
	UpsertCityRank(city model.RegionHash, player model.PlayerID, score uint64) int
	GlobalTopN(n int) []rank.Entry
	CityTopN(city model.RegionHash, n int) []rank.Entry
	GlobalRank(player model.PlayerID) (rank.Entry, bool)
	CityRank(city model.RegionHash, player model.PlayerID) (rank.Entry, bool)
}
