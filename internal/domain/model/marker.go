// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// PlayerID identifies a participant. Opaque to the core; the mobile backend
// supplies it with every submission.
type PlayerID string

// RegionHash identifies a city or state as the content hash of its canonical
// name.
type RegionHash uint64

// HashRegion derives the RegionHash for a canonical region name. Names are
// trimmed and lowercased before hashing so "Tehran" and " tehran " collapse
// to the same region.
func HashRegion(name string) RegionHash {
	return RegionHash(xxhash.Sum64String(strings.ToLower(strings.TrimSpace(name))))
}

// ActivityType classifies how the player was moving when the marker was
// captured.
type ActivityType uint8

const (
	ActivityWalk ActivityType = iota
	ActivityRun
	ActivityCycle

	activityCount
)

// Valid reports whether a is a known activity code.
func (a ActivityType) Valid() bool {
	return a < activityCount
}

func (a ActivityType) String() string {
	switch a {
	case ActivityWalk:
		return "walk"
	case ActivityRun:
		return "run"
	case ActivityCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// ParseActivity maps an activity name to its code. Returns false for unknown
// names.
func ParseActivity(name string) (ActivityType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "walk":
		return ActivityWalk, true
	case "run":
		return ActivityRun, true
	case "cycle":
		return ActivityCycle, true
	default:
		return activityCount, false
	}
}

// Submission is one marker submission request as handed to the pipeline.
// Coordinates are 1e6 fixed-point degrees. Timestamp is the caller-supplied
// logical clock; the core never consults the wall clock.
type Submission struct {
	Player    PlayerID
	Lat       int64 // latitude * 1e6
	Lng       int64 // longitude * 1e6
	StateHash RegionHash
	CityHash  RegionHash
	Landmark  string
	Activity  ActivityType
	SpeedKmh  int64
	Cadence   int64 // steps per minute
	Timestamp int64 // logical clock
}

// Marker is one accepted submission, immutable once appended to the ledger.
type Marker struct {
	ID        uint64
	Player    PlayerID
	Lat       int64
	Lng       int64
	StateHash RegionHash
	CityHash  RegionHash
	Landmark  string
	Activity  ActivityType
	SpeedKmh  int64
	Cadence   int64
	Timestamp int64
}

// PlayerStats is the per-player rollup maintained by the registry. Home
// region is fixed at registration and never updated afterwards.
type PlayerStats struct {
	Player        PlayerID
	Markers       uint64
	DistanceM     uint64 // cumulative estimated distance in meters
	LastLat       int64
	LastLng       int64
	LastTimestamp int64
	HomeState     RegionHash
	HomeCity      RegionHash
	Registered    bool
}

// RegionStats is the per-city or per-state rollup.
type RegionStats struct {
	Region       RegionHash
	Markers      uint64
	Players      uint64 // distinct players that have marked in the region
	LastActivity int64
}

// Receipt is returned to the caller when a submission is accepted.
type Receipt struct {
	MarkerID   uint64
	DistanceM  uint64 // distance delta contributed by this marker
	GlobalRank int    // 1-based; 0 when outside the leaderboard
	CityRank   int    // 1-based; 0 when outside the city leaderboard
	RewardDue  uint64 // reward units requested from the token ledger
}
