package repository

import (
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/rank"
)

// visitKey identifies one (player, region) participation counter. A map on
// this key keeps region-membership checks O(1) no matter how long the
// region's player list grows.
type visitKey struct {
	player model.PlayerID
	region model.RegionHash
}

type regionState struct {
	stats   model.RegionStats
	players []model.PlayerID // appended on a player's first visit, never pruned
}

// MemStore is the in-memory Store implementation.
type MemStore struct {
	boardCapacity int

	markers []model.Marker
	players map[model.PlayerID]*model.PlayerStats

	cities      map[model.RegionHash]*regionState
	states      map[model.RegionHash]*regionState
	cityVisits  map[visitKey]uint64
	stateVisits map[visitKey]uint64

	global     *rank.Leaderboard
	cityBoards map[model.RegionHash]*rank.Leaderboard
}

// NewMemStore creates an empty MemStore with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		boardCapacity: 100,
		players:       make(map[model.PlayerID]*model.PlayerStats),
		cities:        make(map[model.RegionHash]*regionState),
		states:        make(map[model.RegionHash]*regionState),
		cityVisits:    make(map[visitKey]uint64),
		stateVisits:   make(map[visitKey]uint64),
		cityBoards:    make(map[model.RegionHash]*rank.Leaderboard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.global = rank.New(rank.WithCapacity(s.boardCapacity))
	return s
}

// AppendMarker assigns the next sequential id and appends m to the ledger.
func (s *MemStore) AppendMarker(m model.Marker) uint64 {
	m.ID = uint64(len(s.markers))
	s.markers = append(s.markers, m)
	return m.ID
}

// Marker returns the marker with the given id.
func (s *MemStore) Marker(id uint64) (model.Marker, error) {
	if id >= uint64(len(s.markers)) {
		return model.Marker{}, ErrNotFound
	}
	return s.markers[id], nil
}

// RecentMarkers returns up to n markers, newest first.
func (s *MemStore) RecentMarkers(n int) []model.Marker {
	if n < 0 {
		n = 0
	}
	n = min(n, len(s.markers))
	out := make([]model.Marker, n)
	for i := 0; i < n; i++ {
		out[i] = s.markers[len(s.markers)-1-i]
	}
	return out
}

// MarkerCount returns the ledger length.
func (s *MemStore) MarkerCount() uint64 {
	return uint64(len(s.markers))
}

// Player returns a copy of the player's stats record.
func (s *MemStore) Player(player model.PlayerID) (model.PlayerStats, bool) {
	p, ok := s.players[player]
	if !ok {
		return model.PlayerStats{}, false
	}
	return *p, true
}

// RegisterIfNew creates the player's stats record with its home region fixed
// to the given hashes. Returns true only on first registration; subsequent
// calls are no-ops.
func (s *MemStore) RegisterIfNew(player model.PlayerID, state, city model.RegionHash) bool {
	if _, ok := s.players[player]; ok {
		return false
	}
	s.players[player] = &model.PlayerStats{
		Player:     player,
		HomeState:  state,
		HomeCity:   city,
		Registered: true,
	}
	return true
}

// RecordMarker accumulates one accepted marker into the player's stats.
// Must be called after RegisterIfNew.
func (s *MemStore) RecordMarker(player model.PlayerID, distanceM uint64, lat, lng, timestamp int64) {
	p, ok := s.players[player]
	if !ok {
		return
	}
	p.Markers++
	p.DistanceM += distanceM
	p.LastLat = lat
	p.LastLng = lng
	p.LastTimestamp = timestamp
}

// PlayerCount returns the number of registered players.
func (s *MemStore) PlayerCount() int {
	return len(s.players)
}

// RecordCityVisit applies one accepted marker to the city rollup.
func (s *MemStore) RecordCityVisit(player model.PlayerID, city model.RegionHash, timestamp int64) bool {
	return recordVisit(s.cities, s.cityVisits, player, city, timestamp)
}

// RecordStateVisit applies one accepted marker to the state rollup.
func (s *MemStore) RecordStateVisit(player model.PlayerID, state model.RegionHash, timestamp int64) bool {
	return recordVisit(s.states, s.stateVisits, player, state, timestamp)
}

func recordVisit(regions map[model.RegionHash]*regionState, visits map[visitKey]uint64, player model.PlayerID, region model.RegionHash, timestamp int64) bool {
	r, ok := regions[region]
	if !ok {
		r = &regionState{stats: model.RegionStats{Region: region}}
		regions[region] = r
	}
	r.stats.Markers++
	r.stats.LastActivity = timestamp

	key := visitKey{player: player, region: region}
	first := visits[key] == 0
	visits[key]++
	if first {
		r.stats.Players++
		r.players = append(r.players, player)
	}
	return first
}

// CityStats returns the city rollup.
func (s *MemStore) CityStats(city model.RegionHash) (model.RegionStats, bool) {
	r, ok := s.cities[city]
	if !ok {
		return model.RegionStats{}, false
	}
	return r.stats, true
}

// StateStats returns the state rollup.
func (s *MemStore) StateStats(state model.RegionHash) (model.RegionStats, bool) {
	r, ok := s.states[state]
	if !ok {
		return model.RegionStats{}, false
	}
	return r.stats, true
}

// CityVisits returns how many markers the player has placed in the city.
func (s *MemStore) CityVisits(player model.PlayerID, city model.RegionHash) uint64 {
	return s.cityVisits[visitKey{player: player, region: city}]
}

// CityPlayers returns the players that have marked in the city, in first-visit
// order.
func (s *MemStore) CityPlayers(city model.RegionHash) []model.PlayerID {
	r, ok := s.cities[city]
	if !ok {
		return nil
	}
	out := make([]model.PlayerID, len(r.players))
	copy(out, r.players)
	return out
}

// UpsertGlobalRank updates the player's position on the global board.
func (s *MemStore) UpsertGlobalRank(player model.PlayerID, score uint64) int {
	return s.global.Upsert(player, score)
}

// UpsertCityRank updates the player's position on the city board, creating
// the board on first use.
func (s *MemStore) UpsertCityRank(city model.RegionHash, player model.PlayerID, score uint64) int {
	b, ok := s.cityBoards[city]
	if !ok {
		b = rank.New(rank.WithCapacity(s.boardCapacity))
		s.cityBoards[city] = b
	}
	return b.Upsert(player, score)
}

// GlobalTopN returns the first n global entries.
func (s *MemStore) GlobalTopN(n int) []rank.Entry {
	return s.global.TopN(n)
}

// CityTopN returns the first n entries of the city's board.
func (s *MemStore) CityTopN(city model.RegionHash, n int) []rank.Entry {
	b, ok := s.cityBoards[city]
	if !ok {
		return nil
	}
	return b.TopN(n)
}

// GlobalRank returns the player's global entry.
func (s *MemStore) GlobalRank(player model.PlayerID) (rank.Entry, bool) {
	return s.global.RankOf(player)
}

// CityRank returns the player's entry on the city's board.
func (s *MemStore) CityRank(city model.RegionHash, player model.PlayerID) (rank.Entry, bool) {
	b, ok := s.cityBoards[city]
	if !ok {
		return rank.Entry{}, false
	}
	return b.RankOf(player)
}
