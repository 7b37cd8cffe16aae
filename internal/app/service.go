// Package app wires the marker-submission pipeline: validation gates in
// front, the cohesive store and leaderboards behind, and the reward mint
// request on the way out.
package app

import (
	"context"
	"sync"

	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/geo"
	"github.com/okian/stride/internal/domain/grid"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/rank"
	"github.com/okian/stride/internal/domain/reward"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

// defaultCooldown is the minimum elapsed logical time between two accepted
// markers from the same player, independent of location.
const defaultCooldown = 30

// Minter is the downstream reward-ledger hook. The token ledger is the sole
// source of truth for balances; the core only requests mints.
type Minter interface {
	Mint(ctx context.Context, player model.PlayerID, amount uint64) error
}

// RegistrationHook is notified exactly once per player, on first accepted
// submission.
type RegistrationHook func(player model.PlayerID, state, city model.RegionHash)

// Service is the accounting core. All submissions are processed strictly one
// at a time under mu; queries take the read side and therefore observe
// either all of a submission's effects or none of them.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	validator *geo.Validator
	cells     *grid.Index
	rewards   *reward.Calculator
	minter    Minter

	cooldown      int64
	boardCapacity int
	gridPrecision int64

	owner  string
	paused bool

	onRegister RegistrationHook

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOwner sets the identity holding the administrative capability.
func WithOwner(owner string) Option {
	return func(s *Service) {
		if owner != "" {
			s.owner = owner
		}
	}
}

// WithCooldown sets the minimum logical time between accepted markers.
func WithCooldown(units int64) Option {
	return func(s *Service) {
		if units > 0 {
			s.cooldown = units
		}
	}
}

// WithValidator replaces the default geofence validator.
func WithValidator(v *geo.Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithGridPrecision sets the dedup grid divisor.
func WithGridPrecision(divisor int64) Option {
	return func(s *Service) {
		if divisor > 0 {
			s.gridPrecision = divisor
		}
	}
}

// WithLeaderboardCapacity sets the leaderboard entry cap.
func WithLeaderboardCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.boardCapacity = n
		}
	}
}

// WithRewardCalculator replaces the default reward calculator.
func WithRewardCalculator(c *reward.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.rewards = c
		}
	}
}

// WithMinter sets the downstream reward ledger.
func WithMinter(m Minter) Option {
	return func(s *Service) {
		s.minter = m
	}
}

// WithRegistrationHook sets the once-per-player registration notification.
func WithRegistrationHook(h RegistrationHook) Option {
	return func(s *Service) {
		s.onRegister = h
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cooldown:      defaultCooldown,
		boardCapacity: 100,
		owner:         "owner",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = geo.NewValidator()
	}
	if s.rewards == nil {
		s.rewards = reward.NewCalculator()
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	var gridOpts []grid.Option
	if s.gridPrecision > 0 {
		gridOpts = append(gridOpts, grid.WithPrecision(s.gridPrecision))
	}
	s.cells = grid.NewIndex(gridOpts...)
	s.store = repository.NewMemStore(repository.WithLeaderboardCapacity(s.boardCapacity))
	return s
}

// Submit runs one submission through the gates and, on acceptance, applies
// every aggregate update as one unit. A rejection at any gate leaves all
// state untouched; the grid mark is the last gate, and once it is taken the
// remaining updates are unconditional.
func (s *Service) Submit(ctx context.Context, sub model.Submission) (model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return s.reject(ctx, sub, ErrSystemPaused)
	}

	if err := s.validator.Validate(sub.Lat, sub.Lng, sub.Activity, sub.SpeedKmh, sub.Cadence); err != nil {
		return s.reject(ctx, sub, err)
	}

	prior, known := s.store.Player(sub.Player)
	if known && prior.Markers > 0 && sub.Timestamp-prior.LastTimestamp < s.cooldown {
		return s.reject(ctx, sub, ErrCooldownActive)
	}

	if s.cells.CheckAndMark(sub.Player, sub.Lat, sub.Lng) {
		return s.reject(ctx, sub, ErrDuplicateLocation)
	}

	// Accepted. Everything below mutates unconditionally.
	var distance uint64
	if known && prior.Markers > 0 {
		distance = geo.Distance(prior.LastLat, prior.LastLng, sub.Lat, sub.Lng)
	}

	if s.store.RegisterIfNew(sub.Player, sub.StateHash, sub.CityHash) {
		metrics.RecordPlayerRegistered()
		if s.onRegister != nil {
			s.onRegister(sub.Player, sub.StateHash, sub.CityHash)
		}
	}
	s.store.RecordMarker(sub.Player, distance, sub.Lat, sub.Lng, sub.Timestamp)
	s.store.RecordCityVisit(sub.Player, sub.CityHash, sub.Timestamp)
	s.store.RecordStateVisit(sub.Player, sub.StateHash, sub.Timestamp)

	id := s.store.AppendMarker(model.Marker{
		Player:    sub.Player,
		Lat:       sub.Lat,
		Lng:       sub.Lng,
		StateHash: sub.StateHash,
		CityHash:  sub.CityHash,
		Landmark:  sub.Landmark,
		Activity:  sub.Activity,
		SpeedKmh:  sub.SpeedKmh,
		Cadence:   sub.Cadence,
		Timestamp: sub.Timestamp,
	})

	stats, _ := s.store.Player(sub.Player)
	globalRank := s.store.UpsertGlobalRank(sub.Player, stats.Markers)
	metrics.RecordLeaderboardUpdate()
	cityRank := s.store.UpsertCityRank(sub.CityHash, sub.Player, s.store.CityVisits(sub.Player, sub.CityHash))
	metrics.RecordLeaderboardUpdate()

	metrics.RecordMarkerAccepted()
	metrics.AddDistance(distance)

	due := s.rewards.Amount(sub.Activity)
	if s.minter != nil {
		if err := s.minter.Mint(ctx, sub.Player, due); err != nil {
			// The marker stands; the ledger is the authority on rewards.
			metrics.RecordRewardRefused()
			s.logger.Warn(ctx, "reward mint refused",
				logger.String("player", string(sub.Player)),
				logger.Uint64("amount", due),
				logger.Error(err),
			)
		} else {
			metrics.RecordRewardMinted(due)
		}
	}

	s.logger.Debug(ctx, "marker accepted",
		logger.Uint64("marker_id", id),
		logger.String("player", string(sub.Player)),
		logger.Uint64("distance_m", distance),
		logger.Int("global_rank", globalRank),
		logger.Int("city_rank", cityRank),
	)

	return model.Receipt{
		MarkerID:   id,
		DistanceM:  distance,
		GlobalRank: globalRank,
		CityRank:   cityRank,
		RewardDue:  due,
	}, nil
}

func (s *Service) reject(ctx context.Context, sub model.Submission, err error) (model.Receipt, error) {
	metrics.RecordMarkerRejected(Reason(err))
	s.logger.Debug(ctx, "marker rejected",
		logger.String("player", string(sub.Player)),
		logger.String("reason", Reason(err)),
	)
	return model.Receipt{}, err
}

// MarkerCount returns the ledger length.
func (s *Service) MarkerCount(ctx context.Context) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.MarkerCount()
}

// Marker returns the marker with the given id.
func (s *Service) Marker(ctx context.Context, id uint64) (model.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Marker(id)
}

// RecentMarkers returns up to n markers, newest first.
func (s *Service) RecentMarkers(ctx context.Context, n int) []model.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.RecentMarkers(n)
}

// PlayerStats returns the stats record for a player.
func (s *Service) PlayerStats(ctx context.Context, player model.PlayerID) (model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.store.Player(player)
	if !ok {
		return model.PlayerStats{}, repository.ErrNotFound
	}
	return p, nil
}

// CityVisits returns how many markers the player has placed in the city.
func (s *Service) CityVisits(ctx context.Context, player model.PlayerID, city model.RegionHash) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.CityVisits(player, city)
}

// CityStats returns the rollup for a city.
func (s *Service) CityStats(ctx context.Context, city model.RegionHash) (model.RegionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.store.CityStats(city)
	if !ok {
		return model.RegionStats{}, repository.ErrNotFound
	}
	return r, nil
}

// StateStats returns the rollup for a state.
func (s *Service) StateStats(ctx context.Context, state model.RegionHash) (model.RegionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.store.StateStats(state)
	if !ok {
		return model.RegionStats{}, repository.ErrNotFound
	}
	return r, nil
}

// GlobalTopN returns the top n global entries.
func (s *Service) GlobalTopN(ctx context.Context, n int) []rank.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.GlobalTopN(n)
}

// CityTopN returns the top n entries of a city board.
func (s *Service) CityTopN(ctx context.Context, city model.RegionHash, n int) []rank.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.CityTopN(city, n)
}

// GlobalRank returns the player's global leaderboard entry.
func (s *Service) GlobalRank(ctx context.Context, player model.PlayerID) (rank.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.GlobalRank(player)
}

// Pause rejects all subsequent submissions until Unpause. Owner only.
func (s *Service) Pause(ctx context.Context, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if caller != s.owner {
		return ErrUnauthorized
	}
	s.paused = true
	s.logger.Info(ctx, "submissions paused", logger.String("by", caller))
	return nil
}

// Unpause restores submission processing. Owner only.
func (s *Service) Unpause(ctx context.Context, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if caller != s.owner {
		return ErrUnauthorized
	}
	s.paused = false
	s.logger.Info(ctx, "submissions resumed", logger.String("by", caller))
	return nil
}

// TransferOwnership hands the administrative capability to newOwner.
func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if caller != s.owner {
		return ErrUnauthorized
	}
	if newOwner == "" {
		return ErrUnauthorized
	}
	s.logger.Info(ctx, "ownership transferred",
		logger.String("from", s.owner),
		logger.String("to", newOwner),
	)
	s.owner = newOwner
	return nil
}

// Paused reports whether submissions are currently rejected.
func (s *Service) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	markers := s.store.MarkerCount()
	players := s.store.PlayerCount()
	cells := s.cells.Size()

	metrics.UpdateTotalMarkers(markers)
	metrics.UpdateTotalPlayers(players)
	metrics.UpdateGridCells(cells)

	return map[string]interface{}{
		"markers":   markers,
		"players":   players,
		"gridCells": cells,
		"paused":    s.paused,
	}
}
