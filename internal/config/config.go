// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Owner holds the administrative capability at startup.
	Owner string `koanf:"owner"`

	// CooldownUnits is the minimum logical time between accepted markers.
	CooldownUnits int64 `koanf:"cooldown_units"`

	// GridPrecision is the coordinate divisor for dedup cells.
	GridPrecision int64 `koanf:"grid_precision"`

	// Bounding region, 1e6 fixed-point degrees, inclusive.
	MinLat int64 `koanf:"min_lat"`
	MaxLat int64 `koanf:"max_lat"`
	MinLng int64 `koanf:"min_lng"`
	MaxLng int64 `koanf:"max_lng"`

	// MaxSpeedKmh and MinCadence bound activity plausibility.
	MaxSpeedKmh int64 `koanf:"max_speed_kmh"`
	MinCadence  int64 `koanf:"min_cadence"`

	// LeaderboardCapacity caps every board and GET /leaderboard?limit.
	LeaderboardCapacity int `koanf:"leaderboard_capacity"`

	// RecentMarkersLimit caps GET /markers?limit.
	RecentMarkersLimit int `koanf:"recent_markers_limit"`

	// Reward token ledger bounds.
	RewardSupplyCeiling uint64 `koanf:"reward_supply_ceiling"`
	RewardMinterCap     uint64 `koanf:"reward_minter_cap"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		Owner:               "owner",
		CooldownUnits:       30,
		GridPrecision:       1_000,
		MinLat:              25_000_000,
		MaxLat:              40_000_000,
		MinLng:              44_000_000,
		MaxLng:              64_000_000,
		MaxSpeedKmh:         25,
		MinCadence:          40,
		LeaderboardCapacity: 100,
		RecentMarkersLimit:  100,
		RewardSupplyCeiling: 1_000_000_000,
		RewardMinterCap:     10_000_000,
	}
}
