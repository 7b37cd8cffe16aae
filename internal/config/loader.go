package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STRIDE_CONFIG is set
//  3. env (prefix STRIDE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STRIDE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: STRIDE_ADDR, STRIDE_COOLDOWN_UNITS, ...
	// Map env keys like STRIDE_GRID_PRECISION -> grid_precision (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("STRIDE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "stride_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinLat >= c.MaxLat:
		return fmt.Errorf("%w: min_lat must be below max_lat", ErrInvalidConfig)
	case c.MinLng >= c.MaxLng:
		return fmt.Errorf("%w: min_lng must be below max_lng", ErrInvalidConfig)
	case c.CooldownUnits < 0:
		return fmt.Errorf("%w: cooldown_units must not be negative", ErrInvalidConfig)
	case c.GridPrecision <= 0:
		return fmt.Errorf("%w: grid_precision must be positive", ErrInvalidConfig)
	case c.LeaderboardCapacity <= 0:
		return fmt.Errorf("%w: leaderboard_capacity must be positive", ErrInvalidConfig)
	}
	return nil
}
