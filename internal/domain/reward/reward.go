// Package reward computes the reward units requested from the token ledger
// for each accepted marker.
package reward

import "github.com/okian/stride/internal/domain/model"

// Default reward configuration constants.
const (
	defaultWalkReward    = 1
	defaultRunReward     = 2
	defaultCycleReward   = 1
	defaultUnknownReward = 1
)

// Calculator maps an accepted marker's activity to a reward amount.
type Calculator struct {
	weights       map[model.ActivityType]uint64
	defaultAmount uint64
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights sets per-activity reward amounts. Zero-valued entries are
// ignored.
func WithWeights(weights map[model.ActivityType]uint64) Option {
	return func(c *Calculator) {
		for activity, amount := range weights {
			if amount > 0 {
				c.weights[activity] = amount
			}
		}
	}
}

// WithDefaultAmount sets the amount used for activities without a weight.
func WithDefaultAmount(amount uint64) Option {
	return func(c *Calculator) {
		if amount > 0 {
			c.defaultAmount = amount
		}
	}
}

// NewCalculator creates a Calculator with default per-activity amounts.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		weights: map[model.ActivityType]uint64{
			model.ActivityWalk:  defaultWalkReward,
			model.ActivityRun:   defaultRunReward,
			model.ActivityCycle: defaultCycleReward,
		},
		defaultAmount: defaultUnknownReward,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Amount returns the reward units due for one accepted marker.
func (c *Calculator) Amount(activity model.ActivityType) uint64 {
	if amount, ok := c.weights[activity]; ok {
		return amount
	}
	return c.defaultAmount
}
