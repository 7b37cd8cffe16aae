// Package geo holds the pure geofencing and plausibility predicates applied
// to every submission before any state is touched.
package geo

import (
	"github.com/okian/stride/internal/domain/model"
)

// Default validation constants. Coordinates are 1e6 fixed-point degrees.
const (
	defaultMinLat = 25_000_000
	defaultMaxLat = 40_000_000
	defaultMinLng = 44_000_000
	defaultMaxLng = 64_000_000

	defaultMaxSpeedKmh = 25 // anti-vehicle heuristic
	defaultMinCadence  = 40 // steps per minute, waived when speed is zero
)

// Validator checks a submission against the geofence and anti-cheat rules.
// It is a pure predicate over its configuration; Validate has no side
// effects and may be called any number of times.
type Validator struct {
	minLat, maxLat int64
	minLng, maxLng int64
	maxSpeedKmh    int64
	minCadence     int64
}

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithBounds sets the inclusive rectangular bounding region.
func WithBounds(minLat, maxLat, minLng, maxLng int64) Option {
	return func(v *Validator) {
		if minLat < maxLat && minLng < maxLng {
			v.minLat, v.maxLat = minLat, maxLat
			v.minLng, v.maxLng = minLng, maxLng
		}
	}
}

// WithMaxSpeed sets the maximum plausible speed in km/h.
func WithMaxSpeed(kmh int64) Option {
	return func(v *Validator) {
		if kmh > 0 {
			v.maxSpeedKmh = kmh
		}
	}
}

// WithMinCadence sets the minimum step cadence in steps per minute.
func WithMinCadence(stepsPerMin int64) Option {
	return func(v *Validator) {
		if stepsPerMin > 0 {
			v.minCadence = stepsPerMin
		}
	}
}

// NewValidator creates a Validator with default rules.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		minLat:      defaultMinLat,
		maxLat:      defaultMaxLat,
		minLng:      defaultMinLng,
		maxLng:      defaultMaxLng,
		maxSpeedKmh: defaultMaxSpeedKmh,
		minCadence:  defaultMinCadence,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate applies the rules in order and returns the sentinel for the first
// violated rule, or nil when all rules hold.
//
// The cadence minimum is waived when the reported speed is exactly zero; a
// stationary marker ("checking in" at a landmark) carries no step count.
func (v *Validator) Validate(lat, lng int64, activity model.ActivityType, speedKmh, cadence int64) error {
	if lat < v.minLat || lat > v.maxLat || lng < v.minLng || lng > v.maxLng {
		return ErrOutOfBounds
	}
	if !activity.Valid() {
		return ErrInvalidActivity
	}
	if speedKmh > v.maxSpeedKmh {
		return ErrSpeedTooHigh
	}
	if speedKmh != 0 && cadence < v.minCadence {
		return ErrCadenceTooLow
	}
	return nil
}
