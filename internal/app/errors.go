package app

import (
	"errors"

	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/geo"
)

// Sentinel kinds for pipeline rejections. Together with the geo package
// sentinels these form the full rejection taxonomy; every refused submission
// maps to exactly one of them.
var (
	ErrSystemPaused      = errors.New("system paused")
	ErrCooldownActive    = errors.New("cooldown not elapsed")
	ErrDuplicateLocation = errors.New("grid cell already used")
	ErrUnauthorized      = errors.New("caller is not the owner")
)

// Reason returns the stable snake_case code for a rejection or query error,
// used as a metrics label and as the API error code.
func Reason(err error) string {
	switch {
	case errors.Is(err, geo.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, geo.ErrInvalidActivity):
		return "invalid_activity"
	case errors.Is(err, geo.ErrSpeedTooHigh):
		return "speed_too_high"
	case errors.Is(err, geo.ErrCadenceTooLow):
		return "cadence_too_low"
	case errors.Is(err, ErrCooldownActive):
		return "cooldown_active"
	case errors.Is(err, ErrDuplicateLocation):
		return "duplicate_location"
	case errors.Is(err, ErrSystemPaused):
		return "system_paused"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrIndexOutOfRange):
		return "index_out_of_range"
	default:
		return "internal_error"
	}
}
