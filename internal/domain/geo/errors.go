package geo

import "errors"

// Sentinel kinds for validation errors. Callers match with errors.Is.
var (
	ErrOutOfBounds     = errors.New("coordinate out of bounds")
	ErrInvalidActivity = errors.New("invalid activity type")
	ErrSpeedTooHigh    = errors.New("speed too high")
	ErrCadenceTooLow   = errors.New("cadence too low")
)
