package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("marker not found")
	ErrIndexOutOfRange = errors.New("marker index out of range")
)
