package token

import "errors"

// Sentinel kinds for token ledger errors.
var (
	ErrUnknownMinter     = errors.New("minter not authorized")
	ErrMinterCapExceeded = errors.New("minter cap exceeded")
	ErrSupplyCeiling     = errors.New("supply ceiling reached")
	ErrZeroAmount        = errors.New("mint amount must be positive")
)
