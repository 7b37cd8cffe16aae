// Package token implements the bounded-mint reward ledger. It is the sole
// source of truth for reward balances: the marker core requests mints but
// never mutates balances directly. Every mint is checked against the
// requesting minter's cap and the global supply ceiling.
package token

import (
	"context"
	"sync"

	"github.com/okian/stride/internal/domain/model"
)

// Default ledger bounds.
const (
	defaultSupplyCeiling = 1_000_000_000
	defaultMinterCap     = 10_000_000
)

// MinterID identifies an authorized mint requester.
type MinterID string

// Ledger tracks reward balances under a global supply ceiling and
// per-minter caps. Safe for concurrent use.
type Ledger struct {
	mu sync.RWMutex

	supplyCeiling uint64
	minterCap     uint64

	totalSupply uint64
	minted      map[MinterID]uint64
	balances    map[model.PlayerID]uint64
}

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithSupplyCeiling sets the global supply ceiling.
func WithSupplyCeiling(ceiling uint64) Option {
	return func(l *Ledger) {
		if ceiling > 0 {
			l.supplyCeiling = ceiling
		}
	}
}

// WithMinterCap sets the per-minter lifetime cap.
func WithMinterCap(limit uint64) Option {
	return func(l *Ledger) {
		if limit > 0 {
			l.minterCap = limit
		}
	}
}

// NewLedger creates a Ledger with configuration options. Minters must be
// authorized before they can mint.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		supplyCeiling: defaultSupplyCeiling,
		minterCap:     defaultMinterCap,
		minted:        make(map[MinterID]uint64),
		balances:      make(map[model.PlayerID]uint64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AuthorizeMinter registers a minter with a zero minted total. Idempotent.
func (l *Ledger) AuthorizeMinter(minter MinterID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.minted[minter]; !ok {
		l.minted[minter] = 0
	}
}

// Mint credits amount to player on behalf of minter. The whole amount is
// applied or none of it: a mint that would exceed the minter's cap or the
// supply ceiling fails without effect.
func (l *Ledger) Mint(ctx context.Context, minter MinterID, player model.PlayerID, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	mintedSoFar, ok := l.minted[minter]
	if !ok {
		return ErrUnknownMinter
	}
	if mintedSoFar+amount > l.minterCap {
		return ErrMinterCapExceeded
	}
	if l.totalSupply+amount > l.supplyCeiling {
		return ErrSupplyCeiling
	}

	l.minted[minter] = mintedSoFar + amount
	l.totalSupply += amount
	l.balances[player] += amount
	return nil
}

// BalanceOf returns the player's reward balance.
func (l *Ledger) BalanceOf(player model.PlayerID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[player]
}

// TotalSupply returns the number of units minted so far.
func (l *Ledger) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply
}

// MintedBy returns the lifetime total minted on behalf of minter.
func (l *Ledger) MintedBy(minter MinterID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minted[minter]
}

// BoundMinter is a ledger handle pre-bound to one minter identity, for
// callers that mint on their own behalf only.
type BoundMinter struct {
	ledger *Ledger
	id     MinterID
}

// Bind authorizes id and returns a handle that mints as it.
func (l *Ledger) Bind(id MinterID) *BoundMinter {
	l.AuthorizeMinter(id)
	return &BoundMinter{ledger: l, id: id}
}

// Mint requests a mint to player on behalf of the bound minter.
func (b *BoundMinter) Mint(ctx context.Context, player model.PlayerID, amount uint64) error {
	return b.ledger.Mint(ctx, b.id, player, amount)
}
