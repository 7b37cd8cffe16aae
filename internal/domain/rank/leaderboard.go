// Package rank maintains a capped, score-ordered leaderboard updated
// incrementally on every accepted marker.
package rank

import "github.com/okian/stride/internal/domain/model"

// defaultCapacity bounds the board at the top 100 entries. The linear scans
// below are O(capacity) and that bound is what makes them acceptable.
const defaultCapacity = 100

// Entry is one leaderboard row.
type Entry struct {
	Rank   int
	Player model.PlayerID
	Score  uint64
}

type slot struct {
	player model.PlayerID
	score  uint64
}

// Leaderboard is an order-preserving ranking of players by score, capped at
// a fixed number of entries. A player appears at most once; players whose
// score places them beyond the cap are absent entirely.
//
// Not safe for unserialized concurrent use: the submission pipeline holds
// the service write lock across every call.
type Leaderboard struct {
	capacity int
	slots    []slot
}

// Option applies a configuration option to the Leaderboard.
type Option func(*Leaderboard)

// WithCapacity sets the maximum number of entries retained.
func WithCapacity(n int) Option {
	return func(l *Leaderboard) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// New creates an empty Leaderboard.
func New(opts ...Option) *Leaderboard {
	l := &Leaderboard{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Upsert places player at the position implied by score and returns the new
// 1-based rank, or 0 when the score leaves the player outside the board.
//
// Insertion goes to the first index whose occupant has a strictly lower
// score, so entries already present with an equal score stay ahead of the
// upserted one. Consumers depend on that ordering; do not "improve" it.
func (l *Leaderboard) Upsert(player model.PlayerID, score uint64) int {
	cur := -1
	for i := range l.slots {
		if l.slots[i].player == player {
			cur = i
			break
		}
	}

	pos := len(l.slots)
	for i := range l.slots {
		if l.slots[i].score < score {
			pos = i
			break
		}
	}

	if cur >= 0 {
		l.slots = append(l.slots[:cur], l.slots[cur+1:]...)
		if cur < pos {
			pos--
		}
	}

	if pos >= l.capacity {
		return 0
	}

	if len(l.slots) < l.capacity {
		l.slots = append(l.slots, slot{})
	}
	// When the board is already full the last entry falls off the end.
	copy(l.slots[pos+1:], l.slots[pos:])
	l.slots[pos] = slot{player: player, score: score}
	return pos + 1
}

// RankOf returns the player's current entry, or false when absent.
func (l *Leaderboard) RankOf(player model.PlayerID) (Entry, bool) {
	for i := range l.slots {
		if l.slots[i].player == player {
			return Entry{Rank: i + 1, Player: player, Score: l.slots[i].score}, true
		}
	}
	return Entry{}, false
}

// TopN returns the first n entries in rank order. n beyond the current
// length is clamped.
func (l *Leaderboard) TopN(n int) []Entry {
	if n < 0 {
		n = 0
	}
	n = min(n, len(l.slots))
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = Entry{Rank: i + 1, Player: l.slots[i].player, Score: l.slots[i].score}
	}
	return out
}

// Len returns the number of ranked entries.
func (l *Leaderboard) Len() int {
	return len(l.slots)
}
