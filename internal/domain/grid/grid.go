// Package grid suppresses repeat submissions from the same coarse location.
// Each coordinate is floor-divided onto a fixed grid (roughly 100 m cells at
// the default precision) and the (player, cell) pair is recorded the first
// time it is seen. The record is a one-way ratchet: a cell is never released,
// so a player can mark any given cell at most once ever.
package grid

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/stride/internal/domain/model"
)

// defaultPrecision is the coordinate divisor: 1000 units of 1e-6 degrees,
// about 111 m per cell edge.
const defaultPrecision = 1000

// Index tracks used (player, cell) pairs.
//
// Not safe for unserialized concurrent use: the submission pipeline holds
// the service write lock across every call.
type Index struct {
	precision int64
	used      map[uint64]struct{}
}

// NewIndex creates an Index with configuration options.
func NewIndex(opts ...Option) *Index {
	idx := &Index{
		precision: defaultPrecision,
		used:      make(map[uint64]struct{}),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// CheckAndMark records the (player, cell) pair for the given coordinate and
// reports whether it was already marked. Returns true when the player has
// already used the cell; the call is then a no-op. Returns false when the
// pair was newly recorded.
func (i *Index) CheckAndMark(player model.PlayerID, lat, lng int64) bool {
	key := i.key(player, lat, lng)
	if _, ok := i.used[key]; ok {
		return true
	}
	i.used[key] = struct{}{}
	return false
}

// Marked reports whether the pair is recorded without recording it.
func (i *Index) Marked(player model.PlayerID, lat, lng int64) bool {
	_, ok := i.used[i.key(player, lat, lng)]
	return ok
}

// Size returns the number of recorded (player, cell) pairs.
func (i *Index) Size() int {
	return len(i.used)
}

// key combines player identity and the two cell coordinates into a single
// 64-bit hash. Floor division (not truncation) keeps cells contiguous for
// negative coordinates.
func (i *Index) key(player model.PlayerID, lat, lng int64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(floorDiv(lat, i.precision)))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(floorDiv(lng, i.precision)))

	h := xxhash.New()
	_, _ = h.WriteString(string(player))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
