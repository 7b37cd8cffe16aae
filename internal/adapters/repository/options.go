package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithLeaderboardCapacity sets the entry cap shared by the global board and
// every city board.
func WithLeaderboardCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.boardCapacity = n
		}
	}
}
