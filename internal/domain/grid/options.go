package grid

// Option applies a configuration option to the Index.
type Option func(*Index)

// WithPrecision sets the coordinate divisor used to derive grid cells.
// Larger values produce coarser cells.
func WithPrecision(divisor int64) Option {
	return func(i *Index) {
		if divisor > 0 {
			i.precision = divisor
		}
	}
}
