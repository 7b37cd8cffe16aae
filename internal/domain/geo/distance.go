package geo

// Planar distance approximation. One 1e-6 degree step is treated as a fixed
// 0.111 m on both axes (meters = |delta| * 111 / 1000) and the axes are
// combined with an integer Pythagorean sum. The latitude-dependent
// contraction of longitude is deliberately ignored: the estimate is cheap,
// deterministic, and identical for every caller, which matters more here
// than geodesic accuracy.
const (
	metersNumerator   = 111
	metersDenominator = 1000
)

// Distance estimates the meters between two 1e6 fixed-point coordinates.
// The result is a non-negative integer, floor-rounded.
func Distance(lat1, lng1, lat2, lng2 int64) uint64 {
	dLat := absDelta(lat1, lat2) * metersNumerator / metersDenominator
	dLng := absDelta(lng1, lng2) * metersNumerator / metersDenominator
	return Isqrt(dLat*dLat + dLng*dLng)
}

func absDelta(a, b int64) uint64 {
	if a > b {
		return uint64(a - b)
	}
	return uint64(b - a)
}

// Isqrt returns the integer square root of n: exact for perfect squares,
// floor-correct otherwise. Newton's method iterated until the estimate stops
// improving.
func Isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
