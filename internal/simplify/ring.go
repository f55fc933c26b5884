package simplify

// MinRingPoints is the smallest closed ring GeoJSON accepts: a triangle
// plus the closing point.
const MinRingPoints = 4

// NormalizeRing simplifies one closed ring. When simplification would
// leave fewer than MinRingPoints the original ring is returned unmodified,
// trading size reduction for validity. There is no retry at a lower
// tolerance, and rings that arrive already under the floor pass through
// untouched.
func NormalizeRing(ring [][]float64, epsilon float64) [][]float64 {
	simplified := DouglasPeucker(ring, epsilon)
	if len(simplified) < MinRingPoints {
		return ring
	}

	return simplified
}
