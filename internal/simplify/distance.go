package simplify

import "math"

// PointSegmentDistance returns the euclidean distance from p to the nearest
// point on the segment [a, b]. The projection parameter is clamped to the
// segment, so points beyond either end measure to that endpoint. Coincident
// endpoints degrade to plain point-to-point distance.
func PointSegmentDistance(p, a, b []float64) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]

	if dx == 0 && dy == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}

	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return math.Hypot(p[0]-(a[0]+t*dx), p[1]-(a[1]+t*dy))
}
