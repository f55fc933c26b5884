package simplify

import "math"

// roundTo rounds v to the given number of decimal digits. Three digits is
// roughly 111 m of latitude, enough for a national choropleth where each
// municipality is a single flat color.
func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

func quantizeRing(ring [][]float64, digits int) {
	for _, pt := range ring {
		for i, v := range pt {
			pt[i] = roundTo(v, digits)
		}
	}
}

func quantizePolygon(poly [][][]float64, digits int) {
	for _, ring := range poly {
		quantizeRing(ring, digits)
	}
}
