package simplify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointSegmentDistanceDegenerateSegment(t *testing.T) {
	a := []float64{3, 4}
	p := []float64{0, 0}

	got := PointSegmentDistance(p, a, a)
	want := math.Hypot(3, 4)

	assert.Equal(t, want, got, "coincident endpoints must degrade to euclidean distance")
}

func TestPointSegmentDistancePerpendicular(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{10, 0}

	assert.InDelta(t, 5.0, PointSegmentDistance([]float64{5, 5}, a, b), 1e-12)
}

func TestPointSegmentDistanceClampsToEndpoints(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{10, 0}

	// Beyond either end the projection clamps, so the distance is to the
	// endpoint rather than the infinite line.
	assert.InDelta(t, math.Hypot(5, 3), PointSegmentDistance([]float64{15, 3}, a, b), 1e-12)
	assert.InDelta(t, math.Hypot(2, 2), PointSegmentDistance([]float64{-2, 2}, a, b), 1e-12)
}

func TestPointSegmentDistanceOnSegment(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{10, 10}

	assert.InDelta(t, 0.0, PointSegmentDistance([]float64{4, 4}, a, b), 1e-12)
	assert.InDelta(t, 0.0, PointSegmentDistance(a, a, b), 1e-12)
	assert.InDelta(t, 0.0, PointSegmentDistance(b, a, b), 1e-12)
}
