package geo

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
)

func TestCountCoordinates(t *testing.T) {
	square := [][][]float64{
		{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}},
	}

	assert.Equal(t, 0, CountCoordinates(nil))
	assert.Equal(t, 1, CountCoordinates(geojson.NewPointGeometry([]float64{1, 2})))
	assert.Equal(t, 5, CountCoordinates(geojson.NewPolygonGeometry(square)))
	assert.Equal(t, 10, CountCoordinates(geojson.NewMultiPolygonGeometry(square, square)))
}

func TestCountCoordinatesWithHole(t *testing.T) {
	poly := [][][]float64{
		{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}},
		{{2, 2}, {2, 4}, {4, 4}, {2, 2}},
	}

	assert.Equal(t, 9, CountCoordinates(geojson.NewPolygonGeometry(poly)))
}

func TestIsClosed(t *testing.T) {
	assert.True(t, IsClosed([][]float64{{0, 0}, {1, 1}, {0, 0}}))
	assert.False(t, IsClosed([][]float64{{0, 0}, {1, 1}, {2, 2}}))
	assert.False(t, IsClosed([][]float64{{0, 0}}))
}
