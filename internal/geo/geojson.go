// Package geo holds helpers over the GeoJSON feature model.
package geo

import geojson "github.com/paulmach/go.geojson"

// CountCoordinates walks the nested coordinate structure of a geometry and
// returns the number of leaf points.
func CountCoordinates(g *geojson.Geometry) int {
	if g == nil {
		return 0
	}

	switch g.Type {
	case geojson.GeometryPoint:
		return 1
	case geojson.GeometryMultiPoint:
		return len(g.MultiPoint)
	case geojson.GeometryLineString:
		return len(g.LineString)
	case geojson.GeometryMultiLineString:
		n := 0
		for _, line := range g.MultiLineString {
			n += len(line)
		}
		return n
	case geojson.GeometryPolygon:
		return countPolygon(g.Polygon)
	case geojson.GeometryMultiPolygon:
		n := 0
		for _, poly := range g.MultiPolygon {
			n += countPolygon(poly)
		}
		return n
	case geojson.GeometryCollection:
		n := 0
		for _, member := range g.Geometries {
			n += CountCoordinates(member)
		}
		return n
	}

	return 0
}

func countPolygon(poly [][][]float64) int {
	n := 0
	for _, ring := range poly {
		n += len(ring)
	}
	return n
}

// IsClosed reports whether the ring's first and last points coincide.
func IsClosed(ring [][]float64) bool {
	if len(ring) < 2 {
		return false
	}

	first, last := ring[0], ring[len(ring)-1]
	return first[0] == last[0] && first[1] == last[1]
}
