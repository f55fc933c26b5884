package simplify

import (
	"errors"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/floodatlas/floodatlas/internal/geo"
)

var (
	// ErrNilGeometry is returned for features without a geometry member.
	ErrNilGeometry = errors.New("feature has no geometry")

	// ErrUnsupportedGeometry is returned for geometry types the choropleth
	// renderer cannot draw as filled shapes.
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")

	// ErrMalformedCoordinate is returned when a coordinate leaf is not a
	// lon/lat pair. The distance math indexes both components, so a short
	// leaf must fail the feature before any ring is simplified.
	ErrMalformedCoordinate = errors.New("malformed coordinate")
)

// Geometry simplifies every ring of a Polygon or MultiPolygon in place,
// then quantizes the surviving coordinates to precision decimal digits.
// Ring and polygon cardinality never change. Quantization runs strictly
// after simplification; rounding first would bias the distance
// comparisons. Every coordinate leaf is validated up front: a leaf that
// is not a two-component pair fails the whole geometry.
func Geometry(g *geojson.Geometry, epsilon float64, precision int) error {
	return simplifyGeometry(g, epsilon, precision, log.Logger)
}

func simplifyGeometry(g *geojson.Geometry, epsilon float64, precision int, lg zerolog.Logger) error {
	if g == nil {
		return ErrNilGeometry
	}

	switch g.Type {
	case geojson.GeometryPolygon:
		if err := simplifyPolygon(g.Polygon, epsilon, lg); err != nil {
			return err
		}
		quantizePolygon(g.Polygon, precision)
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			if err := simplifyPolygon(poly, epsilon, lg); err != nil {
				return err
			}
		}
		for _, poly := range g.MultiPolygon {
			quantizePolygon(poly, precision)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.Type)
	}

	return nil
}

func simplifyPolygon(poly [][][]float64, epsilon float64, lg zerolog.Logger) error {
	for i, ring := range poly {
		for j, pt := range ring {
			if len(pt) != 2 {
				return fmt.Errorf("%w: ring %d point %d has %d components",
					ErrMalformedCoordinate, i, j, len(pt))
			}
		}

		if len(ring) < MinRingPoints {
			// Already invalid upstream; a data-quality signal, not a
			// processing fault. Passed through unchanged.
			lg.Warn().
				Int("ring", i).
				Int("points", len(ring)).
				Msg("Ring below validity floor on input, passed through")
			continue
		}

		if !geo.IsClosed(ring) {
			lg.Warn().
				Int("ring", i).
				Msg("Ring not closed on input")
		}

		poly[i] = NormalizeRing(ring, epsilon)
	}

	return nil
}
