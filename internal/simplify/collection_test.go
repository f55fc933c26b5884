package simplify

import (
	"fmt"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Tolerance = 1
	return opts
}

func municipalityFeature(id, name string, offset float64) *geojson.Feature {
	f := geojson.NewPolygonFeature([][][]float64{squareRing(offset)})
	f.SetProperty("DPTOMPIO", id)
	f.SetProperty("MPIO_CNMBR", name)
	f.SetProperty("AREA", 123.45)
	f.SetProperty("DPTO_CNMBR", "ANTIOQUIA")
	return f
}

func TestProcessReducesProperties(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(municipalityFeature("05001", "MEDELLÍN", 0))

	metrics, err := Process(fc, testOptions())
	require.NoError(t, err)

	require.Len(t, fc.Features, 1)
	assert.Equal(t, map[string]interface{}{"c": "05001", "n": "MEDELLÍN"}, fc.Features[0].Properties)
	assert.Equal(t, 5, metrics.CoordsBefore)
	assert.Equal(t, 5, metrics.CoordsAfter)
	assert.Equal(t, 0, metrics.Dropped)
}

func TestProcessFeatureCountAndOrder(t *testing.T) {
	const n = 50

	fc := geojson.NewFeatureCollection()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%05d", i)
		fc.AddFeature(municipalityFeature(id, "M"+id, float64(i*20)))
	}

	opts := testOptions()
	opts.Workers = 8

	metrics, err := Process(fc, opts)
	require.NoError(t, err)

	require.Len(t, fc.Features, n, "the processor must neither add nor remove features")
	assert.Equal(t, n, metrics.Features)

	for i, f := range fc.Features {
		assert.Equal(t, fmt.Sprintf("%05d", i), f.Properties["c"],
			"output order must match input order regardless of worker completion order")
	}
}

func TestProcessSimplifiesGeometry(t *testing.T) {
	f := geojson.NewPolygonFeature([][][]float64{
		{{0, 0}, {0, 5.001}, {0, 10}, {10, 10}, {10, 0}, {0, 0}},
	})
	f.SetProperty("DPTOMPIO", "05001")
	f.SetProperty("MPIO_CNMBR", "MEDELLÍN")

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(f)

	opts := testOptions()
	opts.Tolerance = 0.01

	metrics, err := Process(fc, opts)
	require.NoError(t, err)

	assert.Equal(t, 6, metrics.CoordsBefore)
	assert.Equal(t, 5, metrics.CoordsAfter)
	assert.Greater(t, metrics.Reduction(), 0.0)
}

func TestProcessMissingIdentifierStrict(t *testing.T) {
	f := geojson.NewPolygonFeature([][][]float64{squareRing(0)})
	f.SetProperty("MPIO_CNMBR", "SIN CODIGO")

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(municipalityFeature("05001", "MEDELLÍN", 0))
	fc.AddFeature(f)

	opts := testOptions()
	opts.Strict = true

	_, err := Process(fc, opts)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingProperty)
	assert.ErrorContains(t, err, "feature 1")
}

func TestProcessMissingIdentifierLenient(t *testing.T) {
	f := geojson.NewPolygonFeature([][][]float64{squareRing(0)})
	f.SetProperty("MPIO_CNMBR", "SIN CODIGO")

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(municipalityFeature("05001", "MEDELLÍN", 0))
	fc.AddFeature(f)
	fc.AddFeature(municipalityFeature("05002", "ABEJORRAL", 40))

	metrics, err := Process(fc, testOptions())
	require.NoError(t, err)

	require.Len(t, fc.Features, 2, "the invalid feature must be excluded")
	assert.Equal(t, 1, metrics.Dropped)
	assert.Equal(t, "05001", fc.Features[0].Properties["c"])
	assert.Equal(t, "05002", fc.Features[1].Properties["c"])
}

func TestProcessUnsupportedGeometryLenient(t *testing.T) {
	f := geojson.NewFeature(geojson.NewPointGeometry([]float64{1, 2}))
	f.SetProperty("DPTOMPIO", "99999")
	f.SetProperty("MPIO_CNMBR", "PUNTO")

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(f)
	fc.AddFeature(municipalityFeature("05001", "MEDELLÍN", 0))

	metrics, err := Process(fc, testOptions())
	require.NoError(t, err)

	require.Len(t, fc.Features, 1)
	assert.Equal(t, 1, metrics.Dropped)
	assert.Equal(t, "05001", fc.Features[0].Properties["c"])
}

func TestProcessMalformedCoordinateStrict(t *testing.T) {
	f := geojson.NewPolygonFeature([][][]float64{
		{{0, 0}, {0, 10}, {10}, {10, 0}, {0, 0}},
	})
	f.SetProperty("DPTOMPIO", "05002")
	f.SetProperty("MPIO_CNMBR", "ABEJORRAL")

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(municipalityFeature("05001", "MEDELLÍN", 0))
	fc.AddFeature(f)

	opts := testOptions()
	opts.Strict = true

	_, err := Process(fc, opts)

	require.Error(t, err, "a short coordinate leaf must abort the run, not panic a worker")
	assert.ErrorIs(t, err, ErrMalformedCoordinate)
	assert.ErrorContains(t, err, "feature 1")
}

func TestProcessMalformedCoordinateLenient(t *testing.T) {
	f := geojson.NewPolygonFeature([][][]float64{
		{{0}, {1}, {2}, {3}, {0}},
	})
	f.SetProperty("DPTOMPIO", "05002")
	f.SetProperty("MPIO_CNMBR", "ABEJORRAL")

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(municipalityFeature("05001", "MEDELLÍN", 0))
	fc.AddFeature(f)
	fc.AddFeature(municipalityFeature("05004", "ABRIAQUÍ", 40))

	metrics, err := Process(fc, testOptions())
	require.NoError(t, err)

	require.Len(t, fc.Features, 2, "the malformed feature must be excluded")
	assert.Equal(t, 1, metrics.Dropped)
	assert.Equal(t, "05001", fc.Features[0].Properties["c"])
	assert.Equal(t, "05004", fc.Features[1].Properties["c"])
}

func TestProcessDegenerateRingWarningCarriesFeatureIndex(t *testing.T) {
	buf := captureLog(t)

	f := geojson.NewPolygonFeature([][][]float64{
		{{0, 0}, {1, 1}, {0, 0}},
	})
	f.SetProperty("DPTOMPIO", "05002")
	f.SetProperty("MPIO_CNMBR", "ABEJORRAL")

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(municipalityFeature("05001", "MEDELLÍN", 0))
	fc.AddFeature(f)

	opts := testOptions()
	opts.Workers = 1

	_, err := Process(fc, opts)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "validity floor")
	assert.Contains(t, out, `"feature":1`)
}

func TestProcessRequiresConfiguredFields(t *testing.T) {
	fc := geojson.NewFeatureCollection()

	_, err := Process(fc, Options{Tolerance: 0.008, Precision: 3})

	assert.ErrorIs(t, err, ErrMissingProperty)
}
