package simplify

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	geojson "github.com/paulmach/go.geojson"
	"github.com/rs/zerolog/log"

	"github.com/floodatlas/floodatlas/internal/geo"
)

// ErrMissingProperty is returned when a feature lacks the configured
// identifier or name field. The identifier is the join key for the
// aggregated event data; a feature without one would silently corrupt
// every downstream lookup.
var ErrMissingProperty = errors.New("missing required property")

// Options control one collection pass.
type Options struct {
	// Tolerance is the maximum perpendicular deviation, in degrees,
	// before a point counts as structurally significant.
	Tolerance float64
	// Precision is the number of decimal digits kept per coordinate.
	Precision int
	// IDField and NameField name the source properties copied into the
	// output as "c" and "n".
	IDField   string
	NameField string
	// Strict aborts the whole run on the first invalid feature instead
	// of dropping it and reporting.
	Strict bool
	// Workers caps the per-feature concurrency; zero means NumCPU.
	Workers int
}

// DefaultOptions matches the DIVIPOLA municipality dataset the pipeline
// was built around.
func DefaultOptions() Options {
	return Options{
		Tolerance: 0.008,
		Precision: 3,
		IDField:   "DPTOMPIO",
		NameField: "MPIO_CNMBR",
	}
}

// Metrics reports the size of a collection pass. Counts are accumulated
// from per-feature results after the workers finish, never through shared
// counters.
type Metrics struct {
	Features     int
	Dropped      int
	CoordsBefore int
	CoordsAfter  int
}

// Reduction returns the coordinate reduction as a percentage.
func (m Metrics) Reduction() float64 {
	if m.CoordsBefore == 0 {
		return 0
	}

	return (1 - float64(m.CoordsAfter)/float64(m.CoordsBefore)) * 100
}

type featureResult struct {
	before int
	after  int
	err    error
}

// Process simplifies every feature of the collection in place: geometry
// per Geometry, properties reduced to exactly {c: identifier, n: name}.
//
// Features are independent, so the work is spread over a worker pool; each
// worker writes into its feature's slot of a position-indexed result
// slice, keeping output order equal to input order regardless of
// completion order. In strict mode the first failed feature aborts the
// run; otherwise failed features are dropped from the output and reported
// with their index and the cause.
func Process(fc *geojson.FeatureCollection, opts Options) (Metrics, error) {
	if opts.IDField == "" || opts.NameField == "" {
		return Metrics{}, fmt.Errorf("%w: identifier and name source fields must be configured", ErrMissingProperty)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	jobs := make(chan int, len(fc.Features))
	results := make([]featureResult, len(fc.Features))

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processFeature(fc.Features[i], i, opts)
			}
		}()
	}

	for i := range fc.Features {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	metrics := Metrics{Features: len(fc.Features)}
	kept := make([]*geojson.Feature, 0, len(fc.Features))

	for i, res := range results {
		if res.err != nil {
			if opts.Strict {
				return Metrics{}, fmt.Errorf("feature %d: %w", i, res.err)
			}

			metrics.Dropped++
			log.Error().
				Err(res.err).
				Int("feature", i).
				Msg("Feature excluded from output")
			continue
		}

		metrics.CoordsBefore += res.before
		metrics.CoordsAfter += res.after
		kept = append(kept, fc.Features[i])
	}

	fc.Features = kept

	return metrics, nil
}

func processFeature(f *geojson.Feature, idx int, opts Options) featureResult {
	var res featureResult

	id, err := f.PropertyString(opts.IDField)
	if err != nil || id == "" {
		res.err = fmt.Errorf("%w: %s", ErrMissingProperty, opts.IDField)
		return res
	}

	name, err := f.PropertyString(opts.NameField)
	if err != nil {
		res.err = fmt.Errorf("%w: %s", ErrMissingProperty, opts.NameField)
		return res
	}

	// Warnings emitted while simplifying carry the feature index, so a
	// degenerate ring can be traced back to its source feature.
	lg := log.With().Int("feature", idx).Logger()

	res.before = geo.CountCoordinates(f.Geometry)
	if err := simplifyGeometry(f.Geometry, opts.Tolerance, opts.Precision, lg); err != nil {
		res.err = err
		return res
	}
	res.after = geo.CountCoordinates(f.Geometry)

	// Only two properties survive: the join key for the aggregated data
	// and the display label for the tooltip.
	f.Properties = map[string]interface{}{
		"c": id,
		"n": name,
	}

	return res
}
