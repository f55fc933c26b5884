package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/floodatlas/floodatlas/internal/aggregate"
	"github.com/floodatlas/floodatlas/internal/config"
	"github.com/floodatlas/floodatlas/internal/dashboard"
	"github.com/floodatlas/floodatlas/internal/logger"
	"github.com/floodatlas/floodatlas/internal/server"
	"github.com/floodatlas/floodatlas/internal/simplify"

	"github.com/jessevdk/go-flags"
	geojson "github.com/paulmach/go.geojson"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config"    env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	GeoJSON    string  `short:"g" long:"geojson"   env:"GEOJSON_FILE" description:"Boundaries GeoJSON input (overrides config)"`
	Events     string  `short:"e" long:"events"    env:"EVENTS_FILE"  description:"Events CSV input (overrides config)"`
	OutDir     string  `short:"o" long:"out-dir"   env:"OUT_DIR"      description:"Output directory (overrides config)"`
	Tolerance  float64 `short:"t" long:"tolerance" description:"Simplification tolerance in degrees (overrides config)"`
	Precision  int     `long:"precision"           description:"Coordinate decimal digits (overrides config)" default:"-1"`
	Strict     bool    `long:"strict"              description:"Abort on the first invalid feature"`
	GeoOnly    bool    `long:"geojson-only"        description:"Run the geometry stage only"`
	DataOnly   bool    `long:"data-only"           description:"Run the aggregation stages only"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if os.IsNotExist(err) {
		log.Warn().Str("path", opts.ConfigFile).Msg("No configuration file, using defaults")
		cfg = config.Default()
	} else if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.GeoJSON != "" {
		cfg.GeoJSON = opts.GeoJSON
	}
	if opts.Events != "" {
		cfg.Events = opts.Events
	}
	if opts.OutDir != "" {
		cfg.OutDir = opts.OutDir
	}
	if opts.Tolerance > 0 {
		cfg.Simplify.Tolerance = opts.Tolerance
	}
	if opts.Precision >= 0 {
		cfg.Simplify.Precision = opts.Precision
	}
	if opts.Strict {
		cfg.Simplify.Strict = true
	}

	runGeo := true
	runData := true
	if opts.GeoOnly && !opts.DataOnly {
		runData = false
	} else if opts.DataOnly && !opts.GeoOnly {
		runGeo = false
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.OutDir).Msg("Failed to create output directory")
	}

	var geoBlob, dataBlob, statsBlob, evtBlob []byte

	if runGeo {
		geoBlob = simplifyStage(cfg)
	}
	if runData {
		dataBlob, statsBlob, evtBlob = aggregateStage(cfg)
	}

	if runGeo && runData {
		assembleStage(cfg, dashboard.Blobs{
			Geo:    string(geoBlob),
			Data:   string(dataBlob),
			Stats:  string(statsBlob),
			Events: string(evtBlob),
		})
	}

	log.Info().Str("dir", cfg.OutDir).Msg("Pipeline finished")
}

// simplifyStage reduces the boundary collection to the target viewing
// scale and writes the compact GeoJSON artifact.
func simplifyStage(cfg *config.Config) []byte {
	if cfg.GeoJSON == "" {
		log.Fatal().Msg("No boundaries GeoJSON configured")
	}

	raw, err := os.ReadFile(cfg.GeoJSON)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.GeoJSON).Msg("Failed to read boundaries")
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.GeoJSON).Msg("Failed to parse boundaries")
	}

	log.Info().
		Int("features", len(fc.Features)).
		Float64("tolerance", cfg.Simplify.Tolerance).
		Int("precision", cfg.Simplify.Precision).
		Msg("Simplifying boundaries")

	metrics, err := simplify.Process(fc, simplify.Options{
		Tolerance: cfg.Simplify.Tolerance,
		Precision: cfg.Simplify.Precision,
		IDField:   cfg.Properties.IDField,
		NameField: cfg.Properties.NameField,
		Strict:    cfg.Simplify.Strict,
		Workers:   cfg.Simplify.Workers,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Simplification failed")
	}

	blob, err := json.Marshal(fc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to serialize simplified boundaries")
	}

	writeArtifact(cfg.OutDir, server.GeoJSONFile, blob)

	log.Info().
		Int("features", metrics.Features).
		Int("dropped", metrics.Dropped).
		Int("coords_before", metrics.CoordsBefore).
		Int("coords_after", metrics.CoordsAfter).
		Str("reduction", percent(metrics.Reduction())).
		Int("bytes", len(blob)).
		Msg("Boundaries simplified")

	return blob
}

// aggregateStage rolls the event dataset up and writes the three data
// artifacts keyed by "year_month".
func aggregateStage(cfg *config.Config) (data, stats, evt []byte) {
	if cfg.Events == "" {
		log.Fatal().Msg("No events dataset configured")
	}

	f, err := os.Open(cfg.Events)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Events).Msg("Failed to open events dataset")
	}
	defer func() { _ = f.Close() }()

	records, err := aggregate.ReadRecords(f, aggregate.Columns{
		Code:     cfg.EventColumns.Code,
		Year:     cfg.EventColumns.Year,
		Month:    cfg.EventColumns.Month,
		Event:    cfg.EventColumns.Event,
		Persons:  cfg.EventColumns.Persons,
		Deaths:   cfg.EventColumns.Deaths,
		Families: cfg.EventColumns.Families,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read events dataset")
	}

	rollup := aggregate.Rollup(records)
	summaries, breakdowns := aggregate.Stats(records)

	data = marshalArtifact(rollup)
	stats = marshalArtifact(summaries)
	evt = marshalArtifact(breakdowns)

	writeArtifact(cfg.OutDir, server.DataFile, data)
	writeArtifact(cfg.OutDir, server.StatsFile, stats)
	writeArtifact(cfg.OutDir, server.BreakdownFile, evt)

	log.Info().
		Int("records", len(records)).
		Int("municipalities", len(rollup)).
		Int("periods", len(summaries)).
		Msg("Events aggregated")

	return data, stats, evt
}

// assembleStage embeds the blobs into the HTML template and writes the
// final self-contained artifact.
func assembleStage(cfg *config.Config, blobs dashboard.Blobs) {
	page, err := dashboard.Assemble(blobs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to assemble dashboard")
	}

	writeArtifact(cfg.OutDir, server.DashboardFile, page)

	log.Info().
		Int("bytes", len(page)).
		Str("path", filepath.Join(cfg.OutDir, server.DashboardFile)).
		Msg("Dashboard assembled")
}

func marshalArtifact(v interface{}) []byte {
	blob, err := json.Marshal(v)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to serialize artifact")
	}
	return blob
}

func writeArtifact(dir, name string, data []byte) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write artifact")
	}
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
