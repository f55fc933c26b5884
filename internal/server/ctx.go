package server

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Artifact names the pipeline writes into the output directory. The
// handlers serve only these, nothing else in the directory is reachable.
const (
	DashboardFile = "dashboard.html"
	GeoJSONFile   = "municipalities.geojson"
	DataFile      = "data.json"
	StatsFile     = "stats.json"
	BreakdownFile = "breakdown.json"
)

var artifactTypes = map[string]string{
	GeoJSONFile:   "application/geo+json",
	DataFile:      "application/json",
	StatsFile:     "application/json",
	BreakdownFile: "application/json",
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Dir string
}

// NewServerContext validates the output directory and reports which
// artifacts are present. Missing artifacts are not fatal: the pipeline
// may still be producing them.
func NewServerContext(dir string) *ServerContext {
	if _, err := os.Stat(filepath.Join(dir, DashboardFile)); err != nil {
		log.Warn().
			Str("dir", dir).
			Str("file", DashboardFile).
			Msg("Dashboard not found, run the pipeline first")
	}

	for name := range artifactTypes {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			log.Debug().Str("file", name).Msg("Artifact not present")
		} else {
			log.Debug().Str("file", name).Msg("Artifact found")
		}
	}

	log.Info().Str("dir", dir).Msg("Server context initialized")

	return &ServerContext{Dir: dir}
}
