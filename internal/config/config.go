// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Simplify holds the geometry engine tuning.
type Simplify struct {
	Tolerance float64 `yaml:"tolerance"`
	Precision int     `yaml:"precision"`
	Strict    bool    `yaml:"strict,omitempty"`
	Workers   int     `yaml:"workers,omitempty"`
}

// Properties names the source fields kept on each output feature.
type Properties struct {
	IDField   string `yaml:"id_field"`
	NameField string `yaml:"name_field"`
}

// EventColumns maps the event dataset headers.
type EventColumns struct {
	Code     string `yaml:"code"`
	Year     string `yaml:"year"`
	Month    string `yaml:"month"`
	Event    string `yaml:"event"`
	Persons  string `yaml:"persons,omitempty"`
	Deaths   string `yaml:"deaths,omitempty"`
	Families string `yaml:"families,omitempty"`
}

// Config represents the root configuration file structure.
type Config struct {
	GeoJSON      string       `yaml:"geojson"`
	Events       string       `yaml:"events"`
	OutDir       string       `yaml:"out_dir,omitempty"`
	Simplify     Simplify     `yaml:"simplify"`
	Properties   Properties   `yaml:"properties"`
	EventColumns EventColumns `yaml:"events_columns"`
}

// Default returns the stock tuning and the field names of the DIVIPOLA
// municipality dataset the pipeline was built around.
func Default() *Config {
	return &Config{
		OutDir: "dist",
		Simplify: Simplify{
			Tolerance: 0.008,
			Precision: 3,
		},
		Properties: Properties{
			IDField:   "DPTOMPIO",
			NameField: "MPIO_CNMBR",
		},
		EventColumns: EventColumns{
			Code:     "DIVIPOLA",
			Year:     "AÑO",
			Month:    "MES",
			Event:    "EVENTO",
			Persons:  "PERSONAS",
			Deaths:   "MUERTOS",
			Families: "FAMILIAS",
		},
	}
}

// Load reads and parses the YAML configuration file from the specified
// path. File values overlay the defaults, so partial configs stay valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
