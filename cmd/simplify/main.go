package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/floodatlas/floodatlas/internal/simplify"

	"github.com/jessevdk/go-flags"
	geojson "github.com/paulmach/go.geojson"
)

type Options struct {
	Input     string  `short:"i" long:"in"        description:"Input GeoJSON file path. Reads from stdin if empty"`
	Output    string  `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Tolerance float64 `short:"t" long:"tolerance" description:"Maximum perpendicular deviation in degrees" default:"0.008"`
	Precision int     `short:"p" long:"precision" description:"Decimal digits kept per coordinate" default:"3"`
	IDField   string  `long:"id-field"            description:"Source property used as feature identifier" default:"DPTOMPIO"`
	NameField string  `long:"name-field"          description:"Source property used as display label" default:"MPIO_CNMBR"`
	Strict    bool    `long:"strict"              description:"Abort on the first invalid feature"`
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

	if opts.Tolerance <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --tolerance must be > 0")
		os.Exit(1)
	}
	if opts.Precision < 0 {
		fmt.Fprintln(os.Stderr, "Error: --precision must be >= 0")
		os.Exit(1)
	}

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	fc, err := geojson.UnmarshalFeatureCollection(inputData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing GeoJSON: %v\n", err)
		os.Exit(1)
	}

	metrics, err := simplify.Process(fc, simplify.Options{
		Tolerance: opts.Tolerance,
		Precision: opts.Precision,
		IDField:   opts.IDField,
		NameField: opts.NameField,
		Strict:    opts.Strict,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simplifying collection: %v\n", err)
		os.Exit(1)
	}

	outputData, err := json.Marshal(fc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(string(outputData))
	}

	fmt.Fprintf(os.Stderr, "Simplified %d features: %d -> %d coordinates (%.1f%% reduction, %d dropped)\n",
		metrics.Features, metrics.CoordsBefore, metrics.CoordsAfter, metrics.Reduction(), metrics.Dropped)
}
