// Package dashboard assembles the self-contained HTML artifact.
package dashboard

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/floodatlas/floodatlas/assets"
)

// Blobs carries the four compact JSON payloads embedded into the page:
// the simplified boundaries and the aggregated data keyed by "year_month".
type Blobs struct {
	Geo    string
	Data   string
	Stats  string
	Events string
}

type pageData struct {
	CSS    string
	JS     string
	Geo    string
	Data   string
	Stats  string
	Events string
}

// Assemble renders the dashboard: CSS and JS are minified separately,
// injected together with the data blobs into the page template, and the
// final document is minified once more. The result is a single file that
// only reaches the network for the Leaflet CDN and map tiles.
func Assemble(b Blobs) ([]byte, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)

	cssMin, err := m.String("text/css", string(assets.StyleCSS))
	if err != nil {
		return nil, fmt.Errorf("minify css: %w", err)
	}

	jsMin, err := m.String("text/javascript", string(assets.ScriptJS))
	if err != nil {
		return nil, fmt.Errorf("minify js: %w", err)
	}

	tmpl, err := template.New("dashboard").Parse(string(assets.PageTemplate))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		CSS:    cssMin,
		JS:     jsMin,
		Geo:    b.Geo,
		Data:   b.Data,
		Stats:  b.Stats,
		Events: b.Events,
	})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	out, err := m.String("text/html", buf.String())
	if err != nil {
		return nil, fmt.Errorf("minify html: %w", err)
	}

	return []byte(out), nil
}
