// Package assets embeds the static dashboard sources.
package assets

import _ "embed"

//go:embed dashboard.html.tpl
var PageTemplate []byte

//go:embed style.css
var StyleCSS []byte

//go:embed script.js
var ScriptJS []byte
