// Package templates embeds the HTML templates of the card sheet
package templates

import "embed"

// FS holds every *.html template
//
//go:embed *.html
var FS embed.FS
