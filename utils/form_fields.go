package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanField strips markup and surrounding whitespace from a submitted text field
// and collapses internal runs of whitespace
func CleanField(value string) string {
	// StrictPolicy escapes what it keeps, the template escapes again on output
	sanitized := html.UnescapeString(strictPolicy.Sanitize(value))
	return strings.Join(strings.Fields(sanitized), " ")
}

// MissingFields returns the labels whose values are empty
func MissingFields(fields map[string]string, order []string) []string {
	var missing []string
	for _, label := range order {
		if fields[label] == "" {
			missing = append(missing, label)
		}
	}
	return missing
}
