// Package markup sanitizes and strips user-submitted rich text.
package markup

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizePolicy = bluemonday.UGCPolicy()
	stripPolicy    = bluemonday.StrictPolicy()
)

// Sanitize removes script injection vectors from rich-text markup while
// preserving common formatting elements. Every read path that renders
// user-submitted rich text must pass it through Sanitize first.
func Sanitize(html string) string {
	return sanitizePolicy.Sanitize(html)
}

// Strip removes all markup, returning plain text with collapsed whitespace.
func Strip(html string) string {
	return strings.Join(strings.Fields(stripPolicy.Sanitize(html)), " ")
}
