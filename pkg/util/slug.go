package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a display name. Whitespace becomes
// hyphens, anything that is not a letter, digit or hyphen is stripped,
// hyphen runs collapse, and the result is lowercased.
func Slugify(name string) string {
	slug := strings.Join(strings.Fields(name), "-")
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}
