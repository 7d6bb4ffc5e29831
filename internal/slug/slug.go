package slug

import (
	"regexp"
	"strings"

	goslug "github.com/goliatone/go-slug"
)

var separatorRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from free text. It lower-cases the
// input, collapses every run of characters outside [a-z0-9] into a single
// hyphen and trims hyphens from both ends. Input with no letters or digits
// yields an empty string.
//
// Folder slugs, page slugs and heading anchors all go through this function.
func Slugify(text string) string {
	lowered := strings.ToLower(text)
	replaced := separatorRuns.ReplaceAllString(lowered, "-")
	return strings.Trim(replaced, "-")
}

// Valid reports whether value is a non-empty slug that Slugify would leave
// untouched and that satisfies the go-slug validity rules.
func Valid(value string) bool {
	if value == "" {
		return false
	}
	if Slugify(value) != value {
		return false
	}
	return goslug.IsValid(value)
}
