package composer

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	disallowedChars = regexp.MustCompile(`[^a-z0-9_-]`)
)

// Sanitize turns an entity name into a folder name: lower case, runs of
// whitespace become one underscore, anything outside [a-z0-9_-] is dropped.
func Sanitize(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "_")
	return disallowedChars.ReplaceAllString(s, "")
}
