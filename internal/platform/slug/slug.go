package slug

import (
	"regexp"
	"strings"
)

const maxLen = 64

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a title into a lowercase file-name-safe token, falling back to
// fallback when nothing usable is left.
func Make(input, fallback string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return fallback
	}
	return s
}
