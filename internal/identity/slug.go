// Package identity derives stable slugs and namespaced IDs from display names.
package identity

import (
	"regexp"
	"strings"
)

// Namespace prefixes every generated company ID.
const Namespace = "a16z"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts text to a URL-safe slug: lowercase, every run of
// non-alphanumeric characters collapsed to a single hyphen, no leading or
// trailing hyphens. Idempotent. Returns "" for input with no alphanumerics;
// callers must treat an empty slug as an invalid identity.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// MakeID prefixes a slug with the fixed namespace.
func MakeID(slug string) string {
	return Namespace + ":" + slug
}
