package authflow

import "strings"

// DefaultNextPath is where a successful sign-in lands when no (or an
// unusable) next target was supplied.
const DefaultNextPath = "/dashboard"

// SanitizeNext validates a post-login redirect target. Only
// same-origin absolute paths pass: the value must start with a single
// "/" and not "//" (a protocol-relative URL would be an open
// redirect). Anything else falls back to DefaultNextPath.
func SanitizeNext(raw string) string {
	if raw == "" {
		return DefaultNextPath
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return DefaultNextPath
	}
	return raw
}
