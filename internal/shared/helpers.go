// Package shared provides common utility functions used across multiple
// packages in the condarecipe codebase.
package shared

import (
	"fmt"
	"strings"
)

// NormalizePackageName lowercases a conda package name and replaces
// underscores and dots with hyphens so index lookups are insensitive to
// the spelling used in the recipe.
func NormalizePackageName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(lower)
}

// MatchesBuildString reports whether a build string matches a pattern
// that may end in "*" ("py38*"). An empty pattern matches anything.
func MatchesBuildString(pattern string, build string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(build, strings.TrimSuffix(pattern, "*"))
	}
	return build == pattern
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}
