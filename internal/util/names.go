// Package util has the field-name normalization helpers shared between the
// open-fields listing and the suggestion composer. The backend publishes
// open field names as lowercased snake_case display names; dataset fields
// carry the original display names, so lookups normalize first.
package util

import (
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[^\w\s_]`)
	camelBoundary = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerToUpper  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// CleanName removes anything that is not valid in a field identifier.
func CleanName(name string) string {
	return strings.TrimSpace(invalidChars.ReplaceAllString(name, " "))
}

// CamelToSnake converts a camelCase field name to snake_case.
func CamelToSnake(name string) string {
	name = camelBoundary.ReplaceAllString(CleanName(name), "${1}_${2}")
	return strings.ToLower(lowerToUpper.ReplaceAllString(name, "${1}_${2}"))
}

// DisplayNameKey is the lookup key for a human-readable display name, the
// exact form the open-fields listing publishes.
func DisplayNameKey(displayName string) string {
	return strings.ToLower(strings.ReplaceAll(displayName, " ", "_"))
}
