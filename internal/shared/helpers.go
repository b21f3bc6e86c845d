// Package shared provides common utility functions used across multiple
// packages in the license-audit codebase.
package shared

import "strings"

// NormalizeName lowercases a Python package name and replaces underscores
// and dots with hyphens, following PEP 503 normalization. Names normalized
// this way are safe to use as deduplication keys.
func NormalizeName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(lower)
}

// CollapseSpace trims a string and folds internal whitespace runs into
// single spaces, so license identifiers match regardless of formatting.
func CollapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
