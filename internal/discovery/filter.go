package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows lists of fully-qualified test names for display
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the dotted names matching pattern.
// Supports patterns like "*.LoginTest.*" or "*payment*"; a pattern without wildcards matches as a substring.
func (f *Filter) FilterByName(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}

	var filtered []string

	for _, name := range names {
		// filepath.Match treats '.' as an ordinary character, so '*' spans segments
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			filtered = append(filtered, name)
			continue
		}

		if strings.ContainsAny(pattern, "*?") {
			if matchParts(name, pattern) {
				filtered = append(filtered, name)
			}
			continue
		}

		if strings.Contains(name, pattern) {
			filtered = append(filtered, name)
		}
	}

	return filtered
}

// matchParts reports whether every non-empty wildcard-separated part of pattern occurs in name, in order.
func matchParts(name, pattern string) bool {
	parts := strings.FieldsFunc(pattern, func(r rune) bool { return r == '*' || r == '?' })
	if len(parts) == 0 {
		return false
	}

	rest := name
	for _, part := range parts {
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return true
}
