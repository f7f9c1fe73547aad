// Package naming validates and splits dotted test identifiers.
package naming

import (
	"strings"

	"unishark/internal/errors"
)

const (
	// Separator joins the segments of a dotted name.
	Separator = "."

	classFormat  = "module.class"
	methodFormat = "module.class.method"
)

// ParseClassName splits a "module.class" name.
func ParseClassName(name string) (module, class string, err error) {
	parts, err := split(name, 2, classFormat)
	if err != nil {
		return "", "", err
	}

	return parts[0], parts[1], nil
}

// ParseMethodName splits a "module.class.method" name.
func ParseMethodName(name string) (module, class, method string, err error) {
	parts, err := split(name, 3, methodFormat)
	if err != nil {
		return "", "", "", err
	}

	return parts[0], parts[1], parts[2], nil
}

// Join joins parts with the separator, skipping an empty prefix.
func Join(prefix string, parts ...string) string {
	if prefix == "" {
		return strings.Join(parts, Separator)
	}

	if len(parts) == 0 {
		return prefix
	}

	return prefix + Separator + strings.Join(parts, Separator)
}

// Split splits a dotted name into its segments.
func Split(name string) []string {
	return strings.Split(name, Separator)
}

func split(name string, arity int, format string) ([]string, error) {
	parts := strings.Split(name, Separator)
	if len(parts) != arity {
		return nil, errors.WithStackTrace(errors.FormatError{Name: name, Expected: format})
	}

	for _, part := range parts {
		if part == "" {
			return nil, errors.WithStackTrace(errors.FormatError{Name: name, Expected: format})
		}
	}

	return parts, nil
}
