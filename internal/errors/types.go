package errors

import (
	"fmt"
	"strings"
)

// FormatError is returned when a dotted name has the wrong number of segments for its context.
type FormatError struct {
	Name     string
	Expected string
}

func (err FormatError) Error() string {
	return fmt.Sprintf("%q does not comply with: %q", err.Name, err.Expected)
}

// ModuleNotFoundError is returned when no importer knows the given module path.
type ModuleNotFoundError struct {
	Module string
}

func (err ModuleNotFoundError) Error() string {
	return fmt.Sprintf("no module named %q", err.Module)
}

// ImportError is returned when none of the prefixes of a dotted test name can be imported.
type ImportError struct {
	Name string
	Err  error
}

func (err ImportError) Error() string {
	return fmt.Sprintf("cannot import any module for %q: %v", err.Name, err.Err)
}

func (err ImportError) Unwrap() error {
	return err.Err
}

// NotFoundError is returned when a name refers to something that does not exist. Missing is the exact identifier that
// could not be found and Container is where it was looked up.
type NotFoundError struct {
	Name      string
	Missing   string
	Container string
	// Op describes what was attempted, e.g. "exclude" or "resolve".
	Op string
}

func (err NotFoundError) Error() string {
	op := err.Op
	if op == "" {
		op = "resolve"
	}

	if err.Container == "" {
		return fmt.Sprintf("cannot %s %q: %q not found in modules list", op, err.Name, err.Missing)
	}

	return fmt.Sprintf("cannot %s %q: %q not found in %q", op, err.Name, err.Missing, err.Container)
}

// ValidationError is returned when a configuration value is outside of its legal set.
type ValidationError struct {
	Field   string
	Value   any
	Allowed []string
	Reason  string
}

func (err ValidationError) Error() string {
	if len(err.Allowed) > 0 {
		return fmt.Sprintf("invalid %s %v: must be one of [%s]", err.Field, err.Value, strings.Join(err.Allowed, ", "))
	}

	return fmt.Sprintf("invalid %s %v: %s", err.Field, err.Value, err.Reason)
}

// TypeError is returned when a resolved dotted name points to something that is not a test function.
type TypeError struct {
	Name string
	Kind string
}

func (err TypeError) Error() string {
	return fmt.Sprintf("%q resolves to a %s, not a test function", err.Name, err.Kind)
}
