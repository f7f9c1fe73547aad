package domain

import (
	"maps"
	"slices"
)

// NoPackage marks a suite without a package. It is distinct from a package literally named "None".
const NoPackage Package = ""

// Package is the dotted package prefix of a suite's modules
type Package string

// IsSet reports whether the suite has a package
func (p Package) IsSet() bool {
	return p != NoPackage
}

// String renders the package for display, "None" when unset
func (p Package) String() string {
	if !p.IsSet() {
		return "None"
	}
	return string(p)
}

// NameSet is a set of fully-qualified test names
type NameSet map[string]struct{}

// NewNameSet creates a set holding names
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Add adds names to the set
func (s NameSet) Add(names ...string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

// Union adds every member of other to the set
func (s NameSet) Union(other NameSet) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Has reports membership
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order
func (s NameSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// SuiteSelection is a resolved suite: the names it should run plus its metadata
type SuiteSelection struct {
	Name       string
	Package    Package
	Tests      NameSet
	MaxWorkers int
}
