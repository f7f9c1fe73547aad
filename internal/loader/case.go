package loader

import (
	"context"
	"slices"
	"strings"

	"unishark/internal/domain"
	"unishark/internal/errors"
	"unishark/internal/registry"
)

// ErrNotRunnable is returned by Case.Run for cases discovered statically, which have no in-process body.
var ErrNotRunnable = errors.New("test case has no in-process body and must be run by an external engine")

// Case is a test method bound to a fresh fixture of its class, ready for an execution engine
type Case struct {
	name    string
	class   *registry.Class
	method  *registry.Method
	fixture any
}

// ID returns the fully-qualified dotted name the case was loaded from
func (c *Case) ID() string {
	return c.name
}

// Module returns the dotted path of the module that declares the case
func (c *Case) Module() string {
	if mod := c.class.Module(); mod != nil {
		return mod.Path
	}
	return strings.TrimSuffix(c.name, "."+c.class.Name+"."+c.method.Name)
}

// Class returns the name of the case's class
func (c *Case) Class() string {
	return c.class.Name
}

// Method returns the name of the bound test method
func (c *Case) Method() string {
	return c.method.Name
}

// Fixture returns the instance the method runs against
func (c *Case) Fixture() any {
	return c.fixture
}

// Runnable reports whether Run can execute the case in-process
func (c *Case) Runnable() bool {
	return c.method.Func != nil
}

// Run executes the bound method against the fixture.
func (c *Case) Run(ctx context.Context) error {
	if !c.Runnable() {
		return errors.WithStackTraceAndPrefix(ErrNotRunnable, "%s", c.name)
	}
	return c.method.Func(ctx, c.fixture)
}

// Suite is an unordered collection of loaded cases
type Suite struct {
	cases []*Case
}

// NewSuite creates a Suite holding cases
func NewSuite(cases ...*Case) *Suite {
	return &Suite{cases: cases}
}

// Add appends cases to the suite
func (s *Suite) Add(cases ...*Case) {
	s.cases = append(s.cases, cases...)
}

// Cases returns the loaded cases
func (s *Suite) Cases() []*Case {
	return slices.Clone(s.cases)
}

// Len returns the number of cases
func (s *Suite) Len() int {
	return len(s.cases)
}

// IDs returns the fully-qualified names of the cases, sorted
func (s *Suite) IDs() []string {
	ids := make([]string, 0, len(s.cases))
	for _, c := range s.cases {
		ids = append(ids, c.ID())
	}
	slices.Sort(ids)
	return ids
}

// LoadedSuite is the materialized form of a suite handed to an execution engine
type LoadedSuite struct {
	Package    domain.Package
	Suite      *Suite
	MaxWorkers int
}
