package selection

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"unishark/internal/domain"
	"unishark/internal/errors"
)

// DefaultMaxWorkers is used when a suite does not set max_workers
const DefaultMaxWorkers = 1

// BuildSuite resolves every enabled group of suite and unions their names. Groups run in key order so the first
// reported error does not depend on map iteration.
func (r *Resolver) BuildSuite(name string, suite domain.SuiteConfig) (*domain.SuiteSelection, error) {
	pkg := domain.Package(suite.Package)

	maxWorkers, err := ParseMaxWorkers(suite.MaxWorkers)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "suite %q", name)
	}

	tests := make(domain.NameSet)
	for _, key := range slices.Sorted(maps.Keys(suite.Groups)) {
		names, err := r.ResolveGroup(pkg, suite.Groups[key])
		if err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "suite %q, group %q", name, key)
		}
		tests.Union(names)
	}

	if len(tests) == 0 {
		r.logger.Warnf("Test suite %q is empty.", name)
	}

	return &domain.SuiteSelection{
		Name:       name,
		Package:    pkg,
		Tests:      tests,
		MaxWorkers: maxWorkers,
	}, nil
}

// ParseTests builds every suite listed under test.suites, in that order.
func (r *Resolver) ParseTests(conf *domain.TestConfig) ([]*domain.SuiteSelection, error) {
	selections := make([]*domain.SuiteSelection, 0, len(conf.Test.Suites))

	for _, name := range conf.Test.Suites {
		sel, err := r.BuildSuiteByName(conf, name)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}

	r.logger.Debugf("Parsed test config: %d suite(s)", len(selections))
	r.logger.Info("Parsed test config successfully.")
	return selections, nil
}

// BuildSuiteByName looks up name in conf.Suites and builds it.
func (r *Resolver) BuildSuiteByName(conf *domain.TestConfig, name string) (*domain.SuiteSelection, error) {
	suite, ok := conf.Suites[name]
	if !ok {
		return nil, errors.WithStackTrace(errors.ValidationError{
			Field:  "suite",
			Value:  fmt.Sprintf("%q", name),
			Reason: "listed in test.suites but not defined under suites",
		})
	}
	return r.BuildSuite(name, suite)
}

// ParseMaxWorkers reads a max_workers value. Unset means DefaultMaxWorkers; integers, integral floats and numeric
// strings are accepted. No upper bound is enforced here.
func ParseMaxWorkers(raw any) (int, error) {
	var n int

	switch v := raw.(type) {
	case nil:
		return DefaultMaxWorkers, nil
	case int:
		n = v
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, invalidMaxWorkers(raw, "out of range")
		}
		n = int(v)
	case uint64:
		if v > math.MaxInt {
			return 0, invalidMaxWorkers(raw, "out of range")
		}
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, invalidMaxWorkers(raw, "must be an integer")
		}
		if v < 1 {
			return 0, invalidMaxWorkers(raw, "must be at least 1")
		}
		// float64(math.MaxInt) rounds up to 2^63, which int cannot hold
		if v >= float64(math.MaxInt) {
			return 0, invalidMaxWorkers(raw, "out of range")
		}
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if errors.Is(err, strconv.ErrRange) {
			return 0, invalidMaxWorkers(raw, "out of range")
		}
		if err != nil {
			return 0, invalidMaxWorkers(raw, "must be an integer")
		}
		n = parsed
	default:
		return 0, invalidMaxWorkers(raw, "must be an integer")
	}

	if n < 1 {
		return 0, invalidMaxWorkers(raw, "must be at least 1")
	}
	return n, nil
}

func invalidMaxWorkers(raw any, reason string) error {
	return errors.WithStackTrace(errors.ValidationError{Field: "max_workers", Value: raw, Reason: reason})
}
