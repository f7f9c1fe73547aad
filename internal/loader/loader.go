// Package loader materializes resolved test names into runnable cases and drives the whole configuration load.
package loader

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"unishark/internal/discovery"
	"unishark/internal/domain"
	"unishark/internal/errors"
	"unishark/internal/logging"
	"unishark/internal/naming"
	"unishark/internal/registry"
	"unishark/internal/selection"
)

// Loader resolves suite configuration and loads test cases from an importer
type Loader struct {
	importer registry.Importer
	resolver *selection.Resolver
	logger   *logrus.Entry
	prefix   string
	strict   bool
	onLoaded func(name string, suite LoadedSuite)
}

// Option configures a Loader
type Option func(*Loader)

// WithMethodPrefix sets the prefix that marks a method as a test
func WithMethodPrefix(prefix string) Option {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Entry) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithStrict selects whether the first configuration error aborts the whole load (true, the default) or only the
// affected suite.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithSuiteLoaded registers a callback invoked after each suite is loaded
func WithSuiteLoaded(fn func(name string, suite LoadedSuite)) Option {
	return func(l *Loader) {
		l.onLoaded = fn
	}
}

// New creates a Loader that introspects and imports modules through importer
func New(importer registry.Importer, opts ...Option) *Loader {
	l := &Loader{
		importer: importer,
		logger:   logging.Discard(),
		prefix:   discovery.DefaultMethodPrefix,
		strict:   true,
	}
	for _, opt := range opts {
		opt(l)
	}

	introspector := discovery.NewIntrospector(importer,
		discovery.WithMethodPrefix(l.prefix),
		discovery.WithLogger(l.logger),
	)
	l.resolver = selection.NewResolver(introspector, l.logger)

	return l
}

// LoadFromConfig resolves every suite listed in conf and loads its cases. The result maps suite names to their loaded
// form. In lenient mode suites that fail are left out and their errors are returned together with the rest.
func (l *Loader) LoadFromConfig(conf *domain.TestConfig) (map[string]LoadedSuite, error) {
	selections, resolveErr := l.Resolve(conf)
	if resolveErr != nil && l.strict {
		return nil, resolveErr
	}

	suites, loadErr := l.LoadSelections(selections)
	if loadErr != nil && l.strict {
		return nil, loadErr
	}

	var merr *multierror.Error
	if resolveErr != nil {
		merr = multierror.Append(merr, resolveErr)
	}
	if loadErr != nil {
		merr = multierror.Append(merr, loadErr)
	}

	return suites, merr.ErrorOrNil()
}

// Resolve builds the name selection of every suite listed in conf, without loading cases.
func (l *Loader) Resolve(conf *domain.TestConfig) ([]*domain.SuiteSelection, error) {
	if l.strict {
		return l.resolver.ParseTests(conf)
	}

	var (
		merr       *multierror.Error
		selections []*domain.SuiteSelection
	)

	for _, name := range conf.Test.Suites {
		sel, err := l.resolver.BuildSuiteByName(conf, name)
		if err != nil {
			l.logger.Errorf("Skipping test suite %q: %v", name, err)
			merr = multierror.Append(merr, err)
			continue
		}
		selections = append(selections, sel)
	}

	return selections, merr.ErrorOrNil()
}

// LoadSelections loads the cases of already resolved suites.
func (l *Loader) LoadSelections(selections []*domain.SuiteSelection) (map[string]LoadedSuite, error) {
	var merr *multierror.Error
	suites := make(map[string]LoadedSuite, len(selections))

	for _, sel := range selections {
		suite, err := l.LoadMany(sel.Tests.Sorted())
		if err != nil {
			err = errors.WithStackTraceAndPrefix(err, "suite %q", sel.Name)
			if l.strict {
				return nil, err
			}
			l.logger.Errorf("Skipping test suite %q: %v", sel.Name, err)
			merr = multierror.Append(merr, err)
			continue
		}

		loaded := LoadedSuite{Package: sel.Package, Suite: suite, MaxWorkers: sel.MaxWorkers}
		suites[sel.Name] = loaded
		l.logger.Infof("Created test suite %q successfully from package %q.", sel.Name, sel.Package)

		if l.onLoaded != nil {
			l.onLoaded(sel.Name, loaded)
		}
	}

	return suites, merr.ErrorOrNil()
}

// LoadMany loads each name independently. Names that do not resolve to an instance test method of a test-case class
// are dropped.
func (l *Loader) LoadMany(names []string) (*Suite, error) {
	suite := NewSuite()

	for _, name := range names {
		c, err := l.LoadOne(name)
		if err != nil {
			return nil, err
		}
		if c != nil {
			suite.Add(c)
		}
	}

	l.logger.Infof("Loaded %d tests.", suite.Len())
	return suite, nil
}

// LoadOne resolves a fully-qualified name to a case. The longest importable prefix of name is the module; the
// remaining segments are looked up as attributes. It returns (nil, nil) when the name is a function that cannot be
// loaded as a case: a static method, a method of an abstract class, or a function whose owner is not a test-case
// class.
func (l *Loader) LoadOne(name string) (*Case, error) {
	parts := naming.Split(name)

	mod, consumed, err := l.importLongestPrefix(name, parts)
	if err != nil {
		return nil, err
	}

	var parent, obj any = nil, mod
	for i, part := range parts[consumed:] {
		next, ok := attr(obj, part)
		if !ok {
			container := strings.Join(parts[:consumed+i], naming.Separator)
			return nil, errors.WithStackTrace(errors.NotFoundError{Name: name, Missing: part, Container: container})
		}
		parent, obj = obj, next
	}

	method, ok := obj.(*registry.Method)
	if !ok {
		return nil, errors.WithStackTrace(errors.TypeError{Name: name, Kind: kindOf(obj)})
	}

	class, ok := parent.(*registry.Class)
	if !ok || !class.TestCase {
		l.logger.Debugf("Skipping %s: not declared on a test-case class", name)
		return nil, nil
	}

	if class.Abstract {
		l.logger.Debugf("Skipping %s: abstract class", name)
		return nil, nil
	}

	if method.Static {
		l.logger.Debugf("Skipping %s: static method", name)
		return nil, nil
	}

	var fixture any
	if class.New != nil {
		fixture = class.New()
	}

	return &Case{name: name, class: class, method: method, fixture: fixture}, nil
}

func (l *Loader) importLongestPrefix(name string, parts []string) (*registry.Module, int, error) {
	var lastErr error

	for n := len(parts); n > 0; n-- {
		mod, err := l.importer.Import(strings.Join(parts[:n], naming.Separator))
		if err == nil {
			return mod, n, nil
		}
		if !registry.IsModuleNotFound(err) {
			return nil, 0, err
		}
		lastErr = err
	}

	return nil, 0, errors.WithStackTrace(errors.ImportError{Name: name, Err: errors.Unwrap(lastErr)})
}

func attr(obj any, name string) (any, bool) {
	switch o := obj.(type) {
	case *registry.Module:
		return o.Attr(name)
	case *registry.Class:
		return o.Attr(name)
	default:
		return nil, false
	}
}

func kindOf(obj any) string {
	switch obj.(type) {
	case *registry.Module:
		return "module"
	case *registry.Class:
		return "class"
	default:
		return fmt.Sprintf("value of type %T", obj)
	}
}
