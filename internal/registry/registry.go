// Package registry holds the test registration model: modules own classes, classes own methods, and every object can
// be looked up by dotted path without running any test code.
//
// Test authors register their code explicitly:
//
//	reg := registry.New()
//	mod := reg.Module("billing.invoices")
//	cls := mod.TestCase("InvoiceTest", func() any { return &invoiceFixture{} })
//	cls.Test("test_total", func(ctx context.Context, fixture any) error { ... })
//
// Declaration order is the registration order, which the introspector reports as source position.
package registry

import (
	"strings"
	"sync"

	"unishark/internal/errors"
)

// Importer returns the registered contents of a module by its dotted path. Implementations return a
// errors.ModuleNotFoundError when the module is unknown to them.
type Importer interface {
	Import(path string) (*Module, error)
}

// Registry is an in-memory Importer populated through registration calls.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Module returns the module registered under path, creating it on first use.
func (r *Registry) Module(path string) *Module {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mod, ok := r.modules[path]; ok {
		return mod
	}

	mod := NewModule(path)
	r.modules[path] = mod
	return mod
}

// Add registers a module built elsewhere, replacing any module with the same path.
func (r *Registry) Add(mod *Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[mod.Path] = mod
}

// Import implements Importer.
func (r *Registry) Import(path string) (*Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[path]
	if !ok {
		return nil, errors.WithStackTrace(errors.ModuleNotFoundError{Module: path})
	}
	return mod, nil
}

// Importers tries each importer in order and returns the first module found.
type Importers []Importer

// Import implements Importer. Errors other than a missing module stop the search.
func (is Importers) Import(path string) (*Module, error) {
	for _, importer := range is {
		mod, err := importer.Import(path)
		if err == nil {
			return mod, nil
		}
		if !IsModuleNotFound(err) {
			return nil, err
		}
	}

	return nil, errors.WithStackTrace(errors.ModuleNotFoundError{Module: path})
}

// IsModuleNotFound reports whether err says that a module does not exist.
func IsModuleNotFound(err error) bool {
	var notFound errors.ModuleNotFoundError
	return errors.As(err, &notFound)
}

// ModulePath joins a package and a module name into the path an Importer understands.
func ModulePath(pkg, module string) string {
	if pkg == "" {
		return module
	}
	return strings.Join([]string{pkg, module}, ".")
}
