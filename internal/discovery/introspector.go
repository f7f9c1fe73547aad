package discovery

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"unishark/internal/domain"
	"unishark/internal/errors"
	"unishark/internal/logging"
	"unishark/internal/registry"
)

// DefaultMethodPrefix selects test methods by name
const DefaultMethodPrefix = "test"

// MethodInfo is a method name and its declaration position
type MethodInfo struct {
	Name string
	Line int
}

// ClassInfo is a class found in a module
type ClassInfo struct {
	Name    string
	Line    int
	Methods []MethodInfo
}

// ModuleInfo lists the classes of one module in declaration order
type ModuleInfo struct {
	Path    string
	Classes []ClassInfo
}

// Introspector reports the classes and methods of a module without running any of its tests
type Introspector struct {
	importer registry.Importer
	prefix   string
	logger   *logrus.Entry
}

// Option configures an Introspector
type Option func(*Introspector)

// WithMethodPrefix sets the prefix that marks a method as a test
func WithMethodPrefix(prefix string) Option {
	return func(in *Introspector) {
		in.prefix = prefix
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Entry) Option {
	return func(in *Introspector) {
		in.logger = logger
	}
}

// NewIntrospector creates an Introspector reading modules from importer
func NewIntrospector(importer registry.Importer, opts ...Option) *Introspector {
	in := &Introspector{
		importer: importer,
		prefix:   DefaultMethodPrefix,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Introspect resolves pkg.module and lists its classes and their methods.
func (in *Introspector) Introspect(pkg domain.Package, module string) (*ModuleInfo, error) {
	path := registry.ModulePath(string(pkg), module)

	mod, err := in.importer.Import(path)
	if err != nil {
		if registry.IsModuleNotFound(err) {
			return nil, err
		}
		return nil, errors.WithStackTraceAndPrefix(err, "introspect %s", path)
	}

	info := &ModuleInfo{Path: path}
	for _, cls := range mod.Classes() {
		classInfo := ClassInfo{Name: cls.Name, Line: cls.Line}
		for _, method := range cls.Methods() {
			classInfo.Methods = append(classInfo.Methods, MethodInfo{Name: method.Name, Line: method.Line})
		}
		info.Classes = append(info.Classes, classInfo)
	}

	in.logger.Debugf("Introspected module %s: %d class(es)", path, len(info.Classes))
	return info, nil
}

// Methods returns the test methods of class using the configured prefix
func (in *Introspector) Methods(class ClassInfo) []string {
	return MethodsOf(class, in.prefix)
}

// MethodsOf returns the names of class's methods that start with prefix, in declaration order.
func MethodsOf(class ClassInfo, prefix string) []string {
	methods := make([]MethodInfo, len(class.Methods))
	copy(methods, class.Methods)
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].Line < methods[j].Line
	})

	var names []string
	for _, method := range methods {
		if strings.HasPrefix(method.Name, prefix) {
			names = append(names, method.Name)
		}
	}
	return names
}
