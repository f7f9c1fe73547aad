package registry

import (
	"context"
	"sync"
)

// MethodFunc is the body of a test. Instance methods receive the fixture built by their class; static methods and
// module-level functions receive nil.
type MethodFunc func(ctx context.Context, fixture any) error

// Method is a function declared on a class or at module level
type Method struct {
	Name   string
	Static bool
	// Line is the declaration position used to order methods.
	Line int
	Func MethodFunc
}

// Class groups methods. Only concrete classes marked as test cases can produce cases.
type Class struct {
	Name string
	// TestCase is set for classes that descend from a test-case base, directly or through their parents.
	TestCase bool
	// Abstract classes are never instantiated, even when they are test cases.
	Abstract bool
	// Parent is the declared base class as written in the source, if any.
	Parent string
	Line   int
	// New builds a fresh fixture for each loaded case. May be nil.
	New func() any

	module  *Module
	methods []*Method
	index   map[string]*Method
}

// Module owns classes, module-level functions and plain values
type Module struct {
	Path string

	mu       sync.Mutex
	classes  []*Class
	classIdx map[string]*Class
	funcs    map[string]*Method
	values   map[string]any
	nextLine int
}

// NewModule creates an empty module
func NewModule(path string) *Module {
	return &Module{
		Path:     path,
		classIdx: make(map[string]*Class),
		funcs:    make(map[string]*Method),
		values:   make(map[string]any),
	}
}

func (m *Module) line() int {
	m.nextLine++
	return m.nextLine
}

// TestCase registers a test-case class whose fixtures are built by newFixture.
func (m *Module) TestCase(name string, newFixture func() any) *Class {
	cls := m.Class(name)
	cls.TestCase = true
	cls.New = newFixture
	return cls
}

// Class registers a plain class, or returns the class already registered under name.
func (m *Module) Class(name string) *Class {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cls, ok := m.classIdx[name]; ok {
		return cls
	}

	cls := &Class{Name: name, Line: m.line(), module: m, index: make(map[string]*Method)}
	m.classes = append(m.classes, cls)
	m.classIdx[name] = cls
	return cls
}

// AddClass attaches a class built elsewhere, keeping its Line.
func (m *Module) AddClass(cls *Class) *Class {
	m.mu.Lock()
	defer m.mu.Unlock()

	cls.module = m
	if cls.index == nil {
		cls.index = make(map[string]*Method)
	}
	if cls.Line > m.nextLine {
		m.nextLine = cls.Line
	}
	if _, ok := m.classIdx[cls.Name]; !ok {
		m.classes = append(m.classes, cls)
	}
	m.classIdx[cls.Name] = cls
	return cls
}

// Func registers a module-level function.
func (m *Module) Func(name string, fn MethodFunc) *Method {
	m.mu.Lock()
	defer m.mu.Unlock()

	method := &Method{Name: name, Line: m.line(), Func: fn}
	m.funcs[name] = method
	return method
}

// AddFunc attaches a module-level function built elsewhere, keeping its Line.
func (m *Module) AddFunc(method *Method) *Method {
	m.mu.Lock()
	defer m.mu.Unlock()

	if method.Line > m.nextLine {
		m.nextLine = method.Line
	}
	m.funcs[method.Name] = method
	return method
}

// Value registers a module-level value that is not callable.
func (m *Module) Value(name string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[name] = v
}

// Classes returns the module's classes in declaration order.
func (m *Module) Classes() []*Class {
	m.mu.Lock()
	defer m.mu.Unlock()

	classes := make([]*Class, len(m.classes))
	copy(classes, m.classes)
	return classes
}

// Attr looks up a class, function or value declared in the module.
func (m *Module) Attr(name string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cls, ok := m.classIdx[name]; ok {
		return cls, true
	}
	if fn, ok := m.funcs[name]; ok {
		return fn, true
	}
	if v, ok := m.values[name]; ok {
		return v, true
	}
	return nil, false
}

// Test registers an instance test method.
func (c *Class) Test(name string, fn MethodFunc) *Class {
	c.AddMethod(&Method{Name: name, Func: fn})
	return c
}

// Static registers a static method. Static methods are never loaded as cases.
func (c *Class) Static(name string, fn MethodFunc) *Class {
	c.AddMethod(&Method{Name: name, Static: true, Func: fn})
	return c
}

// AddMethod attaches a method. A zero Line is replaced by the next declaration position of the module.
func (c *Class) AddMethod(method *Method) *Method {
	if c.index == nil {
		c.index = make(map[string]*Method)
	}
	if method.Line == 0 && c.module != nil {
		c.module.mu.Lock()
		method.Line = c.module.line()
		c.module.mu.Unlock()
	}

	if _, ok := c.index[method.Name]; !ok {
		c.methods = append(c.methods, method)
	} else {
		for i, existing := range c.methods {
			if existing.Name == method.Name {
				c.methods[i] = method
			}
		}
	}
	c.index[method.Name] = method
	return method
}

// Methods returns the class's methods in registration order.
func (c *Class) Methods() []*Method {
	methods := make([]*Method, len(c.methods))
	copy(methods, c.methods)
	return methods
}

// Attr looks up a method of the class.
func (c *Class) Attr(name string) (any, bool) {
	method, ok := c.index[name]
	return method, ok
}

// Module returns the module that owns the class.
func (c *Class) Module() *Module {
	return c.module
}
