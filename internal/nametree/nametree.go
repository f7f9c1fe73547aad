// Package nametree indexes discovered test names as module → class → method so exclusions can be applied before the
// names are flattened into fully-qualified identifiers.
//
// Empty branches are never represented: classes without methods are not inserted, and deleting the last method of a
// class (or the last class of a module) prunes the parent.
package nametree

import (
	"maps"
	"slices"

	"unishark/internal/discovery"
	"unishark/internal/domain"
	"unishark/internal/errors"
	"unishark/internal/naming"
)

// Source lists the classes of a module and selects their test methods
type Source interface {
	Introspect(pkg domain.Package, module string) (*discovery.ModuleInfo, error)
	Methods(class discovery.ClassInfo) []string
}

type classNode struct {
	methods map[string]struct{}
}

type moduleNode struct {
	classes map[string]*classNode
}

// Tree is a mutable index of test names. A Tree belongs to a single resolution pass and is not safe for concurrent
// use.
type Tree struct {
	modules map[string]*moduleNode
}

// New creates an empty Tree
func New() *Tree {
	return &Tree{modules: make(map[string]*moduleNode)}
}

// Insert adds methods under module and class, creating both on demand. Inserting no methods is a no-op.
func (t *Tree) Insert(module, class string, methods []string) {
	if len(methods) == 0 {
		return
	}

	mod, ok := t.modules[module]
	if !ok {
		mod = &moduleNode{classes: make(map[string]*classNode)}
		t.modules[module] = mod
	}

	cls, ok := mod.classes[class]
	if !ok {
		cls = &classNode{methods: make(map[string]struct{}, len(methods))}
		mod.classes[class] = cls
	}

	for _, method := range methods {
		cls.methods[method] = struct{}{}
	}
}

// BuildFromModules introspects every module and inserts the test methods of its classes. When filter is non-nil only
// classes whose "module.class" name is in filter are inserted.
func (t *Tree) BuildFromModules(src Source, pkg domain.Package, modules []string, filter map[string]bool) error {
	for _, module := range modules {
		info, err := src.Introspect(pkg, module)
		if err != nil {
			return err
		}

		for _, class := range info.Classes {
			if filter != nil && !filter[naming.Join(module, class.Name)] {
				continue
			}
			t.Insert(module, class.Name, src.Methods(class))
		}
	}

	return nil
}

// DeleteClass removes a class and prunes its module if it becomes empty.
func (t *Tree) DeleteClass(module, class string) error {
	name := naming.Join(module, class)

	mod, ok := t.modules[module]
	if !ok {
		return errors.WithStackTrace(errors.NotFoundError{Op: "exclude", Name: name, Missing: module})
	}

	if _, ok := mod.classes[class]; !ok {
		return errors.WithStackTrace(errors.NotFoundError{Op: "exclude", Name: name, Missing: class, Container: module})
	}

	delete(mod.classes, class)
	if len(mod.classes) == 0 {
		delete(t.modules, module)
	}

	return nil
}

// DeleteMethod removes a method and prunes its class, then its module, if they become empty.
func (t *Tree) DeleteMethod(module, class, method string) error {
	name := naming.Join(module, class, method)

	mod, ok := t.modules[module]
	if !ok {
		return errors.WithStackTrace(errors.NotFoundError{Op: "exclude", Name: name, Missing: module})
	}

	cls, ok := mod.classes[class]
	if !ok {
		return errors.WithStackTrace(errors.NotFoundError{Op: "exclude", Name: name, Missing: class, Container: module})
	}

	if _, ok := cls.methods[method]; !ok {
		return errors.WithStackTrace(errors.NotFoundError{Op: "exclude", Name: name, Missing: method, Container: class})
	}

	delete(cls.methods, method)
	if len(cls.methods) == 0 {
		delete(mod.classes, class)
	}
	if len(mod.classes) == 0 {
		delete(t.modules, module)
	}

	return nil
}

// Flatten returns the dotted name of every method in the tree, prefixed with pkg when it is set.
func (t *Tree) Flatten(pkg domain.Package) domain.NameSet {
	names := make(domain.NameSet)

	var prefix string
	if pkg.IsSet() {
		prefix = string(pkg)
	}

	for module, mod := range t.modules {
		modPrefix := naming.Join(prefix, module)
		for class, cls := range mod.classes {
			clsPrefix := naming.Join(modPrefix, class)
			for method := range cls.methods {
				names.Add(naming.Join(clsPrefix, method))
			}
		}
	}

	return names
}

// Len returns the number of methods in the tree
func (t *Tree) Len() int {
	n := 0
	for _, mod := range t.modules {
		for _, cls := range mod.classes {
			n += len(cls.methods)
		}
	}
	return n
}

// Modules returns the module names in lexical order
func (t *Tree) Modules() []string {
	return slices.Sorted(maps.Keys(t.modules))
}

// Classes returns the class names of module in lexical order
func (t *Tree) Classes(module string) []string {
	mod, ok := t.modules[module]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(mod.classes))
}

// Methods returns the method names of module.class in lexical order
func (t *Tree) Methods(module, class string) []string {
	mod, ok := t.modules[module]
	if !ok {
		return nil
	}
	cls, ok := mod.classes[class]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(cls.methods))
}
