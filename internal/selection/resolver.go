// Package selection turns suite and group configuration into sets of fully-qualified test method names.
package selection

import (
	"github.com/sirupsen/logrus"

	"unishark/internal/domain"
	"unishark/internal/errors"
	"unishark/internal/logging"
	"unishark/internal/naming"
	"unishark/internal/nametree"
)

// Resolver resolves groups and suites against a name tree source
type Resolver struct {
	source nametree.Source
	logger *logrus.Entry
}

// NewResolver creates a Resolver that discovers classes and methods through source
func NewResolver(source nametree.Source, logger *logrus.Entry) *Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{source: source, logger: logger}
}

// ResolveGroup returns the fully-qualified method names selected by group. A disabled group selects nothing.
func (r *Resolver) ResolveGroup(pkg domain.Package, group domain.GroupConfig) (domain.NameSet, error) {
	if group.Disable {
		return domain.NameSet{}, nil
	}

	switch group.Granularity {
	case domain.GranularityModule:
		return r.resolveModules(pkg, group)
	case domain.GranularityClass:
		return r.resolveClasses(pkg, group)
	case domain.GranularityMethod:
		return r.resolveMethods(pkg, group)
	default:
		return nil, errors.WithStackTrace(errors.ValidationError{
			Field:   "granularity",
			Value:   group.Granularity,
			Allowed: domain.Granularities,
		})
	}
}

func (r *Resolver) resolveModules(pkg domain.Package, group domain.GroupConfig) (domain.NameSet, error) {
	tree := nametree.New()
	if err := tree.BuildFromModules(r.source, pkg, unique(group.Modules), nil); err != nil {
		return nil, err
	}

	if err := excludeClasses(tree, group.ExceptClasses); err != nil {
		return nil, err
	}

	if err := excludeMethods(tree, group.ExceptMethods); err != nil {
		return nil, err
	}

	return tree.Flatten(pkg), nil
}

func (r *Resolver) resolveClasses(pkg domain.Package, group domain.GroupConfig) (domain.NameSet, error) {
	classes := unique(group.Classes)
	filter := make(map[string]bool, len(classes))

	var modules []string
	seen := make(map[string]bool)

	for _, class := range classes {
		module, _, err := naming.ParseClassName(class)
		if err != nil {
			return nil, err
		}
		filter[class] = true
		if !seen[module] {
			seen[module] = true
			modules = append(modules, module)
		}
	}

	if len(group.ExceptClasses) > 0 {
		r.logger.Debugf("Ignoring except_classes on a class group: only the listed classes are included")
	}

	tree := nametree.New()
	if err := tree.BuildFromModules(r.source, pkg, modules, filter); err != nil {
		return nil, err
	}

	if err := excludeMethods(tree, group.ExceptMethods); err != nil {
		return nil, err
	}

	return tree.Flatten(pkg), nil
}

func (r *Resolver) resolveMethods(pkg domain.Package, group domain.GroupConfig) (domain.NameSet, error) {
	names := make(domain.NameSet)

	for _, method := range unique(group.Methods) {
		if _, _, _, err := naming.ParseMethodName(method); err != nil {
			return nil, err
		}

		if pkg.IsSet() {
			names.Add(naming.Join(string(pkg), method))
		} else {
			names.Add(method)
		}
	}

	return names, nil
}

func excludeClasses(tree *nametree.Tree, names []string) error {
	for _, name := range unique(names) {
		module, class, err := naming.ParseClassName(name)
		if err != nil {
			return err
		}
		if err := tree.DeleteClass(module, class); err != nil {
			return err
		}
	}
	return nil
}

func excludeMethods(tree *nametree.Tree, names []string) error {
	for _, name := range unique(names) {
		module, class, method, err := naming.ParseMethodName(name)
		if err != nil {
			return err
		}
		if err := tree.DeleteMethod(module, class, method); err != nil {
			return err
		}
	}
	return nil
}

// unique drops duplicates, keeping first occurrences in order
func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
