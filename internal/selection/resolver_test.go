package selection

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unishark/internal/discovery"
	"unishark/internal/domain"
	"unishark/internal/errors"
	"unishark/internal/registry"
)

func noop(context.Context, any) error { return nil }

// newResolver registers:
//
//	m: C{test_a, test_b, helper}, D{helper}
//	n: E{test_x, test_y}
//	pkg.m: C{test_a}
func newResolver(t *testing.T) (*Resolver, *logtest.Hook) {
	t.Helper()

	reg := registry.New()
	m := reg.Module("m")
	m.TestCase("C", nil).Test("test_a", noop).Test("test_b", noop).Test("helper", noop)
	m.TestCase("D", nil).Test("helper", noop)
	reg.Module("n").TestCase("E", nil).Test("test_x", noop).Test("test_y", noop)
	reg.Module("pkg.m").TestCase("C", nil).Test("test_a", noop)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return NewResolver(discovery.NewIntrospector(reg), logrus.NewEntry(logger)), hook
}

func TestResolveGroup_Module(t *testing.T) {
	r, _ := newResolver(t)

	tests := []struct {
		name     string
		pkg      domain.Package
		group    domain.GroupConfig
		expected domain.NameSet
	}{
		{
			name:     "whole modules",
			group:    domain.GroupConfig{Granularity: domain.GranularityModule, Modules: []string{"m", "n", "m"}},
			expected: domain.NewNameSet("m.C.test_a", "m.C.test_b", "n.E.test_x", "n.E.test_y"),
		},
		{
			name: "except method",
			group: domain.GroupConfig{
				Granularity:   domain.GranularityModule,
				Modules:       []string{"m"},
				ExceptMethods: []string{"m.C.test_b"},
			},
			expected: domain.NewNameSet("m.C.test_a"),
		},
		{
			name: "except class",
			group: domain.GroupConfig{
				Granularity:   domain.GranularityModule,
				Modules:       []string{"m", "n"},
				ExceptClasses: []string{"m.C", "m.C"},
			},
			expected: domain.NewNameSet("n.E.test_x", "n.E.test_y"),
		},
		{
			name: "except class and method",
			group: domain.GroupConfig{
				Granularity:   domain.GranularityModule,
				Modules:       []string{"m", "n"},
				ExceptClasses: []string{"m.C"},
				ExceptMethods: []string{"n.E.test_y"},
			},
			expected: domain.NewNameSet("n.E.test_x"),
		},
		{
			name:     "with package",
			pkg:      "pkg",
			group:    domain.GroupConfig{Granularity: domain.GranularityModule, Modules: []string{"m"}},
			expected: domain.NewNameSet("pkg.m.C.test_a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := r.ResolveGroup(tt.pkg, tt.group)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestResolveGroup_ModuleExclusionErrors(t *testing.T) {
	r, _ := newResolver(t)

	t.Run("class from a module that was not included", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity:   domain.GranularityModule,
			Modules:       []string{"m"},
			ExceptClasses: []string{"wrong.C"},
		})

		var notFound errors.NotFoundError
		require.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
		assert.Equal(t, "wrong", notFound.Missing)
	})

	t.Run("class without test methods", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity:   domain.GranularityModule,
			Modules:       []string{"m"},
			ExceptClasses: []string{"m.D"},
		})

		var notFound errors.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "D", notFound.Missing)
		assert.Equal(t, "m", notFound.Container)
	})

	t.Run("method removed by the class exclusion", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity:   domain.GranularityModule,
			Modules:       []string{"m", "n"},
			ExceptClasses: []string{"m.C"},
			ExceptMethods: []string{"m.C.test_a"},
		})

		var notFound errors.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "m", notFound.Missing, "module was pruned")
	})

	t.Run("malformed exclusion", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity:   domain.GranularityModule,
			Modules:       []string{"m"},
			ExceptMethods: []string{"m.test_a"},
		})

		var formatErr errors.FormatError
		require.True(t, errors.As(err, &formatErr))
	})

	t.Run("missing module", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity: domain.GranularityModule,
			Modules:     []string{"absent"},
		})
		assert.True(t, registry.IsModuleNotFound(err))
	})
}

func TestResolveGroup_Class(t *testing.T) {
	r, hook := newResolver(t)

	t.Run("class without test methods contributes nothing", func(t *testing.T) {
		names, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity: domain.GranularityClass,
			Classes:     []string{"m.C", "m.D"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.NewNameSet("m.C.test_a", "m.C.test_b"), names)
	})

	t.Run("classes across modules with except method", func(t *testing.T) {
		names, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity:   domain.GranularityClass,
			Classes:       []string{"m.C", "n.E"},
			ExceptMethods: []string{"m.C.test_a"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.NewNameSet("m.C.test_b", "n.E.test_x", "n.E.test_y"), names)
	})

	t.Run("except method outside the listed classes", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity:   domain.GranularityClass,
			Classes:       []string{"m.C"},
			ExceptMethods: []string{"n.E.test_x"},
		})

		var notFound errors.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "n", notFound.Missing)
	})

	t.Run("malformed class name", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity: domain.GranularityClass,
			Classes:     []string{"m.C.test_a"},
		})

		var formatErr errors.FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.Equal(t, "m.C.test_a", formatErr.Name)
	})

	t.Run("except classes are ignored", func(t *testing.T) {
		hook.Reset()
		names, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity:   domain.GranularityClass,
			Classes:       []string{"n.E"},
			ExceptClasses: []string{"n.E"},
		})
		require.NoError(t, err)
		assert.Len(t, names, 2)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	})
}

func TestResolveGroup_Method(t *testing.T) {
	r, _ := newResolver(t)
	group := domain.GroupConfig{Granularity: domain.GranularityMethod, Methods: []string{"mod.Cls.test_x"}}

	t.Run("with package", func(t *testing.T) {
		names, err := r.ResolveGroup("pkg", group)
		require.NoError(t, err)
		assert.Equal(t, domain.NewNameSet("pkg.mod.Cls.test_x"), names)
	})

	t.Run("without package", func(t *testing.T) {
		names, err := r.ResolveGroup(domain.NoPackage, group)
		require.NoError(t, err)
		assert.Equal(t, domain.NewNameSet("mod.Cls.test_x"), names)
	})

	t.Run("malformed method name", func(t *testing.T) {
		_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
			Granularity: domain.GranularityMethod,
			Methods:     []string{"mod.test_x"},
		})

		var formatErr errors.FormatError
		require.True(t, errors.As(err, &formatErr))
	})
}

func TestResolveGroup_Disabled(t *testing.T) {
	r, _ := newResolver(t)

	names, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{
		Granularity: domain.GranularityModule,
		Modules:     []string{"absent"},
		Disable:     true,
	})
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestResolveGroup_UnknownGranularity(t *testing.T) {
	r, _ := newResolver(t)

	_, err := r.ResolveGroup(domain.NoPackage, domain.GroupConfig{Granularity: "package"})

	var validationErr errors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"module", "class", "method"}, validationErr.Allowed)
	assert.Contains(t, err.Error(), "module, class, method")
}
