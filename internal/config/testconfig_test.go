package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unishark/internal/domain"
)

const yamlConfig = `
suites:
  my_suite_name_1:
    package: my.package.name
    max_workers: 4
    groups:
      my_group_1:
        granularity: module
        modules: [test_module1, test_module2]
        except_classes: [test_module2.MyTestClass3]
        except_methods: [test_module1.MyTestClass1.test_1]
      my_group_2:
        granularity: class
        disable: true
        classes: [test_module3.MyTestClass5]
  my_suite_name_2:
    groups:
      my_group_1:
        granularity: method
        methods: [test_module3.MyTestClass6.test_13]
reporters:
  html:
    class: unishark.HtmlReporter
test:
  suites: [my_suite_name_1, my_suite_name_2]
  reporters: [html]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTestConfig_YAML(t *testing.T) {
	conf, err := LoadTestConfig(writeFile(t, "unishark.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"my_suite_name_1", "my_suite_name_2"}, conf.Test.Suites)
	require.Len(t, conf.Suites, 2)

	s1 := conf.Suites["my_suite_name_1"]
	assert.Equal(t, "my.package.name", s1.Package)
	assert.Equal(t, 4, s1.MaxWorkers)

	g1 := s1.Groups["my_group_1"]
	assert.Equal(t, domain.GranularityModule, g1.Granularity)
	assert.Equal(t, []string{"test_module1", "test_module2"}, g1.Modules)
	assert.Equal(t, []string{"test_module2.MyTestClass3"}, g1.ExceptClasses)
	assert.Equal(t, []string{"test_module1.MyTestClass1.test_1"}, g1.ExceptMethods)
	assert.False(t, g1.Disable)

	assert.True(t, s1.Groups["my_group_2"].Disable)

	s2 := conf.Suites["my_suite_name_2"]
	assert.Empty(t, s2.Package)
	assert.Nil(t, s2.MaxWorkers)
	assert.Equal(t, domain.GranularityMethod, s2.Groups["my_group_1"].Granularity)
}

func TestLoadTestConfig_JSON(t *testing.T) {
	path := writeFile(t, "unishark.json", `{
  "test": {"suites": ["s"]},
  "suites": {"s": {"max_workers": 2, "groups": {"g": {"granularity": "class", "classes": ["m.C"], "disable": "false"}}}}
}`)

	conf, err := LoadTestConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float64(2), conf.Suites["s"].MaxWorkers)
	g := conf.Suites["s"].Groups["g"]
	assert.Equal(t, domain.GranularityClass, g.Granularity)
	assert.Equal(t, []string{"m.C"}, g.Classes)
	assert.False(t, g.Disable)
}

func TestLoadTestConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTestConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadTestConfig(writeFile(t, "bad.yaml", "suites: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing test config")
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := DecodeTestConfig(map[string]any{"test": map[string]any{"suites": map[string]any{"a": 1}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding test config")
	})
}
