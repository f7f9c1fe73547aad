package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unishark/internal/config"
	"unishark/internal/domain"
	"unishark/internal/errors"
	"unishark/internal/storage"
)

const userTestPHP = `<?php

namespace Tests;

use PHPUnit\Framework\TestCase;

class UserTest extends TestCase
{
    public function testCreate()
    {
    }

    public function testUpdate()
    {
    }

    public static function testStatic()
    {
    }
}
`

const orderTestPHP = `<?php

namespace Tests;

final class OrderTest extends \PHPUnit\Framework\TestCase
{
    public function testPlace()
    {
    }
}
`

const integrationTestPHP = `<?php

namespace Tests;

use PHPUnit\Framework\TestCase;

abstract class IntegrationTest extends TestCase
{
    public function testConnection()
    {
    }
}
`

const checkoutTestPHP = `<?php

namespace Tests;

class CheckoutTest extends IntegrationTest
{
    public function testPay()
    {
    }
}
`

const selectionYAML = `
suites:
  users:
    package: tests
    groups:
      all:
        granularity: module
        modules: [UserTest]
  orders:
    package: tests
    max_workers: 2
    groups:
      place:
        granularity: method
        methods: [OrderTest.OrderTest.testPlace]
  checkout:
    package: tests
    groups:
      all:
        granularity: class
        classes: [CheckoutTest.CheckoutTest]
  broken:
    groups:
      all:
        granularity: module
        modules: [tests.UserTest]
        except_classes: [tests.Missing]
test:
  suites: [%s]
`

type fixture struct {
	cfg    *config.Config
	store  *storage.JSONStorage
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cmd    *cobra.Command
}

func newFixture(t *testing.T, suites string) *fixture {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("tests/UserTest.php", userTestPHP)
	write("tests/OrderTest.php", orderTestPHP)
	write("tests/IntegrationTest.php", integrationTestPHP)
	write("tests/CheckoutTest.php", checkoutTestPHP)
	write("unishark.yaml", strings.Replace(selectionYAML, "%s", suites, 1))

	cfg := config.New()
	cfg.ProjectPath = dir
	cfg.LogLevel = "error"

	f := &fixture{
		cfg:    cfg,
		store:  storage.NewJSONStorageAt(filepath.Join(dir, "manifest.json")),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		cmd:    &cobra.Command{},
	}
	f.cmd.SetOut(f.stdout)
	f.cmd.SetErr(f.stderr)

	return f
}

func TestListCommand(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		f := newFixture(t, "users, orders")

		require.NoError(t, NewListCommand(f.cfg, f.store).Execute(f.cmd, nil))

		out := f.stdout.String()
		assert.Contains(t, out, "Resolved 4 test(s) in 2 suite(s):")
		assert.Contains(t, out, "├── users (package: tests, max_workers: 1, tests: 3)")
		assert.Contains(t, out, "└── orders (package: tests, max_workers: 2, tests: 1)")
	})

	t.Run("tests with filter", func(t *testing.T) {
		f := newFixture(t, "users")
		f.cfg.Flags = config.Flags{ShowTests: true, Filter: "*Create*"}

		require.NoError(t, NewListCommand(f.cfg, f.store).Execute(f.cmd, nil))

		out := f.stdout.String()
		assert.Contains(t, out, "tests.UserTest")
		assert.Contains(t, out, "testCreate")
		assert.NotContains(t, out, "testUpdate")
	})

	t.Run("save manifest", func(t *testing.T) {
		f := newFixture(t, "users, orders")
		f.cfg.Flags = config.Flags{Save: true}

		require.NoError(t, NewListCommand(f.cfg, f.store).Execute(f.cmd, nil))

		manifest, err := f.store.Load()
		require.NoError(t, err)
		require.Len(t, manifest.Suites, 2)

		users := manifest.Suites[0]
		assert.Equal(t, "users", users.Name)
		assert.Equal(t, "tests", users.Package)
		assert.Equal(t, []string{
			"tests.UserTest.UserTest.testCreate",
			"tests.UserTest.UserTest.testStatic",
			"tests.UserTest.UserTest.testUpdate",
		}, users.Tests)
		// the static method is selected but cannot be loaded as a case
		assert.Equal(t, 2, users.Loaded)
		assert.Equal(t, 1, manifest.Suites[1].Loaded)

		out := f.stdout.String()
		assert.Contains(t, out, "Selected Tests")
		assert.Contains(t, out, "Suites")
	})

	t.Run("subclass of a base declared in another file", func(t *testing.T) {
		f := newFixture(t, "checkout")
		f.cfg.Flags = config.Flags{Save: true}

		require.NoError(t, NewListCommand(f.cfg, f.store).Execute(f.cmd, nil))

		manifest, err := f.store.Load()
		require.NoError(t, err)
		require.Len(t, manifest.Suites, 1)
		assert.Equal(t, []string{
			"tests.CheckoutTest.CheckoutTest.testPay",
		}, manifest.Suites[0].Tests)
		assert.Equal(t, 1, manifest.Suites[0].Loaded)
	})

	t.Run("strict aborts", func(t *testing.T) {
		f := newFixture(t, "users, broken")

		err := NewListCommand(f.cfg, f.store).Execute(f.cmd, nil)

		var notFound errors.NotFoundError
		require.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
		assert.Empty(t, f.stdout.String())
		assert.True(t, strings.HasSuffix(f.stderr.String(), "\n"), "progress bar should be finished")
	})

	t.Run("lenient lists the valid suites", func(t *testing.T) {
		f := newFixture(t, "users, broken")
		f.cfg.Strict = false

		err := NewListCommand(f.cfg, f.store).Execute(f.cmd, nil)
		assert.True(t, errors.IsError(err, errInvalidConfig))

		assert.Contains(t, f.stdout.String(), "in 1 suite(s):")
		assert.Contains(t, f.stderr.String(), "1 configuration error(s)")
		assert.Contains(t, f.stderr.String(), "tests.Missing")
	})

	t.Run("missing config", func(t *testing.T) {
		f := newFixture(t, "users")
		f.cfg.ConfigFile = "absent.yaml"

		err := NewListCommand(f.cfg, f.store).Execute(f.cmd, nil)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := newFixture(t, "users, orders")

		require.NoError(t, NewValidateCommand(f.cfg).Execute(f.cmd, nil))
		assert.Contains(t, f.stdout.String(), "Configuration is valid (2 suite(s))")
	})

	t.Run("reports every invalid suite", func(t *testing.T) {
		f := newFixture(t, "broken, users, ghost")

		err := NewValidateCommand(f.cfg).Execute(f.cmd, nil)
		assert.True(t, errors.IsError(err, errInvalidConfig))

		out := f.stdout.String()
		assert.Contains(t, out, "2 configuration error(s)")
		assert.Contains(t, out, "tests.Missing")
		assert.Contains(t, out, "ghost")
	})
}

type recordingViewer struct {
	manifest *domain.Manifest
}

func (v *recordingViewer) View(manifest *domain.Manifest) error {
	v.manifest = manifest
	return nil
}

func TestBrowseCommand(t *testing.T) {
	t.Run("fresh resolution", func(t *testing.T) {
		f := newFixture(t, "orders")
		viewer := &recordingViewer{}

		require.NoError(t, NewBrowseCommand(f.cfg, f.store, viewer).Execute(f.cmd, nil))

		require.NotNil(t, viewer.manifest)
		require.Len(t, viewer.manifest.Suites, 1)
		assert.Equal(t, []string{"tests.OrderTest.OrderTest.testPlace"}, viewer.manifest.Suites[0].Tests)
		assert.Equal(t, f.cfg.GetConfigPath(), viewer.manifest.Meta.ConfigPath)
	})

	t.Run("saved manifest", func(t *testing.T) {
		f := newFixture(t, "users")
		saved := &domain.Manifest{Meta: domain.ManifestMeta{ConfigPath: "saved.yaml"}}
		require.NoError(t, f.store.Save(saved))
		f.cfg.Flags = config.Flags{FromManifest: true}
		viewer := &recordingViewer{}

		require.NoError(t, NewBrowseCommand(f.cfg, f.store, viewer).Execute(f.cmd, nil))
		assert.Equal(t, "saved.yaml", viewer.manifest.Meta.ConfigPath)
	})
}
