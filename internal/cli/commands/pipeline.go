package commands

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"unishark/internal/config"
	"unishark/internal/discovery"
	"unishark/internal/domain"
	"unishark/internal/loader"
	"unishark/internal/logging"
	"unishark/internal/registry"
	"unishark/internal/ui"
)

// resolution is the outcome of resolving and loading a selection config
type resolution struct {
	selections []*domain.SuiteSelection
	loaded     map[string]int
	// errs holds the problems of suites skipped in lenient mode
	errs error
}

// pipeline resolves and loads the configured selection from PHP sources
type pipeline struct {
	config *config.Config
	logger *logrus.Entry
	stderr io.Writer
}

func newPipeline(cfg *config.Config, stderr io.Writer) (*pipeline, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &pipeline{config: cfg, logger: logging.New(level, stderr), stderr: stderr}, nil
}

func (p *pipeline) testConfig() (*domain.TestConfig, error) {
	path := p.config.GetConfigPath()
	p.logger.Debugf("Reading test config %s", path)
	return config.LoadTestConfig(path)
}

func (p *pipeline) loader(strict bool, opts ...loader.Option) *loader.Loader {
	opts = append([]loader.Option{
		loader.WithLogger(p.logger),
		loader.WithMethodPrefix(p.config.MethodPrefix),
		loader.WithStrict(strict),
	}, opts...)
	return loader.New(p.importer(), opts...)
}

// importer chains one PHP source per configured root. Base classes are looked up across every root.
func (p *pipeline) importer() registry.Importer {
	chain := &registry.Importers{}
	for _, root := range p.config.GetSourceRoots() {
		*chain = append(*chain, discovery.NewPHPSource(root,
			discovery.WithSourceLogger(p.logger),
			discovery.WithParentImporter(chain),
		))
	}
	return chain
}

// resolve only builds the name selections
func (p *pipeline) resolve(strict bool) (*resolution, error) {
	conf, err := p.testConfig()
	if err != nil {
		return nil, err
	}

	selections, err := p.loader(strict).Resolve(conf)
	if err != nil && strict {
		return nil, err
	}
	return &resolution{selections: selections, errs: err}, nil
}

// load resolves and loads every suite. Suites that fail in lenient mode are dropped from the result.
func (p *pipeline) load() (*resolution, error) {
	strict := p.config.Strict

	conf, err := p.testConfig()
	if err != nil {
		return nil, err
	}

	var progress *ui.ProgressBar
	if !p.logger.Logger.IsLevelEnabled(logrus.InfoLevel) {
		progress = ui.NewProgressBar(len(conf.Test.Suites), p.stderr)
		defer progress.Finish()
	}

	var suites, tests int
	l := p.loader(strict, loader.WithSuiteLoaded(func(_ string, s loader.LoadedSuite) {
		suites++
		tests += s.Suite.Len()
		if progress != nil {
			progress.Update(suites, tests)
		}
	}))

	selections, resolveErr := l.Resolve(conf)
	if resolveErr != nil && strict {
		return nil, resolveErr
	}

	loaded, loadErr := l.LoadSelections(selections)
	if loadErr != nil && strict {
		return nil, loadErr
	}

	res := &resolution{loaded: make(map[string]int, len(loaded))}
	for _, sel := range selections {
		if s, ok := loaded[sel.Name]; ok {
			res.selections = append(res.selections, sel)
			res.loaded[sel.Name] = s.Suite.Len()
		}
	}
	res.errs = joinErrors(resolveErr, loadErr)

	return res, nil
}

// filter narrows the tests of every selection for display
func (r *resolution) filter(pattern string) []*domain.SuiteSelection {
	if pattern == "" {
		return r.selections
	}

	f := discovery.NewFilter()
	filtered := make([]*domain.SuiteSelection, 0, len(r.selections))
	for _, sel := range r.selections {
		narrowed := *sel
		narrowed.Tests = domain.NewNameSet(f.FilterByName(sel.Tests.Sorted(), pattern)...)
		filtered = append(filtered, &narrowed)
	}
	return filtered
}

func (r *resolution) manifest(configPath string) *domain.Manifest {
	return domain.NewManifest(configPath, r.selections, r.loaded)
}

func joinErrors(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
