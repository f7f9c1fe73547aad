package domain

import "time"

// ManifestSuite is the persisted form of a resolved suite
type ManifestSuite struct {
	Name       string   `json:"name"`
	Package    string   `json:"package,omitempty"`
	MaxWorkers int      `json:"max_workers"`
	Tests      []string `json:"tests"`
	Loaded     int      `json:"loaded"` // Tests that resolved to runnable cases
}

// ManifestMeta contains metadata about a resolution run
type ManifestMeta struct {
	ConfigPath string `json:"config_path"`
	TotalTests int    `json:"total_tests"`
	Suites     int    `json:"suites"`
	Timestamp  string `json:"timestamp"`
}

// Manifest is the complete output structure of a resolution run
type Manifest struct {
	Meta   ManifestMeta    `json:"meta"`
	Suites []ManifestSuite `json:"suites"`
}

// NewManifest builds a manifest from resolved selections, ordered as given
func NewManifest(configPath string, selections []*SuiteSelection, loaded map[string]int) *Manifest {
	m := &Manifest{
		Meta: ManifestMeta{
			ConfigPath: configPath,
			Suites:     len(selections),
			Timestamp:  time.Now().Format(time.RFC3339),
		},
	}

	for _, sel := range selections {
		tests := sel.Tests.Sorted()
		m.Meta.TotalTests += len(tests)
		m.Suites = append(m.Suites, ManifestSuite{
			Name:       sel.Name,
			Package:    string(sel.Package),
			MaxWorkers: sel.MaxWorkers,
			Tests:      tests,
			Loaded:     loaded[sel.Name],
		})
	}

	return m
}
