package domain

// Granularity is the level at which a group names its test targets
type Granularity string

const (
	GranularityModule Granularity = "module"
	GranularityClass  Granularity = "class"
	GranularityMethod Granularity = "method"
)

// Granularities lists the legal granularity values
var Granularities = []string{
	string(GranularityModule),
	string(GranularityClass),
	string(GranularityMethod),
}

// TestConfig is the decoded selection configuration
type TestConfig struct {
	Test   TestSection            `mapstructure:"test"`
	Suites map[string]SuiteConfig `mapstructure:"suites"`
}

// TestSection lists the suites to load, in order
type TestSection struct {
	Suites []string `mapstructure:"suites"`
}

// SuiteConfig describes one named suite
type SuiteConfig struct {
	Package string `mapstructure:"package"`
	// MaxWorkers is kept raw so that numeric strings and integral floats from loosely typed sources can be parsed
	// by the suite builder.
	MaxWorkers any                    `mapstructure:"max_workers"`
	Groups     map[string]GroupConfig `mapstructure:"groups"`
}

// GroupConfig is one selection rule of a suite
type GroupConfig struct {
	Granularity   Granularity `mapstructure:"granularity"`
	Modules       []string    `mapstructure:"modules"`
	Classes       []string    `mapstructure:"classes"`
	Methods       []string    `mapstructure:"methods"`
	ExceptClasses []string    `mapstructure:"except_classes"`
	ExceptMethods []string    `mapstructure:"except_methods"`
	Disable       bool        `mapstructure:"disable"`
}
