package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the default selection configuration file
	DefaultConfigFile = "unishark.yaml"
	// DefaultSourceRoot is the default root that PHP module paths are resolved against
	DefaultSourceRoot = "."
	// DefaultMethodPrefix is the default prefix of test method names
	DefaultMethodPrefix = "test"
	// DefaultOutputJSONFile is the default manifest file name
	DefaultOutputJSONFile = "selection.json"
	// DefaultOutputJSONDir is the default manifest directory
	DefaultOutputJSONDir = ".unishark"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "warn"
	// DefaultEnvFile is read from the project path for UNISHARK_* defaults
	DefaultEnvFile = ".env"
)

// Environment variables that provide defaults for flags
const (
	EnvConfigFile   = "UNISHARK_CONFIG"
	EnvSourceRoot   = "UNISHARK_SOURCE"
	EnvMethodPrefix = "UNISHARK_METHOD_PREFIX"
	EnvLogLevel     = "UNISHARK_LOG_LEVEL"
	EnvStrict       = "UNISHARK_STRICT"
)
