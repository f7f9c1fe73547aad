package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	ConfigFile  string
	SourceRoot  string

	// Selection settings
	MethodPrefix string
	Strict       bool

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	LogLevel       string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags. Empty values and nil pointers leave the configured value alone.
type Flags struct {
	ConfigFile   string
	SourceRoot   string
	MethodPrefix string
	LogLevel     string
	Strict       *bool
	Filter       string
	ShowTests    bool
	Save         bool
	FromManifest bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		ConfigFile:     DefaultConfigFile,
		SourceRoot:     DefaultSourceRoot,
		MethodPrefix:   DefaultMethodPrefix,
		Strict:         true,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
	}
}

// Load creates a config from defaults, then the environment (process variables win over the project's .env file),
// then flags.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.applyEnv(readEnvFile(filepath.Join(cfg.ProjectPath, DefaultEnvFile)))
	cfg.Apply(flags)
	return cfg
}

// Apply overrides settings with the non-empty flags
func (c *Config) Apply(flags Flags) {
	c.Flags = flags

	if flags.ConfigFile != "" {
		c.ConfigFile = flags.ConfigFile
	}
	if flags.SourceRoot != "" {
		c.SourceRoot = flags.SourceRoot
	}
	if flags.MethodPrefix != "" {
		c.MethodPrefix = flags.MethodPrefix
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Strict != nil {
		c.Strict = *flags.Strict
	}
}

func (c *Config) applyEnv(dotenv map[string]string) {
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvConfigFile); ok {
		c.ConfigFile = v
	}
	if v, ok := lookup(EnvSourceRoot); ok {
		c.SourceRoot = v
	}
	if v, ok := lookup(EnvMethodPrefix); ok {
		c.MethodPrefix = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvStrict); ok {
		if strict, err := strconv.ParseBool(v); err == nil {
			c.Strict = strict
		}
	}
}

// readEnvFile reads a dotenv file; a missing or unreadable file yields no values
func readEnvFile(path string) map[string]string {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil
	}
	return values
}

// GetConfigPath returns the selection config path, relative to the project unless absolute
func (c *Config) GetConfigPath() string {
	return c.resolve(c.ConfigFile)
}

// GetSourceRoots returns the PHP source roots, each relative to the project unless absolute. SourceRoot may list
// several roots separated like PATH entries; earlier roots win.
func (c *Config) GetSourceRoots() []string {
	var roots []string
	for _, root := range filepath.SplitList(c.SourceRoot) {
		roots = append(roots, c.resolve(root))
	}
	return roots
}

// GetOutputPath returns the full path to the manifest file.
// Resolves to an absolute path so list and browse always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectPath, path)
}
