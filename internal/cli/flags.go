package cli

import "unishark/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile   string
	SourceRoot   string
	MethodPrefix string
	LogLevel     string
	Strict       bool
	// StrictSet is true when --strict was given explicitly, so that the environment default is kept otherwise
	StrictSet    bool
	Filter       string
	ShowTests    bool
	Save         bool
	FromManifest bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	flags := config.Flags{
		ConfigFile:   f.ConfigFile,
		SourceRoot:   f.SourceRoot,
		MethodPrefix: f.MethodPrefix,
		LogLevel:     f.LogLevel,
		Filter:       f.Filter,
		ShowTests:    f.ShowTests,
		Save:         f.Save,
		FromManifest: f.FromManifest,
	}
	if f.StrictSet {
		strict := f.Strict
		flags.Strict = &strict
	}
	return flags
}
