package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"unishark/internal/cli"
	"unishark/internal/cli/commands"
	"unishark/internal/config"
	"unishark/internal/errors"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "unishark",
		Short:         "Config-driven test selection",
		Long:          `Resolve named test suites from a YAML or JSON selection config into fully-qualified test lists, and load them from PHP test sources.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config from defaults and the environment
	cfg := config.Load(config.Flags{})

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		if cfg.LogLevel == "debug" {
			fmt.Fprintln(os.Stderr, errors.ErrorWithStackTrace(err))
		}
		os.Exit(1)
	}
}
