package commands

import (
	"github.com/spf13/cobra"

	"unishark/internal/cli"
	"unishark/internal/config"
	"unishark/internal/storage"
	"unishark/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	List     *ListCommand
	Validate *ValidateCommand
	Browse   *BrowseCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)
	browser := ui.NewBrowser()

	return &Commands{
		List:     NewListCommand(cfg, jsonStorage),
		Validate: NewValidateCommand(cfg),
		Browse:   NewBrowseCommand(cfg, jsonStorage, browser),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the test selection config (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&flags.SourceRoot, "source", "s", "", "Root directories that module paths are resolved against, separated like PATH entries")
	rootCmd.PersistentFlags().StringVar(&flags.MethodPrefix, "prefix", "", "Prefix that marks a method as a test (default \"test\")")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default \"warn\")")
	rootCmd.PersistentFlags().BoolVar(&flags.Strict, "strict", true, "Abort on the first invalid suite; --strict=false skips invalid suites and reports them all")

	// Update config with flags after parsing
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		flags.StrictSet = cmd.Flags().Changed("strict")
		cfg.Apply(flags.ToConfigFlags())
		return nil
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List selected tests",
		Long:  "Resolve and load every suite of the selection config and print what each suite would run",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*.UserTest.*' or '*payment*')")
	listCmd.Flags().BoolVarP(&flags.ShowTests, "tests", "t", false, "Show each suite's tests as a module, class and method tree")
	listCmd.Flags().BoolVar(&flags.Save, "save", false, "Save the selection manifest for later browsing")
	rootCmd.AddCommand(listCmd)

	// Validate command
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the selection config",
		Long:  "Resolve every suite without loading tests and report all configuration problems",
		RunE:  c.Validate.Execute,
	}
	rootCmd.AddCommand(validateCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse selected tests interactively",
		Long:  "Display the resolved selection, or the last saved manifest, in an interactive tree",
		RunE:  c.Browse.Execute,
	}
	browseCmd.Flags().BoolVar(&flags.FromManifest, "manifest", false, "Browse the last saved manifest instead of resolving the config")
	rootCmd.AddCommand(browseCmd)
}
