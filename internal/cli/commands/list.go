package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"unishark/internal/config"
	"unishark/internal/storage"
	"unishark/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, st storage.Storage) *ListCommand {
	return &ListCommand{
		config:  cfg,
		storage: st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(lc.config, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	res, err := p.load()
	if err != nil {
		return err
	}

	formatter := ui.NewFormatter(cmd.OutOrStdout())

	if len(res.selections) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No suites loaded")
	} else {
		formatter.PrintSelections(res.filter(lc.config.Flags.Filter), lc.config.Flags.ShowTests)
	}

	if lc.config.Flags.Save {
		manifest := res.manifest(lc.config.GetConfigPath())
		if err := lc.storage.Save(manifest); err != nil {
			return err
		}
		p.logger.Infof("Saved selection manifest to %s", lc.config.GetOutputPath())
		formatter.PrintManifestStats(manifest)
	}

	if res.errs != nil {
		ui.NewFormatter(cmd.ErrOrStderr()).PrintErrors(res.errs)
		return errInvalidConfig
	}

	return nil
}
