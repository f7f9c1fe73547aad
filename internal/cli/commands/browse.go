package commands

import (
	"github.com/spf13/cobra"

	"unishark/internal/config"
	"unishark/internal/domain"
	"unishark/internal/storage"
	"unishark/internal/ui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *BrowseCommand {
	return &BrowseCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	manifest, err := bc.manifest(cmd)
	if err != nil {
		return err
	}

	return bc.viewer.View(manifest)
}

// manifest loads the saved manifest or builds a fresh one from the selection config
func (bc *BrowseCommand) manifest(cmd *cobra.Command) (*domain.Manifest, error) {
	if bc.config.Flags.FromManifest {
		return bc.storage.Load()
	}

	p, err := newPipeline(bc.config, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	res, err := p.load()
	if err != nil {
		return nil, err
	}
	if res.errs != nil {
		ui.NewFormatter(cmd.ErrOrStderr()).PrintErrors(res.errs)
	}

	return res.manifest(bc.config.GetConfigPath()), nil
}
