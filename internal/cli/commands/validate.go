package commands

import (
	"github.com/spf13/cobra"

	"unishark/internal/config"
	"unishark/internal/errors"
	"unishark/internal/ui"
)

var errInvalidConfig = errors.New("test config has errors")

// ValidateCommand handles the validate command
type ValidateCommand struct {
	config *config.Config
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand(cfg *config.Config) *ValidateCommand {
	return &ValidateCommand{config: cfg}
}

// Execute resolves every suite without loading cases and reports all problems at once
func (vc *ValidateCommand) Execute(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(vc.config, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	res, err := p.resolve(false)
	if err != nil {
		return err
	}

	formatter := ui.NewFormatter(cmd.OutOrStdout())
	if res.errs != nil {
		formatter.PrintErrors(res.errs)
		return errInvalidConfig
	}

	formatter.PrintValid(len(res.selections))
	return nil
}
