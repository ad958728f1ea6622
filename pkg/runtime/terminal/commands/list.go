package commands

import (
	"fmt"

	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/de-tools/timeline-report/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

type CommandsCmd struct {
	env      Environment
	reporter *export.Reporter
}

func NewCommandsCmd(env Environment, reporter *export.Reporter) *cobra.Command {
	cc := &CommandsCmd{env: env, reporter: reporter}
	return &cobra.Command{
		Use:   "commands [id]",
		Short: "Print the plugin command manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cc.run,
	}
}

func (cc *CommandsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reg, err := cc.env.Commands()
	if err != nil {
		return fmt.Errorf("failed to load command manifest: %w", err)
	}

	if len(args) == 1 {
		def, err := reg.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return cc.reporter.HandleCommands([]domain.CommandDefinition{*def})
	}

	defs, err := reg.List(ctx)
	if err != nil {
		return err
	}
	return cc.reporter.HandleCommands(defs)
}
