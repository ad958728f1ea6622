package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type ShowCmd struct {
	output string
	open   bool
	env    Environment
}

func NewShowCmd(env Environment) *cobra.Command {
	sc := &ShowCmd{env: env}
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render an archived report to an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.output, "output", "o", "", "Path of the HTML file to write")
	cmd.Flags().BoolVar(&sc.open, "open", false, "Open the report in the default browser")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (sc *ShowCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := sc.env.Reports(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to open report history: %w", err)
	}

	report, err := svc.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load report %s: %w", args[0], err)
	}

	f, err := os.Create(sc.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", sc.output, err)
	}
	if err := svc.Render(ctx, report, f); err != nil {
		_ = f.Close()
		_ = os.Remove(sc.output)
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(sc.output)
		return fmt.Errorf("failed to write %s: %w", sc.output, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report %s written to %s\n", args[0], sc.output)

	if sc.open {
		path, err := filepath.Abs(sc.output)
		if err != nil {
			return err
		}
		return sc.env.Viewer().Display(ctx, filepath.ToSlash(path))
	}
	return nil
}
