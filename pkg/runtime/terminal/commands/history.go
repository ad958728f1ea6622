package commands

import (
	"fmt"

	"github.com/de-tools/timeline-report/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	document string
	limit    int
	env      Environment
	reporter *export.Reporter
}

func NewHistoryCmd(env Environment, reporter *export.Reporter) *cobra.Command {
	hc := &HistoryCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived timeline reports",
		Args:  cobra.NoArgs,
		RunE:  hc.run,
	}

	cmd.Flags().StringVarP(&hc.document, "document", "d", "", "Only list reports of this document")
	cmd.Flags().IntVarP(&hc.limit, "limit", "n", 20, "Maximum number of reports to list (0 lists all)")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, _ []string) error {
	if hc.limit < 0 {
		return fmt.Errorf("invalid limit %d: expected a non-negative integer", hc.limit)
	}

	ctx := cmd.Context()
	svc, err := hc.env.Reports(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to open report history: %w", err)
	}

	summaries, err := svc.List(ctx, hc.document, hc.limit)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	return hc.reporter.HandleHistory(summaries)
}
