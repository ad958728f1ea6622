package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/de-tools/timeline-report/pkg/runtime/host"
	"github.com/de-tools/timeline-report/pkg/runtime/terminal/export"
	"github.com/de-tools/timeline-report/pkg/services/command"
	"github.com/de-tools/timeline-report/pkg/services/config"

	"github.com/spf13/cobra"
)

const stdinInput = "-"

type RenderCmd struct {
	input     string
	document  string
	outputDir string
	open      bool
	archive   bool
	env       Environment
	reporter  *export.Reporter
}

func NewRenderCmd(env Environment, reporter *export.Reporter) *cobra.Command {
	rc := &RenderCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a feature compute time dump as an HTML timeline report",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "Path to the CSV dump, or - to read it from stdin")
	cmd.Flags().StringVarP(&rc.document, "document", "d", "", "Document name (defaults to the input file name)")
	cmd.Flags().StringVarP(&rc.outputDir, "output-dir", "o", "", "Directory for the CSV and HTML files (defaults to temp_dir)")
	cmd.Flags().BoolVar(&rc.open, "open", false, "Open the report in the default browser")
	cmd.Flags().BoolVar(&rc.archive, "archive", false, "Store the report in the history database")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := rc.env.Config()

	document := rc.document
	if document == "" {
		if rc.input == stdinInput {
			return fmt.Errorf("--document is required when reading from stdin")
		}
		document = strings.TrimSuffix(filepath.Base(rc.input), filepath.Ext(rc.input))
	}

	outputDir := rc.outputDir
	if outputDir == "" {
		outputDir = cfg.TempDir
	}

	open := rc.open
	if !cmd.Flags().Changed("open") {
		open = cfg.Viewer != config.ViewerNone
	}
	archive := rc.archive
	if !cmd.Flags().Changed("archive") {
		archive = cfg.History.Enabled
	}

	var h command.Host
	if rc.input == stdinInput {
		h = host.NewStreamHost(document, rc.env.Input(), rc.env.Messages())
	} else {
		h = host.NewFileHost(document, rc.input, rc.env.Messages())
	}

	opts := command.Options{Host: h, TempDir: outputDir}
	if open {
		if cfg.Viewer == config.ViewerHost {
			opts.Viewer = command.NewHostViewer(h)
		} else {
			opts.Viewer = rc.env.Viewer()
		}
	}
	if archive {
		svc, err := rc.env.Reports(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to open report history: %w", err)
		}
		opts.Archiver = svc
	}

	compute, err := command.NewTimelineCompute(opts)
	if err != nil {
		return err
	}

	result, err := compute.Execute(ctx)
	if err != nil {
		return err
	}

	return rc.reporter.HandleResult(result)
}
