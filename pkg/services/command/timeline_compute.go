package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/de-tools/timeline-report/pkg/services/timeline"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const TimelineComputeID = "PTPM-timelinecompute"

type Options struct {
	Host     Host
	Viewer   Viewer
	Archiver Archiver
	TempDir  string
}

type Result struct {
	DocumentName string
	CSVPath      string
	HTMLPath     string
	ReportID     string
	Report       *domain.Report
}

// TimelineCompute dumps the active document's feature compute times
// and turns them into an HTML report
type TimelineCompute struct {
	host     Host
	viewer   Viewer
	archiver Archiver
	tempDir  string
}

func NewTimelineCompute(opts Options) (*TimelineCompute, error) {
	if opts.Host == nil {
		return nil, fmt.Errorf("host is nil")
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}

	return &TimelineCompute{
		host:     opts.Host,
		viewer:   opts.Viewer,
		archiver: opts.Archiver,
		tempDir:  opts.TempDir,
	}, nil
}

// Execute runs the command. Failures are logged, reported through the host message box and returned.
func (c *TimelineCompute) Execute(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("command", TimelineComputeID).Logger()
	ctx = logger.WithContext(ctx)

	result, err := c.execute(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("timeline compute command failed")
		if boxErr := c.host.MessageBox(ctx, fmt.Sprintf("Failed to generate timeline report:\n%v", err)); boxErr != nil {
			logger.Error().Err(boxErr).Msg("failed to show message box")
		}
		return nil, err
	}

	return result, nil
}

func (c *TimelineCompute) execute(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	docName, err := c.host.ActiveDocumentName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active document: %w", err)
	}

	dump, err := c.host.ExecuteTextCommand(ctx, DumpFeaturesCommand)
	if err != nil {
		return nil, fmt.Errorf("failed to dump features: %w", err)
	}
	logger.Debug().Str("document", docName).Msg("generated features data")

	csvPath, err := c.writeTempFile(".csv", func(f *os.File) error {
		_, err := f.WriteString(dump)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write features csv: %w", err)
	}

	report, err := c.buildFromFile(ctx, docName, csvPath)
	if err != nil {
		return nil, err
	}

	htmlPath, err := c.writeTempFile(".html", func(f *os.File) error {
		html, err := timeline.RenderHTML(report)
		if err != nil {
			return err
		}
		_, err = f.WriteString(html)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write html report: %w", err)
	}
	htmlPath = filepath.ToSlash(htmlPath)

	result := &Result{
		DocumentName: docName,
		CSVPath:      csvPath,
		HTMLPath:     htmlPath,
		Report:       report,
	}

	if c.archiver != nil {
		id, err := c.archiver.Archive(ctx, report)
		if err != nil {
			logger.Warn().Err(err).Str("document", docName).Msg("failed to archive report")
		} else {
			result.ReportID = id
		}
	}

	logger.Info().
		Str("csv", csvPath).
		Str("html", htmlPath).
		Str("total", timeline.FormatDuration(report.TotalSeconds)).
		Int("rows", len(report.Rows)).
		Int("skipped", len(report.Skipped)).
		Msg("report generated")

	if c.viewer != nil {
		if err := c.viewer.Display(ctx, htmlPath); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (c *TimelineCompute) buildFromFile(ctx context.Context, docName, path string) (*domain.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", timeline.ErrInputUnavailable, err)
	}
	defer f.Close()

	return timeline.BuildReport(ctx, docName, f)
}

func (c *TimelineCompute) writeTempFile(ext string, write func(f *os.File) error) (string, error) {
	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + ext
	path := filepath.Join(c.tempDir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
