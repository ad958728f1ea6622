package command

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/de-tools/timeline-report/pkg/models/domain"
)

const (
	DumpFeaturesCommand = "fusion.DumpFeaturesByComputeTime /csv"
	DisplayCommand      = "QTWebBrowser.Display"
	displayCommand      = DisplayCommand + " file:///%s"
)

// Host is the CAD application the command runs inside
type Host interface {
	ActiveDocumentName(ctx context.Context) (string, error)
	ExecuteTextCommand(ctx context.Context, command string) (string, error)
	MessageBox(ctx context.Context, message string) error
}

// Viewer shows a rendered report to the user
type Viewer interface {
	Display(ctx context.Context, path string) error
}

// Archiver keeps a copy of generated reports
type Archiver interface {
	Archive(ctx context.Context, report *domain.Report) (string, error)
}

// HostViewer opens reports in the host's embedded browser
type HostViewer struct {
	host Host
}

func NewHostViewer(host Host) *HostViewer {
	return &HostViewer{host: host}
}

func (v *HostViewer) Display(ctx context.Context, path string) error {
	target := strings.TrimPrefix(filepath.ToSlash(path), "/")
	_, err := v.host.ExecuteTextCommand(ctx, fmt.Sprintf(displayCommand, target))
	if err != nil {
		return fmt.Errorf("failed to display %s: %w", path, err)
	}
	return nil
}
