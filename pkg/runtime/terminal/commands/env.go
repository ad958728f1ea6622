package commands

import (
	"context"
	"io"

	"github.com/de-tools/timeline-report/pkg/services/command"
	"github.com/de-tools/timeline-report/pkg/services/config"
	"github.com/de-tools/timeline-report/pkg/services/registry"
	"github.com/de-tools/timeline-report/pkg/services/reports"
)

// Environment gives subcommands access to dependencies that are only
// available once the root command has loaded its configuration.
type Environment interface {
	Config() *config.Config
	// Reports returns the report service. withHistory opens the archive.
	Reports(ctx context.Context, withHistory bool) (reports.Service, error)
	Commands() (registry.Registry, error)
	Viewer() command.Viewer
	Input() io.Reader
	Messages() io.Writer
}
