package registry

import (
	"context"
	"errors"

	"github.com/de-tools/timeline-report/pkg/models/domain"
)

var ErrCommandNotFound = errors.New("command not found")

// Registry exposes the plugin command manifest
type Registry interface {
	List(ctx context.Context) ([]domain.CommandDefinition, error)
	Get(ctx context.Context, id string) (*domain.CommandDefinition, error)
}
