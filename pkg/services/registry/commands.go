package registry

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/de-tools/timeline-report/pkg/models/domain"
	"gopkg.in/ini.v1"
)

//go:embed commands.ini
var defaultManifest []byte

type iniRegistry struct {
	cfg *ini.File
}

// NewRegistry loads a command manifest. source is anything ini.Load accepts:
// a file path, []byte or io.ReadCloser.
func NewRegistry(source interface{}) (Registry, error) {
	cfg, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("failed to load command manifest: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

// NewDefaultRegistry returns the manifest shipped with the binary
func NewDefaultRegistry() (Registry, error) {
	return NewRegistry(defaultManifest)
}

func (r *iniRegistry) List(_ context.Context) ([]domain.CommandDefinition, error) {
	var commands []domain.CommandDefinition
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		commands = append(commands, sectionToCommand(section))
	}
	return commands, nil
}

func (r *iniRegistry) Get(_ context.Context, id string) (*domain.CommandDefinition, error) {
	section, err := r.cfg.GetSection(id)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, id)
	}

	cmd := sectionToCommand(section)
	return &cmd, nil
}

func sectionToCommand(section *ini.Section) domain.CommandDefinition {
	name := section.Key("name").String()
	if name == "" {
		name = section.Name()
	}

	return domain.CommandDefinition{
		ID:          section.Name(),
		Name:        name,
		Description: section.Key("description").String(),
		Workspace:   section.Key("workspace").String(),
		TabID:       section.Key("tab_id").String(),
		TabName:     section.Key("tab_name").String(),
		PanelID:     section.Key("panel_id").String(),
		PanelName:   section.Key("panel_name").String(),
		After:       section.Key("after").String(),
		Promoted:    section.Key("promoted").MustBool(false),
	}
}
