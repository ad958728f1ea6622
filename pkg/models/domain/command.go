package domain

import "fmt"

// CommandDefinition is the host UI placement of a plugin command
type CommandDefinition struct {
	ID          string
	Name        string
	Description string
	Workspace   string
	TabID       string
	TabName     string
	PanelID     string
	PanelName   string
	After       string
	Promoted    bool
}

func (c CommandDefinition) String() string {
	return fmt.Sprintf("%s:%s", c.ID, c.Name)
}
