package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/de-tools/timeline-report/pkg/services/command"
	"github.com/de-tools/timeline-report/pkg/services/timeline"
)

type TableConfig struct {
	IDWidth       int
	DocumentWidth int
	TotalWidth    int
	CountWidth    int
	CreatedWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:       36,
		DocumentWidth: 32,
		TotalWidth:    14,
		CountWidth:    7,
		CreatedWidth:  20,
	}
}

var titleStyle = lipgloss.NewStyle().Bold(true)

const resultTemplate = `
{{title .DocumentName}}

Total timeline compute: {{duration .Report.TotalSeconds}} (hour:minutes:seconds.milliseconds)
Features: {{len .Report.Rows}}{{if .Report.Skipped}} ({{len .Report.Skipped}} skipped){{end}}
CSV:  {{.CSVPath}}
HTML: {{.HTMLPath}}
{{- if .ReportID}}
Archived as {{.ReportID}}
{{- end}}
`

const historyTemplate = `
{{title "Archived timeline reports"}}

{{separator}}
{{formatRow "ID" "Document" "Total" "Rows" "Skipped" "Created"}}
{{separator}}
{{range .}}{{formatRow .ID .DocumentName (duration .TotalSeconds) .RowCount .SkippedCount (created .CreatedAt)}}
{{end}}{{separator}}
`

const commandsTemplate = `
{{title "Plugin commands"}}
{{range .}}
=== {{.Name}} ===
ID: {{.ID}}
Placement: {{.Workspace}} / {{.TabID}} / {{.PanelID}}{{if .After}} (after {{.After}}){{end}}
Promoted: {{.Promoted}}
{{.Description}}
{{end}}`

// Reporter prints command results, report history and command manifests to a terminal
type Reporter struct {
	writer  io.Writer
	config  TableConfig
	funcMap template.FuncMap
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
	r.funcMap = r.newFuncMap()
	return r
}

func (c *Reporter) newFuncMap() template.FuncMap {
	return template.FuncMap{
		"title": func(s string) string {
			return titleStyle.Render(s)
		},
		"duration": timeline.FormatDuration,
		"created": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04:05")
		},
		"formatRow": func(id, document, total string, rows, skipped interface{}, created string) string {
			return fmt.Sprintf("| %-*s | %-*s | %*s | %*v | %*v | %-*s |",
				c.config.IDWidth, truncate(id, c.config.IDWidth),
				c.config.DocumentWidth, truncate(document, c.config.DocumentWidth),
				c.config.TotalWidth, total,
				c.config.CountWidth, rows,
				c.config.CountWidth, skipped,
				c.config.CreatedWidth, created)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.IDWidth+2),
				strings.Repeat("-", c.config.DocumentWidth+2),
				strings.Repeat("-", c.config.TotalWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.CreatedWidth+2))
		},
	}
}

func (c *Reporter) HandleResult(result *command.Result) error {
	return c.execute("result", resultTemplate, result)
}

func (c *Reporter) HandleHistory(summaries []domain.ReportSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(c.writer, "No archived reports found")
		return err
	}
	return c.execute("history", historyTemplate, summaries)
}

func (c *Reporter) HandleCommands(commands []domain.CommandDefinition) error {
	return c.execute("commands", commandsTemplate, commands)
}

func (c *Reporter) execute(name, text string, data interface{}) error {
	t, err := template.New(name).Funcs(c.funcMap).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
