package timeline

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/de-tools/timeline-report/pkg/models/domain"
)

//go:embed templates/report.html.tmpl
var templates embed.FS

var defaultRenderer = mustRenderer()

// Renderer writes a Report as a self-contained HTML document
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"formatDuration": FormatDuration,
		"formatSeconds": func(seconds float64) string {
			return strconv.FormatFloat(seconds, 'f', -1, 64)
		},
	}

	tmpl, err := template.New("report.html.tmpl").Funcs(funcMap).ParseFS(templates, "templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

func mustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	return r.tmpl.Execute(w, report)
}

// RenderHTML renders the report into a string using the embedded template
func RenderHTML(report *domain.Report) (string, error) {
	var sb strings.Builder
	if err := defaultRenderer.Render(&sb, report); err != nil {
		return "", err
	}
	return sb.String(), nil
}
