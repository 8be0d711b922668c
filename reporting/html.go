package reporting

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// HTMLFormatter renders a suite result into a standalone HTML page.
type HTMLFormatter struct {
	tmpl *template.Template
}

// NewHTMLFormatter parses the embedded report template.
func NewHTMLFormatter() (*HTMLFormatter, error) {
	tmpl, err := template.New("report.html.tmpl").Funcs(template.FuncMap{
		"statusClass": statusClass,
		"pct":         formatPercent,
		"seconds":     formatSeconds,
	}).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &HTMLFormatter{tmpl: tmpl}, nil
}

// Format implements Formatter.
func (f *HTMLFormatter) Format(suite *types.TestSuiteResult) (string, error) {
	var sb strings.Builder
	if err := f.tmpl.Execute(&sb, suite); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// statusClass maps a test status to the CSS class used by the template.
func statusClass(status types.TestStatus) string {
	switch status {
	case types.TestStatusPassed:
		return "passed"
	case types.TestStatusFailed:
		return "failed"
	case types.TestStatusSkipped:
		return "skipped"
	default:
		return "error"
	}
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func formatSeconds(d float64) string {
	return fmt.Sprintf("%.2fs", d)
}
