// Package reporting serializes completed suite results into JSON, HTML and
// Markdown reports. The JSON document is the canonical serialization; both
// other formats are rendered from it so the figures can never diverge.
package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// Report file names inside the per-execution artifacts directory.
const (
	JSONReportFilename     = "execution_report.json"
	HTMLReportFilename     = "execution_report.html"
	MarkdownReportFilename = "execution_report.md"
)

// WriteError is an I/O failure producing a report file. A suite without a
// report is incomplete, so this is fatal for the run.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Formatter renders a suite result into one output format.
type Formatter interface {
	Format(suite *types.TestSuiteResult) (string, error)
}

// Generator writes the three report files for one completed suite.
type Generator struct {
	log      zerolog.Logger
	html     Formatter
	markdown Formatter
}

// NewGenerator creates a report generator with the standard formatters.
func NewGenerator(log zerolog.Logger) (*Generator, error) {
	html, err := NewHTMLFormatter()
	if err != nil {
		return nil, fmt.Errorf("failed to create HTML formatter: %w", err)
	}
	return &Generator{
		log:      log.With().Str("component", "reporting").Logger(),
		html:     html,
		markdown: NewMarkdownFormatter(),
	}, nil
}

// Generate writes execution_report.{json,html,md} into the suite's
// artifacts directory and returns the HTML report path, which becomes the
// suite's report path. Writes are atomic: a reader never observes a
// half-written file.
func (g *Generator) Generate(suite *types.TestSuiteResult) (string, error) {
	canonical, err := MarshalSuite(suite)
	if err != nil {
		return "", fmt.Errorf("failed to serialize suite result: %w", err)
	}

	// Render HTML and Markdown from the canonical document rather than the
	// live struct, so every format reports the same fields.
	var fromCanonical types.TestSuiteResult
	if err := json.Unmarshal(canonical, &fromCanonical); err != nil {
		return "", fmt.Errorf("failed to reload canonical report: %w", err)
	}

	jsonPath := filepath.Join(suite.ArtifactsDir, JSONReportFilename)
	if err := writeAtomic(jsonPath, canonical); err != nil {
		return "", err
	}

	htmlContent, err := g.html.Format(&fromCanonical)
	if err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	htmlPath := filepath.Join(suite.ArtifactsDir, HTMLReportFilename)
	if err := writeAtomic(htmlPath, []byte(htmlContent)); err != nil {
		return "", err
	}

	mdContent, err := g.markdown.Format(&fromCanonical)
	if err != nil {
		return "", fmt.Errorf("failed to render Markdown report: %w", err)
	}
	mdPath := filepath.Join(suite.ArtifactsDir, MarkdownReportFilename)
	if err := writeAtomic(mdPath, []byte(mdContent)); err != nil {
		return "", err
	}

	g.log.Info().Str("dir", suite.ArtifactsDir).Msg("execution reports generated")
	return htmlPath, nil
}

// MarshalSuite produces the canonical JSON serialization. Marshaling the
// same suite twice yields byte-identical output.
func MarshalSuite(suite *types.TestSuiteResult) ([]byte, error) {
	return json.MarshalIndent(suite, "", "  ")
}

// LoadSuite reads a canonical JSON report back into a suite result.
func LoadSuite(path string) (*types.TestSuiteResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	var suite types.TestSuiteResult
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return &suite, nil
}

// writeAtomic writes to a temporary file in the target directory and
// renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
