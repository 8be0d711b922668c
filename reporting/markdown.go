package reporting

import (
	"fmt"
	"strings"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// statusGlyphs decorate the per-test lines in the Markdown report.
var statusGlyphs = map[types.TestStatus]string{
	types.TestStatusPassed:  "✅",
	types.TestStatusFailed:  "❌",
	types.TestStatusError:   "⚠️",
	types.TestStatusSkipped: "⏭️",
}

// MarkdownFormatter renders a suite result as a Markdown summary.
type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter { return &MarkdownFormatter{} }

// Format implements Formatter.
func (f *MarkdownFormatter) Format(suite *types.TestSuiteResult) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", suite.SuiteName)
	fmt.Fprintf(&sb, "**Suite ID:** `%s`\n\n", suite.SuiteID)
	fmt.Fprintf(&sb, "**Started:** %s\n\n", suite.StartTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "**Duration:** %.2fs\n\n", suite.TotalDuration)

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Total | Passed | Failed | Errors | Skipped | Success Rate |\n")
	sb.WriteString("|-------|--------|--------|--------|---------|--------------|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d | %d | %.1f%% |\n\n",
		suite.TotalTests, suite.Passed, suite.Failed, suite.Errors, suite.Skipped,
		suite.SuccessRate())

	sb.WriteString("## Test Results\n\n")
	for _, result := range suite.TestResults {
		fmt.Fprintf(&sb, "### %s %s\n\n", glyphFor(result.Status), result.TestName)
		fmt.Fprintf(&sb, "- **Status:** %s\n", result.Status)
		fmt.Fprintf(&sb, "- **Duration:** %.2fs\n", result.Duration)
		if result.RetryCount > 0 {
			fmt.Fprintf(&sb, "- **Retries:** %d\n", result.RetryCount)
		}
		if result.ErrorMessage != "" {
			fmt.Fprintf(&sb, "- **Error:** %s\n", result.ErrorMessage)
		}
		if result.ScreenshotPath != "" {
			fmt.Fprintf(&sb, "- **Screenshot:** `%s`\n", result.ScreenshotPath)
		}
		if result.VideoPath != "" {
			fmt.Fprintf(&sb, "- **Video:** `%s`\n", result.VideoPath)
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func glyphFor(status types.TestStatus) string {
	if glyph, ok := statusGlyphs[status]; ok {
		return glyph
	}
	return "❓"
}
