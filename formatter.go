package qaagent

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// printResultsTable prints the suite results to the console.
func (a *Agent) printResultsTable(suite *types.TestSuiteResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%s (%s)", suite.SuiteName, formatSeconds(suite.TotalDuration)))

	t.AppendHeader(table.Row{
		"Test", "ID", "Duration", "Retries", "Status", "Error",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "ID", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Retries", Align: text.AlignRight},
		{Name: "Error", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, result := range suite.TestResults {
		t.AppendRow(table.Row{
			result.TestName,
			result.TestID,
			formatSeconds(result.Duration),
			result.RetryCount,
			getResultString(result.Status),
			firstErrorLine(result.ErrorMessage),
		})
	}
	t.AppendSeparator()

	switch {
	case suite.Failed == 0 && suite.Errors == 0 && suite.Passed > 0:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case suite.Passed == 0 && suite.Failed == 0 && suite.Errors == 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%d tests", suite.TotalTests),
		formatSeconds(suite.TotalDuration),
		"",
		fmt.Sprintf("%d✓ %d✗ %d⚠ %d-", suite.Passed, suite.Failed, suite.Errors, suite.Skipped),
		fmt.Sprintf("%.1f%% success", suite.SuccessRate()),
	})

	t.Render()
}

// getResultString returns a short marker for the test status.
func getResultString(status types.TestStatus) string {
	switch status {
	case types.TestStatusPassed:
		return "✓ pass"
	case types.TestStatusSkipped:
		return "- skip"
	case types.TestStatusError:
		return "⚠ error"
	default:
		return "✗ fail"
	}
}

// firstErrorLine trims an error message to its most useful line for the
// console; the full message remains in the reports.
func firstErrorLine(msg string) string {
	if msg == "" {
		return ""
	}
	if idx := strings.Index(msg, "\n"); idx != -1 {
		msg = msg[:idx]
	}
	if len(msg) > 80 {
		return msg[:70] + "..."
	}
	return msg
}

// formatSeconds formats a duration in seconds with 1 decimal place.
func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
