package types

import (
	"fmt"
	"time"
)

// TestSuiteResult captures one orchestrated execution run over all
// discovered test files.
type TestSuiteResult struct {
	SuiteID       string       `json:"suite_id"`
	SuiteName     string       `json:"suite_name"`
	TotalTests    int          `json:"total_tests"`
	Passed        int          `json:"passed"`
	Failed        int          `json:"failed"`
	Skipped       int          `json:"skipped"`
	Errors        int          `json:"errors"`
	TotalDuration float64      `json:"total_duration"` // wall-clock seconds, suite start to end
	StartTime     time.Time    `json:"start_time"`
	EndTime       time.Time    `json:"end_time"`
	TestResults   []TestResult `json:"test_results"`
	ArtifactsDir  string       `json:"artifacts_dir"`
	ReportPath    string       `json:"report_path,omitempty"`
}

// Aggregate folds an ordered sequence of test results into a suite result,
// preserving discovery order in TestResults. TotalDuration is the wall-clock
// span between start and end, not the sum of per-test durations.
func Aggregate(suiteID, suiteName string, results []TestResult, start, end time.Time, artifactsDir string) TestSuiteResult {
	suite := TestSuiteResult{
		SuiteID:       suiteID,
		SuiteName:     suiteName,
		TotalTests:    len(results),
		TotalDuration: end.Sub(start).Seconds(),
		StartTime:     start,
		EndTime:       end,
		TestResults:   results,
		ArtifactsDir:  artifactsDir,
	}
	for _, r := range results {
		switch r.Status {
		case TestStatusPassed:
			suite.Passed++
		case TestStatusFailed:
			suite.Failed++
		case TestStatusSkipped:
			suite.Skipped++
		default:
			suite.Errors++
		}
	}
	return suite
}

// Validate checks the count invariant that holds for every completed suite.
func (r *TestSuiteResult) Validate() error {
	if r.TotalTests != len(r.TestResults) {
		return fmt.Errorf("total_tests %d does not match %d recorded results", r.TotalTests, len(r.TestResults))
	}
	if sum := r.Passed + r.Failed + r.Skipped + r.Errors; sum != r.TotalTests {
		return fmt.Errorf("status counts sum to %d, want %d", sum, r.TotalTests)
	}
	return nil
}

// SuccessRate returns the percentage of passed tests, 0 for an empty suite.
func (r *TestSuiteResult) SuccessRate() float64 {
	if r.TotalTests == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.TotalTests) * 100
}
