package types

// TestStatus represents the possible outcomes of a single test execution.
type TestStatus string

const (
	TestStatusPassed  TestStatus = "passed"
	TestStatusFailed  TestStatus = "failed"
	TestStatusSkipped TestStatus = "skipped"
	// TestStatusError marks infrastructure failures (timeout, missing runner,
	// unparseable output, retry exhaustion) as opposed to assertion failures
	// reported by the runner itself.
	TestStatusError TestStatus = "error"
)

// IsValid reports whether s is one of the closed set of statuses.
func (s TestStatus) IsValid() bool {
	switch s {
	case TestStatusPassed, TestStatusFailed, TestStatusSkipped, TestStatusError:
		return true
	}
	return false
}

// TestResult captures the outcome of one test. Results are immutable once
// produced, except for the two artifact paths which the artifact locator
// fills in by lookup after the run.
type TestResult struct {
	TestID         string     `json:"test_id"`
	TestName       string     `json:"test_name"`
	Status         TestStatus `json:"status"`
	Duration       float64    `json:"duration"` // seconds
	ErrorMessage   string     `json:"error_message,omitempty"`
	ScreenshotPath string     `json:"screenshot_path,omitempty"`
	VideoPath      string     `json:"video_path,omitempty"`
	RetryCount     int        `json:"retry_count"`
}
