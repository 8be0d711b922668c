package runner

import "time"

const (
	// DefaultRunnerBinary is the command used to invoke the Playwright CLI.
	DefaultRunnerBinary = "npx"

	// Runner subcommand and flags.
	RunnerCommand     = "playwright"
	RunnerTestCommand = "test"
	ReporterFlag      = "--reporter=json"
	OutputDirFlag     = "--output-dir"
	HeadlessFlag      = "--headless"
	HeadedFlag        = "--headed"
	BrowserFlag       = "--browser"
	TimeoutFlag       = "--timeout"
	RetriesFlag       = "--retries"
	VideoPolicyFlag   = "--video=retain-on-failure"
	ScreenshotFlag    = "--screenshot=only-on-failure"

	// ProcessTimeout is the hard wall-clock ceiling for one runner
	// invocation. It is independent of the runner's own per-action timeout
	// (milliseconds, passed via TimeoutFlag); the two must not be conflated.
	ProcessTimeout = 300 * time.Second

	// ExecutionIDPrefix scopes all per-run artifact directories.
	ExecutionIDPrefix = "exec"

	// executionIDTimeLayout gives second resolution execution IDs.
	executionIDTimeLayout = "20060102_150405"
)

// Artifact subdirectory names created for every execution run and consulted
// read-only by the artifact locator.
const (
	ScreenshotsDirName = "screenshots"
	VideosDirName      = "videos"
	TracesDirName      = "traces"
	TestResultsDirName = "test-results"
)
