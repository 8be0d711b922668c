package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// Environment is the isolated key/value environment for one execution run,
// plus the concrete artifact directories that exist before the run starts.
// Each run receives a freshly built instance; instances are never shared.
type Environment struct {
	ExecutionID  string
	Timestamp    string
	ArtifactsDir string

	ScreenshotsDir string
	VideosDir      string
	TracesDir      string
	TestResultsDir string

	Config types.ExecutionConfig

	// Vars holds the orchestrator-specific variables. The process runner
	// appends these to the inherited process environment.
	Vars map[string]string
}

// EnvironmentBuilder produces per-run environments under a reports root.
type EnvironmentBuilder struct {
	log         zerolog.Logger
	reportsRoot string
	now         func() time.Time

	mu     sync.Mutex
	issued map[string]int // execution IDs issued this process, for collision suffixes
}

// NewEnvironmentBuilder creates a builder rooted at reportsRoot.
func NewEnvironmentBuilder(log zerolog.Logger, reportsRoot string) *EnvironmentBuilder {
	return &EnvironmentBuilder{
		log:         log.With().Str("component", "environment").Logger(),
		reportsRoot: reportsRoot,
		now:         time.Now,
		issued:      make(map[string]int),
	}
}

// Build computes a fresh environment for one suite run: a unique execution
// ID, the artifact directory tree (created idempotently), and the flat
// variable map the runner process receives.
func (b *EnvironmentBuilder) Build(cfg types.ExecutionConfig) (*Environment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid execution config: %w", err)
	}

	now := b.now()
	executionID := b.issueExecutionID(cfg.TestType, now)
	artifactsDir := filepath.Join(b.reportsRoot, executionID)

	env := &Environment{
		ExecutionID:    executionID,
		Timestamp:      now.Format(executionIDTimeLayout),
		ArtifactsDir:   artifactsDir,
		ScreenshotsDir: filepath.Join(artifactsDir, ScreenshotsDirName),
		VideosDir:      filepath.Join(artifactsDir, VideosDirName),
		TracesDir:      filepath.Join(artifactsDir, TracesDirName),
		TestResultsDir: filepath.Join(artifactsDir, TestResultsDirName),
		Config:         cfg,
	}

	for _, dir := range []string{
		artifactsDir,
		env.ScreenshotsDir,
		env.VideosDir,
		env.TracesDir,
		env.TestResultsDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
		}
	}

	env.Vars = b.buildVars(env, cfg)

	b.log.Info().
		Str("execution_id", executionID).
		Str("artifacts_dir", artifactsDir).
		Str("browser", string(cfg.Browser)).
		Bool("headless", cfg.Headless).
		Msg("execution environment ready")

	return env, nil
}

// issueExecutionID returns "exec_<type>_<YYYYMMDD_HHMMSS>", appending a
// monotonically increasing suffix when the same category+second is issued
// more than once in this process.
func (b *EnvironmentBuilder) issueExecutionID(testType string, now time.Time) string {
	base := fmt.Sprintf("%s_%s_%s", ExecutionIDPrefix, testType, now.Format(executionIDTimeLayout))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued[base]++
	if n := b.issued[base]; n > 1 {
		return fmt.Sprintf("%s_%d", base, n)
	}
	return base
}

func (b *EnvironmentBuilder) buildVars(env *Environment, cfg types.ExecutionConfig) map[string]string {
	return map[string]string{
		// Target and credentials.
		"BASE_URL":            cfg.BaseURL,
		"RECRUTER_BASE_URL":   cfg.BaseURL,
		"RECRUTER_SIGNUP_URL": cfg.SignupURL,
		"TEST_EMAIL":          cfg.TestEmail,
		"TEST_PASSWORD":       cfg.TestPassword,

		// Browser configuration, duplicated for runner scripts that read
		// env instead of flags.
		"HEADLESS":     strconv.FormatBool(cfg.Headless),
		"BROWSER":      string(cfg.Browser),
		"BROWSER_TYPE": string(cfg.Browser),

		// Timeouts and retries.
		"TIMEOUT":      strconv.Itoa(cfg.TimeoutMS),
		"TEST_TIMEOUT": strconv.Itoa(cfg.TimeoutMS),
		"RETRIES":      strconv.Itoa(cfg.Retries),

		// Execution settings.
		"PARALLEL_WORKERS":   strconv.Itoa(cfg.ParallelWorkers),
		"VIDEO_ENABLED":      strconv.FormatBool(cfg.VideoEnabled),
		"SCREENSHOT_ENABLED": strconv.FormatBool(cfg.ScreenshotEnabled),

		// Execution context identifiers.
		"TEST_TYPE":    cfg.TestType,
		"EXECUTION_ID": env.ExecutionID,
		"TIMESTAMP":    env.Timestamp,

		// Artifact directories for the runner.
		"PLAYWRIGHT_SCREENSHOTS_DIR": env.ScreenshotsDir,
		"PLAYWRIGHT_VIDEOS_DIR":      env.VideosDir,
		"PLAYWRIGHT_REPORTS_DIR":     env.ArtifactsDir,

		// Runner behavior.
		"PWTEST_SKIP_TEST_OUTPUT": "false",
		"PWTEST_HTML_REPORT_OPEN": "never",
	}
}
