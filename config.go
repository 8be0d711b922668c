package qaagent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/flags"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// Config holds the application configuration
type Config struct {
	TestPath     string                // File or directory to execute
	WorkDir      string                // Playwright project directory
	ReportsDir   string                // Root for per-execution artifact dirs
	RunnerBinary string                // Binary invoking the Playwright runner
	RunInterval  time.Duration         // Interval between suite runs
	RunOnce      bool                  // Exit after one suite run
	Execution    types.ExecutionConfig // Settings forwarded to the runner
	Log          zerolog.Logger
}

// NewConfig creates a new Config from cli context. Precedence for execution
// settings is CLI flag (or QAAGENT_ env var) over the YAML settings file
// over built-in defaults. Credentials come from the process environment,
// with a .env file in the working directory loaded first if present.
func NewConfig(ctx *cli.Context, log zerolog.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	testPath := ctx.String(flags.TestPath.Name)
	if testPath == "" {
		return nil, errors.New("test path is required")
	}
	absTestPath, err := filepath.Abs(testPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for test path '%s': %w", testPath, err)
	}

	workDir, err := filepath.Abs(ctx.String(flags.WorkDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for workdir: %w", err)
	}
	reportsDir, err := filepath.Abs(ctx.String(flags.ReportsDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for reports dir: %w", err)
	}

	// Credentials and local overrides live in a .env next to the automation
	// project. Absence is not an error.
	if err := godotenv.Load(filepath.Join(workDir, ".env")); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	exec := types.DefaultExecutionConfig()

	if settings := ctx.String(flags.Settings.Name); settings != "" {
		overrides, err := loadSettings(settings)
		if err != nil {
			return nil, err
		}
		exec = exec.Apply(overrides)
	}

	if v := os.Getenv("TEST_EMAIL"); v != "" {
		exec.TestEmail = v
	}
	if v := os.Getenv("TEST_PASSWORD"); v != "" {
		exec.TestPassword = v
	}

	// Flags (and their QAAGENT_ env vars) win over the settings file.
	if ctx.IsSet(flags.BaseURL.Name) {
		exec.BaseURL = ctx.String(flags.BaseURL.Name)
	}
	if ctx.IsSet(flags.Headless.Name) {
		exec.Headless = ctx.Bool(flags.Headless.Name)
	}
	if ctx.IsSet(flags.Browser.Name) {
		exec.Browser = types.Browser(ctx.String(flags.Browser.Name))
	}
	if ctx.IsSet(flags.Timeout.Name) {
		exec.TimeoutMS = ctx.Int(flags.Timeout.Name)
	}
	if ctx.IsSet(flags.Retries.Name) {
		exec.Retries = ctx.Int(flags.Retries.Name)
	}
	exec.TestType = ctx.String(flags.TestType.Name)

	if err := exec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid execution configuration: %w", err)
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)

	return &Config{
		TestPath:     absTestPath,
		WorkDir:      workDir,
		ReportsDir:   reportsDir,
		RunnerBinary: ctx.String(flags.RunnerBinary.Name),
		RunInterval:  runInterval,
		RunOnce:      runInterval == 0,
		Execution:    exec,
		Log:          log,
	}, nil
}

// loadSettings reads execution overrides from a YAML file.
func loadSettings(path string) (types.ExecutionOverrides, error) {
	var overrides types.ExecutionOverrides
	data, err := os.ReadFile(path)
	if err != nil {
		return overrides, fmt.Errorf("failed to read settings file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return overrides, fmt.Errorf("failed to parse settings file '%s': %w", path, err)
	}
	return overrides, nil
}
