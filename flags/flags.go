// Package flags defines the CLI surface of qaagent. Every flag is also
// settable through a QAAGENT_-prefixed environment variable.
package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "QAAGENT"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	TestPath = &cli.StringFlag{
		Name:    "test-path",
		Value:   "",
		EnvVars: prefixEnvVars("TEST_PATH"),
		Usage:   "Path to a test file or a directory from which to discover tests",
	}
	TestType = &cli.StringFlag{
		Name:    "test-type",
		Value:   "recruter_ai",
		EnvVars: prefixEnvVars("TEST_TYPE"),
		Usage:   "Label for this execution (eg. 'smoke', 'regression', 'recruter_ai')",
	}
	WorkDir = &cli.StringFlag{
		Name:    "workdir",
		Value:   ".",
		EnvVars: prefixEnvVars("WORKDIR"),
		Usage:   "Playwright project directory the runner is invoked from",
	}
	ReportsDir = &cli.StringFlag{
		Name:    "reports-dir",
		Value:   "reports",
		EnvVars: prefixEnvVars("REPORTS_DIR"),
		Usage:   "Root directory for per-execution artifact directories",
	}
	RunnerBinary = &cli.StringFlag{
		Name:    "runner-binary",
		Value:   "npx",
		EnvVars: prefixEnvVars("RUNNER_BINARY"),
		Usage:   "Binary used to invoke the Playwright runner",
	}
	BaseURL = &cli.StringFlag{
		Name:    "base-url",
		Value:   "",
		EnvVars: prefixEnvVars("BASE_URL"),
		Usage:   "Base URL of the application under test",
	}
	Headless = &cli.BoolFlag{
		Name:    "headless",
		Value:   true,
		EnvVars: prefixEnvVars("HEADLESS"),
		Usage:   "Run browsers headless",
	}
	Browser = &cli.StringFlag{
		Name:    "browser",
		Value:   "chromium",
		EnvVars: prefixEnvVars("BROWSER"),
		Usage:   "Browser to run tests against (chromium, firefox, webkit)",
	}
	Timeout = &cli.IntFlag{
		Name:    "timeout",
		Value:   30000,
		EnvVars: prefixEnvVars("TIMEOUT"),
		Usage:   "Per-test timeout in milliseconds passed to the runner",
	}
	Retries = &cli.IntFlag{
		Name:    "retries",
		Value:   2,
		EnvVars: prefixEnvVars("RETRIES"),
		Usage:   "Number of retries for execution-layer failures",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between suite runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	Settings = &cli.StringFlag{
		Name:    "settings",
		Value:   "",
		EnvVars: prefixEnvVars("SETTINGS"),
		Usage:   "Path to a YAML settings file with execution defaults",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (trace, debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	TestPath,
}

var optionalFlags = []cli.Flag{
	TestType,
	WorkDir,
	ReportsDir,
	RunnerBinary,
	BaseURL,
	Headless,
	Browser,
	Timeout,
	Retries,
	RunInterval,
	Settings,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
