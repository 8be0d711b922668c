// Package qaagent orchestrates browser test execution: it discovers test
// files, drives the external Playwright runner, and turns the results into
// reports and statistics.
package qaagent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/exitcodes"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/metrics"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/reporting"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/runner"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/stats"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// Agent runs test suites once or on an interval.
type Agent struct {
	ctx     context.Context
	config  *Config
	version string
	runner  runner.TestRunner
	reports *reporting.Generator
	tracker *stats.Tracker

	resultMu sync.Mutex
	result   *types.TestSuiteResult

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*Agent, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug().
		Str("testPath", config.TestPath).
		Str("workDir", config.WorkDir).
		Str("reportsDir", config.ReportsDir).
		Dur("runInterval", config.RunInterval).
		Bool("runOnce", config.RunOnce).
		Msg("creating agent")

	testRunner, err := runner.NewTestRunner(runner.Config{
		Log:          config.Log,
		WorkDir:      config.WorkDir,
		ReportsRoot:  config.ReportsDir,
		RunnerBinary: config.RunnerBinary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create test runner: %w", err)
	}

	reports, err := reporting.NewGenerator(config.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create report generator: %w", err)
	}

	return &Agent{
		ctx:              ctx,
		config:           config,
		version:          version,
		runner:           testRunner,
		reports:          reports,
		tracker:          stats.NewTracker(),
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the suite immediately and, unless in run-once mode, keeps
// running it at the configured interval.
func (a *Agent) Start(ctx context.Context) error {
	// Panics anywhere in a run are runtime errors, exit code 2.
	defer func() {
		if r := recover(); r != nil {
			a.config.Log.Error().Interface("error", r).Msg("runtime error occurred")
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	a.ctx = ctx
	a.done = make(chan struct{})
	a.running.Store(true)

	if a.config.RunOnce {
		a.config.Log.Info().Msg("starting qaagent in run-once mode")
	} else {
		a.config.Log.Info().Dur("interval", a.config.RunInterval).Msg("starting qaagent in continuous mode")
	}

	if err := a.runSuite(); err != nil {
		a.config.Log.Error().Err(err).Msg("suite execution failed")
		return err
	}

	if a.config.RunOnce {
		a.config.Log.Info().Msg("suite completed, exiting (run-once mode)")
		go func() {
			a.shutdownCallback(nil)
		}()
		return nil
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.config.Log.Debug().Dur("interval", a.config.RunInterval).Msg("starting periodic suite runner")

		for {
			select {
			case <-time.After(a.config.RunInterval):
				if !a.running.Load() {
					a.config.Log.Debug().Msg("service stopped, exiting periodic suite runner")
					return
				}
				a.config.Log.Info().Msg("running periodic suite")
				if err := a.runSuite(); err != nil {
					a.config.Log.Error().Err(err).Msg("periodic suite execution failed")
				}

			case <-a.done:
				a.config.Log.Debug().Msg("done signal received, stopping periodic suite runner")
				return

			case <-ctx.Done():
				a.config.Log.Debug().Msg("context canceled, stopping periodic suite runner")
				a.running.Store(false)
				return
			}
		}
	}()
	a.config.Log.Debug().Msg("qaagent started")
	return nil
}

// runSuite executes one full suite and writes its reports. Failing tests do
// not fail the run; failures to discover, execute or report do.
func (a *Agent) runSuite() error {
	a.config.Log.Info().Str("testPath", a.config.TestPath).Msg("running test suite")

	suite, err := a.runner.RunSuite(a.ctx, a.config.TestPath, a.config.Execution)
	if err != nil {
		metrics.RecordErrorDetails("suite execution failed", err)
		return NewOrchestrationError(err)
	}

	reportPath, err := a.reports.Generate(suite)
	if err != nil {
		metrics.RecordErrorDetails("report generation failed", err)
		return NewOrchestrationError(err)
	}
	suite.ReportPath = reportPath
	a.resultMu.Lock()
	a.result = suite
	a.resultMu.Unlock()

	a.tracker.Record(suite)
	metrics.RecordSuite(a.config.Execution.TestType,
		suite.TotalTests, suite.Passed, suite.Failed, suite.Skipped, suite.Errors,
		suite.EndTime.Sub(suite.StartTime))

	a.printResultsTable(suite)

	a.config.Log.Info().
		Str("suite_id", suite.SuiteID).
		Int("total", suite.TotalTests).
		Int("passed", suite.Passed).
		Int("failed", suite.Failed).
		Str("report", reportPath).
		Msg("suite run completed")
	return nil
}

// Stop stops the qaagent service.
func (a *Agent) Stop(ctx context.Context) error {
	a.config.Log.Info().Msg("stopping qaagent")

	if !a.running.Load() {
		a.config.Log.Debug().Msg("service already stopped, nothing to do")
		return nil
	}

	a.running.Store(false)
	close(a.done)

	a.config.Log.Info().Msg("qaagent stopped")
	return nil
}

// Stopped returns true if the qaagent service is stopped.
func (a *Agent) Stopped() bool {
	return !a.running.Load()
}

// Result returns the most recent suite result, or nil before the first run.
func (a *Agent) Result() *types.TestSuiteResult {
	a.resultMu.Lock()
	defer a.resultMu.Unlock()
	return a.result
}

// Stats returns a snapshot of the execution statistics.
func (a *Agent) Stats() stats.Snapshot {
	return a.tracker.Snapshot()
}

// StatusPayload provides the data served by the /status endpoint.
func (a *Agent) StatusPayload() any {
	return struct {
		Version    string                 `json:"version"`
		Running    bool                   `json:"running"`
		TestPath   string                 `json:"test_path"`
		ReportsDir string                 `json:"reports_dir"`
		TestType   string                 `json:"test_type"`
		Browser    string                 `json:"browser"`
		Headless   bool                   `json:"headless"`
		Stats      stats.Snapshot         `json:"stats"`
		LastSuite  *types.TestSuiteResult `json:"last_suite,omitempty"`
	}{
		Version:    a.version,
		Running:    a.running.Load(),
		TestPath:   a.config.TestPath,
		ReportsDir: a.config.ReportsDir,
		TestType:   a.config.Execution.TestType,
		Browser:    string(a.config.Execution.Browser),
		Headless:   a.config.Execution.Headless,
		Stats:      a.tracker.Snapshot(),
		LastSuite:  a.Result(),
	}
}

// ListExecutionReports returns up to limit canonical JSON report paths
// under the reports directory, newest execution ID first. A limit of 0
// returns all of them.
func (a *Agent) ListExecutionReports(limit int) ([]string, error) {
	entries, err := os.ReadDir(a.config.ReportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		report := filepath.Join(a.config.ReportsDir, entry.Name(), reporting.JSONReportFilename)
		if _, err := os.Stat(report); err == nil {
			paths = append(paths, report)
		}
	}
	// Execution IDs embed a second-resolution timestamp, so the reverse
	// lexicographic order is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	return paths, nil
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving on.
func (a *Agent) WaitForShutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		a.config.Log.Warn().Err(ctx.Err()).Msg("timed out waiting for goroutines to terminate")
		return ctx.Err()
	}
}
