// Package runner executes discovered browser test files through the
// external Playwright runner and turns their output into canonical results.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/discovery"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// TestRunner runs one full suite: discovery, environment setup, per-file
// execution with retries, and aggregation into a suite result.
type TestRunner interface {
	RunSuite(ctx context.Context, testPath string, cfg types.ExecutionConfig) (*types.TestSuiteResult, error)
}

// Config holds configuration for creating a suite runner.
type Config struct {
	Log          zerolog.Logger
	WorkDir      string // automation project root the runner executes from
	ReportsRoot  string // root under which per-execution artifact dirs are created
	RunnerBinary string // defaults to DefaultRunnerBinary
}

var _ TestRunner = (*suiteRunner)(nil)

type suiteRunner struct {
	log        zerolog.Logger
	discoverer *discovery.Discoverer
	envBuilder *EnvironmentBuilder
	process    ProcessRunner
	parser     *ResultParser
	workDir    string
	binary     string
	tracer     trace.Tracer
}

// NewTestRunner creates a suite runner.
func NewTestRunner(cfg Config) (TestRunner, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("work directory is required")
	}
	if cfg.ReportsRoot == "" {
		return nil, errors.New("reports root is required")
	}
	if cfg.RunnerBinary == "" {
		cfg.RunnerBinary = DefaultRunnerBinary
	}

	process, err := NewProcessRunner(cfg.Log, cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create process runner: %w", err)
	}

	return &suiteRunner{
		log:        cfg.Log.With().Str("component", "runner").Logger(),
		discoverer: discovery.New(cfg.Log),
		envBuilder: NewEnvironmentBuilder(cfg.Log, cfg.ReportsRoot),
		process:    process,
		parser:     NewResultParser(cfg.Log),
		workDir:    cfg.WorkDir,
		binary:     cfg.RunnerBinary,
		tracer:     otel.Tracer("qaagent/runner"),
	}, nil
}

// RunSuite executes every discovered test file in discovery order. Per-file
// failures are contained as error results; only suite-level preconditions
// (nothing discovered, environment setup) fail the run.
func (r *suiteRunner) RunSuite(ctx context.Context, testPath string, cfg types.ExecutionConfig) (*types.TestSuiteResult, error) {
	runID := uuid.New().String()
	ctx, span := r.tracer.Start(ctx, "suite.run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("test_type", cfg.TestType),
	))
	defer span.End()

	startTime := time.Now()

	files, err := r.discoverer.FindTestFiles(testPath)
	if err != nil {
		return nil, err
	}

	env, err := r.envBuilder.Build(cfg)
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("run_id", runID).
		Str("execution_id", env.ExecutionID).
		Int("files", len(files)).
		Msg("starting suite execution")

	coordinator := NewCoordinator(r.log, r.process, r.parser, r.workDir).
		WithOutputStore(NewOutputStore(env.TestResultsDir))

	// Files run one at a time; each file's run, including its retries,
	// completes before the next file starts. Results keep discovery order.
	var results []types.TestResult
	for _, file := range files {
		results = append(results, coordinator.RunTestFile(ctx, file, env, r.binary)...)
	}

	endTime := time.Now()
	suite := types.Aggregate(
		env.ExecutionID,
		fmt.Sprintf("Test Suite - %s", cfg.TestType),
		results,
		startTime,
		endTime,
		env.ArtifactsDir,
	)

	r.log.Info().
		Str("run_id", runID).
		Str("suite_id", suite.SuiteID).
		Int("total", suite.TotalTests).
		Int("passed", suite.Passed).
		Int("failed", suite.Failed).
		Int("errors", suite.Errors).
		Float64("duration_s", suite.TotalDuration).
		Msg("suite execution completed")

	return &suite, nil
}
