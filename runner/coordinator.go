package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// Coordinator wraps the process runner and result parser with a bounded
// retry policy. Retries cover execution-layer instability only (timeouts,
// missing binaries, spawn failures); results that parse successfully, even
// as failed or error business outcomes, are returned immediately.
type Coordinator struct {
	runner  ProcessRunner
	parser  *ResultParser
	workDir string
	store   OutputStore
	log     zerolog.Logger
	// sleep is injectable so backoff can be observed without waiting.
	sleep func(time.Duration)
}

// WithOutputStore makes the coordinator persist raw runner output for each
// executed file.
func (c *Coordinator) WithOutputStore(store OutputStore) *Coordinator {
	c.store = store
	return c
}

// NewCoordinator creates a retry coordinator. workDir is the automation
// project root the runner executes from.
func NewCoordinator(log zerolog.Logger, runner ProcessRunner, parser *ResultParser, workDir string) *Coordinator {
	return &Coordinator{
		runner:  runner,
		parser:  parser,
		workDir: workDir,
		log:     log.With().Str("component", "coordinator").Logger(),
		sleep:   time.Sleep,
	}
}

// RunTestFile executes one test file, retrying execution-layer errors up to
// env.Config.Retries additional times with exponential backoff (2^attempt
// seconds). On exhaustion it synthesizes a single retry-exhausted error
// result; it never returns an empty slice.
func (c *Coordinator) RunTestFile(ctx context.Context, testPath string, env *Environment, binary string) []types.TestResult {
	relPath := c.relativeTestPath(testPath)
	cmd := NewCommand(binary, relPath, env)
	retries := env.Config.Retries

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			c.log.Warn().
				Str("test", testPath).
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Err(lastErr).
				Msg("retrying test execution")
			c.sleep(backoff)
		}

		output, err := c.runner.Run(ctx, cmd, env)
		if err == nil {
			if c.store != nil {
				if storeErr := c.store.Store(testPath, output); storeErr != nil {
					c.log.Warn().Err(storeErr).Str("test", testPath).Msg("failed to store runner output")
				}
			}
			results := c.parser.Parse(ParseInput{Output: output, TestPath: testPath})
			NewArtifactLocator(env.ArtifactsDir).Attach(results)
			return results
		}
		lastErr = err
	}

	c.log.Error().Str("test", testPath).Int("attempts", retries+1).Err(lastErr).Msg("all execution attempts failed")
	return []types.TestResult{exhaustedResult(testPath, retries, lastErr)}
}

// exhaustedResult synthesizes the terminal error result after all attempts
// raised. A timeout as the last cause pins the duration to the ceiling.
func exhaustedResult(testPath string, retries int, lastErr error) types.TestResult {
	name := filepath.Base(testPath)
	result := types.TestResult{
		TestID:       "retry_failed_" + name,
		TestName:     name,
		Status:       types.TestStatusError,
		ErrorMessage: fmt.Sprintf("all %d attempts failed. Last error: %v", retries+1, lastErr),
		RetryCount:   retries,
	}

	var timeoutErr *TimeoutError
	if errors.As(lastErr, &timeoutErr) {
		result.Duration = timeoutErr.Limit.Seconds()
	}
	var notFoundErr *NotFoundError
	if errors.As(lastErr, &notFoundErr) {
		result.TestID = "file_not_found_" + name
	}
	return result
}

// relativeTestPath makes the test path relative to the working directory
// when possible; the runner expects paths relative to the automation
// project root.
func (c *Coordinator) relativeTestPath(testPath string) string {
	if c.workDir == "" {
		return testPath
	}
	rel, err := filepath.Rel(c.workDir, testPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return testPath
	}
	return rel
}
