package qaagent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/reporting"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/stats"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// stubRunner returns a canned suite result or error.
type stubRunner struct {
	suite *types.TestSuiteResult
	err   error
	runs  int
}

func (s *stubRunner) RunSuite(ctx context.Context, testPath string, cfg types.ExecutionConfig) (*types.TestSuiteResult, error) {
	s.runs++
	return s.suite, s.err
}

func stubSuite(t *testing.T) *types.TestSuiteResult {
	t.Helper()
	start := time.Now()
	suite := types.Aggregate(
		"exec_smoke_20250615_143045",
		"Test Suite - smoke",
		[]types.TestResult{
			{TestID: "t1", TestName: "login works", Status: types.TestStatusPassed, Duration: 1.2},
			{TestID: "t2", TestName: "signup fails", Status: types.TestStatusFailed, Duration: 2.4, ErrorMessage: "boom"},
		},
		start, start.Add(4*time.Second),
		t.TempDir(),
	)
	return &suite
}

func newTestAgent(t *testing.T, r *stubRunner) *Agent {
	t.Helper()
	reports, err := reporting.NewGenerator(zerolog.Nop())
	require.NoError(t, err)

	return &Agent{
		ctx: context.Background(),
		config: &Config{
			TestPath:   "tests/",
			ReportsDir: t.TempDir(),
			Execution:  types.DefaultExecutionConfig(),
			RunOnce:    true,
			Log:        zerolog.Nop(),
		},
		runner:  r,
		reports: reports,
		tracker: stats.NewTracker(),
		done:    make(chan struct{}),
	}
}

func TestRunSuiteGeneratesReportsAndStats(t *testing.T) {
	suite := stubSuite(t)
	agent := newTestAgent(t, &stubRunner{suite: suite})

	require.NoError(t, agent.runSuite())

	// suite result retained with report path set
	result := agent.Result()
	require.NotNil(t, result)
	assert.Equal(t, filepath.Join(suite.ArtifactsDir, reporting.HTMLReportFilename), result.ReportPath)

	// all three reports written
	for _, name := range []string{reporting.JSONReportFilename, reporting.HTMLReportFilename, reporting.MarkdownReportFilename} {
		_, err := os.Stat(filepath.Join(suite.ArtifactsDir, name))
		assert.NoError(t, err, "expected %s", name)
	}

	// stats recorded
	snap := agent.Stats()
	assert.Equal(t, 1, snap.TotalExecutions)
	assert.Equal(t, 2, snap.TotalTestsRun)
	assert.Equal(t, 1, snap.TotalPassed)
	assert.Equal(t, 1, snap.TotalFailed)
}

func TestRunSuiteFailingTestsAreNotAnError(t *testing.T) {
	agent := newTestAgent(t, &stubRunner{suite: stubSuite(t)})
	assert.NoError(t, agent.runSuite())
}

func TestRunSuiteRunnerFailureIsOrchestrationError(t *testing.T) {
	agent := newTestAgent(t, &stubRunner{err: errors.New("no test files found")})

	err := agent.runSuite()
	assert.True(t, IsOrchestrationError(err))
	assert.Nil(t, agent.Result())
}

func TestListExecutionReports(t *testing.T) {
	agent := newTestAgent(t, &stubRunner{})

	// two executions with reports, one without
	for _, id := range []string{"exec_smoke_20250615_143045", "exec_smoke_20250615_150000"} {
		dir := filepath.Join(agent.config.ReportsDir, id)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, reporting.JSONReportFilename), []byte("{}"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(agent.config.ReportsDir, "exec_incomplete"), 0o755))

	reports, err := agent.ListExecutionReports(0)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	// newest execution first
	assert.Contains(t, reports[0], "exec_smoke_20250615_150000")
	assert.Contains(t, reports[1], "exec_smoke_20250615_143045")

	limited, err := agent.ListExecutionReports(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Contains(t, limited[0], "exec_smoke_20250615_150000")
}

func TestListExecutionReportsMissingDir(t *testing.T) {
	agent := newTestAgent(t, &stubRunner{})
	agent.config.ReportsDir = filepath.Join(t.TempDir(), "never-created")

	reports, err := agent.ListExecutionReports(0)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestStopIsIdempotent(t *testing.T) {
	agent := newTestAgent(t, &stubRunner{suite: stubSuite(t)})
	agent.running.Store(true)

	require.NoError(t, agent.Stop(context.Background()))
	assert.True(t, agent.Stopped())
	// second stop must not panic on the closed channel
	require.NoError(t, agent.Stop(context.Background()))
}

func TestStatusPayloadBeforeFirstRun(t *testing.T) {
	agent := newTestAgent(t, &stubRunner{})

	payload := agent.StatusPayload()
	require.NotNil(t, payload)
	assert.Nil(t, agent.Result())
}
