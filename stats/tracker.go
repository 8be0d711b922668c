// Package stats tracks process-wide execution statistics with a bounded
// history of recent suite runs.
package stats

import (
	"sync"
	"time"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// HistoryLimit caps the execution history at the most recent entries.
const HistoryLimit = 10

// ExecutionSummary is a trimmed record of one completed suite run.
type ExecutionSummary struct {
	SuiteID    string    `json:"suite_id"`
	Timestamp  time.Time `json:"timestamp"`
	TotalTests int       `json:"total_tests"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Duration   float64   `json:"duration"`
}

// Snapshot is a point-in-time copy of the tracker's counters.
type Snapshot struct {
	TotalExecutions  int                `json:"total_executions"`
	TotalTestsRun    int                `json:"total_tests_run"`
	TotalPassed      int                `json:"total_passed"`
	TotalFailed      int                `json:"total_failed"`
	TotalErrors      int                `json:"total_errors"`
	LastExecution    *time.Time         `json:"last_execution,omitempty"`
	ExecutionHistory []ExecutionSummary `json:"execution_history"`
}

// Tracker accumulates suite totals across the process lifetime. It is the
// only mutable state shared between runs, so every mutation goes through
// its mutex.
type Tracker struct {
	mu      sync.Mutex
	total   Snapshot
	history []ExecutionSummary
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record updates the counters with one completed suite and appends it to
// the bounded history, evicting the oldest entry first.
func (t *Tracker) Record(suite *types.TestSuiteResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total.TotalExecutions++
	t.total.TotalTestsRun += suite.TotalTests
	t.total.TotalPassed += suite.Passed
	t.total.TotalFailed += suite.Failed
	t.total.TotalErrors += suite.Errors
	end := suite.EndTime
	t.total.LastExecution = &end

	t.history = append(t.history, ExecutionSummary{
		SuiteID:    suite.SuiteID,
		Timestamp:  suite.EndTime,
		TotalTests: suite.TotalTests,
		Passed:     suite.Passed,
		Failed:     suite.Failed,
		Duration:   suite.TotalDuration,
	})
	if len(t.history) > HistoryLimit {
		t.history = t.history[len(t.history)-HistoryLimit:]
	}
}

// Snapshot returns a copy of the current counters and history.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.total
	snap.ExecutionHistory = make([]ExecutionSummary, len(t.history))
	copy(snap.ExecutionHistory, t.history)
	if t.total.LastExecution != nil {
		last := *t.total.LastExecution
		snap.LastExecution = &last
	}
	return snap
}
