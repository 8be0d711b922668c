package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

func suiteFixture(id string, passed, failed, errored int) *types.TestSuiteResult {
	results := make([]types.TestResult, 0, passed+failed+errored)
	for i := 0; i < passed; i++ {
		results = append(results, types.TestResult{TestID: fmt.Sprintf("p%d", i), Status: types.TestStatusPassed})
	}
	for i := 0; i < failed; i++ {
		results = append(results, types.TestResult{TestID: fmt.Sprintf("f%d", i), Status: types.TestStatusFailed})
	}
	for i := 0; i < errored; i++ {
		results = append(results, types.TestResult{TestID: fmt.Sprintf("e%d", i), Status: types.TestStatusError})
	}
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	suite := types.Aggregate(id, "Test Suite", results, start, start.Add(30*time.Second), "")
	return &suite
}

func TestRecordAccumulatesTotals(t *testing.T) {
	tracker := NewTracker()

	tracker.Record(suiteFixture("exec_1", 3, 1, 0))
	tracker.Record(suiteFixture("exec_2", 2, 0, 1))

	snap := tracker.Snapshot()
	assert.Equal(t, 2, snap.TotalExecutions)
	assert.Equal(t, 7, snap.TotalTestsRun)
	assert.Equal(t, 5, snap.TotalPassed)
	assert.Equal(t, 1, snap.TotalFailed)
	assert.Equal(t, 1, snap.TotalErrors)
	require.NotNil(t, snap.LastExecution)
	require.Len(t, snap.ExecutionHistory, 2)
	assert.Equal(t, "exec_1", snap.ExecutionHistory[0].SuiteID)
	assert.Equal(t, "exec_2", snap.ExecutionHistory[1].SuiteID)
}

func TestHistoryEvictsOldestBeyondLimit(t *testing.T) {
	tracker := NewTracker()

	for i := 1; i <= HistoryLimit+1; i++ {
		tracker.Record(suiteFixture(fmt.Sprintf("exec_%d", i), 1, 0, 0))
	}

	snap := tracker.Snapshot()
	require.Len(t, snap.ExecutionHistory, HistoryLimit)
	// the oldest entry is gone, the rest shifted forward
	assert.Equal(t, "exec_2", snap.ExecutionHistory[0].SuiteID)
	assert.Equal(t, fmt.Sprintf("exec_%d", HistoryLimit+1), snap.ExecutionHistory[HistoryLimit-1].SuiteID)
	// totals are unaffected by history eviction
	assert.Equal(t, HistoryLimit+1, snap.TotalExecutions)
}

func TestSnapshotIsACopy(t *testing.T) {
	tracker := NewTracker()
	tracker.Record(suiteFixture("exec_1", 1, 0, 0))

	snap := tracker.Snapshot()
	snap.ExecutionHistory[0].SuiteID = "mutated"
	snap.TotalExecutions = 99

	fresh := tracker.Snapshot()
	assert.Equal(t, "exec_1", fresh.ExecutionHistory[0].SuiteID)
	assert.Equal(t, 1, fresh.TotalExecutions)
}

func TestEmptyTrackerSnapshot(t *testing.T) {
	snap := NewTracker().Snapshot()
	assert.Zero(t, snap.TotalExecutions)
	assert.Nil(t, snap.LastExecution)
	assert.Empty(t, snap.ExecutionHistory)
}
