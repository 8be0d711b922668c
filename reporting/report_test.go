package reporting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

func suiteFixture(t *testing.T) *types.TestSuiteResult {
	t.Helper()
	start := time.Date(2025, 6, 15, 14, 30, 45, 0, time.UTC)
	suite := types.Aggregate(
		"exec_smoke_20250615_143045",
		"Test Suite - smoke",
		[]types.TestResult{
			{TestID: "t1", TestName: "user can log in", Status: types.TestStatusPassed, Duration: 1.5},
			{TestID: "t2", TestName: "wrong password shows error", Status: types.TestStatusFailed,
				Duration: 2.0, ErrorMessage: "expected error banner", RetryCount: 1,
				ScreenshotPath: "/artifacts/screenshots/t2.png"},
			{TestID: "t3", TestName: "slow page", Status: types.TestStatusError,
				Duration: 300, ErrorMessage: "test execution timeout: exceeded 5m0s ceiling"},
		},
		start, start.Add(305*time.Second),
		t.TempDir(),
	)
	return &suite
}

func TestGenerateWritesAllReports(t *testing.T) {
	suite := suiteFixture(t)

	g, err := NewGenerator(zerolog.Nop())
	require.NoError(t, err)

	htmlPath, err := g.Generate(suite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(suite.ArtifactsDir, HTMLReportFilename), htmlPath)

	for _, name := range []string{JSONReportFilename, HTMLReportFilename, MarkdownReportFilename} {
		info, err := os.Stat(filepath.Join(suite.ArtifactsDir, name))
		require.NoError(t, err, "expected %s to exist", name)
		assert.Positive(t, info.Size())
	}
}

func TestCanonicalJSONRoundTrip(t *testing.T) {
	suite := suiteFixture(t)

	g, err := NewGenerator(zerolog.Nop())
	require.NoError(t, err)
	_, err = g.Generate(suite)
	require.NoError(t, err)

	loaded, err := LoadSuite(filepath.Join(suite.ArtifactsDir, JSONReportFilename))
	require.NoError(t, err)

	assert.Equal(t, suite.SuiteID, loaded.SuiteID)
	assert.Equal(t, suite.TotalTests, loaded.TotalTests)
	assert.Equal(t, suite.Passed, loaded.Passed)
	assert.Equal(t, suite.Failed, loaded.Failed)
	assert.Equal(t, suite.Errors, loaded.Errors)
	require.Len(t, loaded.TestResults, len(suite.TestResults))
	assert.Equal(t, suite.TestResults[1].ErrorMessage, loaded.TestResults[1].ErrorMessage)
	require.NoError(t, loaded.Validate())
}

func TestMarshalSuiteIsDeterministic(t *testing.T) {
	suite := suiteFixture(t)

	first, err := MarshalSuite(suite)
	require.NoError(t, err)
	second, err := MarshalSuite(suite)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateIsIdempotent(t *testing.T) {
	suite := suiteFixture(t)

	g, err := NewGenerator(zerolog.Nop())
	require.NoError(t, err)

	_, err = g.Generate(suite)
	require.NoError(t, err)
	firstJSON, err := os.ReadFile(filepath.Join(suite.ArtifactsDir, JSONReportFilename))
	require.NoError(t, err)

	_, err = g.Generate(suite)
	require.NoError(t, err)
	secondJSON, err := os.ReadFile(filepath.Join(suite.ArtifactsDir, JSONReportFilename))
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)

	// no temp files left behind
	entries, err := os.ReadDir(suite.ArtifactsDir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp-", "leftover temp file %s", entry.Name())
	}
}

func TestHTMLReportContent(t *testing.T) {
	suite := suiteFixture(t)

	f, err := NewHTMLFormatter()
	require.NoError(t, err)
	html, err := f.Format(suite)
	require.NoError(t, err)

	assert.Contains(t, html, "Test Suite - smoke")
	assert.Contains(t, html, "user can log in")
	assert.Contains(t, html, "expected error banner")
	assert.Contains(t, html, `class="test failed"`)
	assert.Contains(t, html, "/artifacts/screenshots/t2.png")
}

func TestMarkdownReportContent(t *testing.T) {
	suite := suiteFixture(t)

	md, err := NewMarkdownFormatter().Format(suite)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Test Suite - smoke"))
	assert.Contains(t, md, "✅ user can log in")
	assert.Contains(t, md, "❌ wrong password shows error")
	assert.Contains(t, md, "⚠️ slow page")
	assert.Contains(t, md, "| 3 | 1 | 1 | 1 | 0 |")
	assert.Contains(t, md, "**Retries:** 1")
}

func TestWriteErrorOnUnwritableDir(t *testing.T) {
	suite := suiteFixture(t)
	suite.ArtifactsDir = filepath.Join(suite.ArtifactsDir, "missing", "nested")

	g, err := NewGenerator(zerolog.Nop())
	require.NoError(t, err)

	_, err = g.Generate(suite)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
}
