package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

func writeArtifact(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{0x1}, 0o644))
}

func TestFindScreenshotByTestID(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, ScreenshotsDirName, "login-failure-t42.png")
	writeArtifact(t, want)
	writeArtifact(t, filepath.Join(dir, ScreenshotsDirName, "notes.txt"))

	l := NewArtifactLocator(dir)
	assert.Equal(t, want, l.Find("t42", ArtifactScreenshot))
}

func TestFindVideoWeakFallback(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, VideosDirName, "test-recording.webm")
	writeArtifact(t, want)

	l := NewArtifactLocator(dir)
	assert.Equal(t, want, l.Find("nomatch", ArtifactVideo))
}

func TestFindNothingReturnsEmpty(t *testing.T) {
	l := NewArtifactLocator(t.TempDir())
	assert.Empty(t, l.Find("t42", ArtifactScreenshot))
	assert.Empty(t, l.Find("t42", ArtifactVideo))
}

func TestFindMissingDirectoryIsNotAnError(t *testing.T) {
	l := NewArtifactLocator(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, l.Find("t42", ArtifactScreenshot))
}

func TestAttachFillsArtifactPaths(t *testing.T) {
	dir := t.TempDir()
	screenshot := filepath.Join(dir, ScreenshotsDirName, "t1-failure.png")
	video := filepath.Join(dir, VideosDirName, "t1-run.webm")
	writeArtifact(t, screenshot)
	writeArtifact(t, video)

	results := []types.TestResult{
		{TestID: "t1", Status: types.TestStatusFailed},
		{TestID: "t9", Status: types.TestStatusPassed, ScreenshotPath: "/already/set.png"},
	}

	NewArtifactLocator(dir).Attach(results)

	assert.Equal(t, screenshot, results[0].ScreenshotPath)
	assert.Equal(t, video, results[0].VideoPath)
	// preset paths are left alone
	assert.Equal(t, "/already/set.png", results[1].ScreenshotPath)
}
