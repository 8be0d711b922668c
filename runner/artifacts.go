package runner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// ArtifactKind selects which artifact class to search for.
type ArtifactKind string

const (
	ArtifactScreenshot ArtifactKind = "screenshot"
	ArtifactVideo      ArtifactKind = "video"
)

var artifactExtensions = map[ArtifactKind][]string{
	ArtifactScreenshot: {".png", ".jpg", ".jpeg"},
	ArtifactVideo:      {".webm", ".mp4"},
}

var artifactSubdirs = map[ArtifactKind]string{
	ArtifactScreenshot: ScreenshotsDirName,
	ArtifactVideo:      VideosDirName,
}

// ArtifactLocator searches the per-run artifact directories for files
// plausibly belonging to a test. It is deliberately best-effort: it never
// fails, and an absent artifact is not an error.
type ArtifactLocator struct {
	artifactsDir string
}

// NewArtifactLocator creates a locator over one run's artifacts directory.
func NewArtifactLocator(artifactsDir string) *ArtifactLocator {
	return &ArtifactLocator{artifactsDir: artifactsDir}
}

// Find returns the absolute path of the first file in traversal order whose
// extension matches the kind and whose name contains the test identifier,
// or the literal token "test" as a weak fallback. Returns "" when nothing
// matches or the subdirectory does not exist.
func (l *ArtifactLocator) Find(testID string, kind ArtifactKind) string {
	subdir, ok := artifactSubdirs[kind]
	if !ok {
		return ""
	}
	extensions := artifactExtensions[kind]
	searchDir := filepath.Join(l.artifactsDir, subdir)

	var match string
	_ = filepath.WalkDir(searchDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() || match != "" {
			return nil
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		for _, want := range extensions {
			if ext != want {
				continue
			}
			if strings.Contains(name, testID) || strings.Contains(strings.ToLower(name), "test") {
				match = path
			}
			return nil
		}
		return nil
	})
	return match
}

// Attach fills in the artifact path fields of each result by lookup. Paths
// are only ever set from files that exist, never fabricated.
func (l *ArtifactLocator) Attach(results []types.TestResult) {
	for i := range results {
		if results[i].ScreenshotPath == "" {
			results[i].ScreenshotPath = l.Find(results[i].TestID, ArtifactScreenshot)
		}
		if results[i].VideoPath == "" {
			results[i].VideoPath = l.Find(results[i].TestID, ArtifactVideo)
		}
	}
}
