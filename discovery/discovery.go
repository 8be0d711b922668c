// Package discovery enumerates generated browser test files under a root
// path, either by the known category layout or by filename patterns.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// CategoryDirs are the known test category subdirectories, checked before
// any pattern search.
var CategoryDirs = []string{
	"performance",
	"edge_cases",
	"accessibility",
	"functionality",
	"cross_browser",
}

// categoryGlobs match test files directly inside a category directory.
var categoryGlobs = []string{"*.spec.ts", "*.test.ts"}

// fallbackPatterns are tried recursively over the whole tree when no
// category directory is present.
var fallbackPatterns = []string{"*.test.ts", "*.spec.ts", "*-test.ts", "*-spec.ts"}

// NoTestsFoundError is returned when discovery yields an empty list. Callers
// must treat it as a terminal suite failure, not an empty-but-successful
// suite.
type NoTestsFoundError struct {
	Root string
}

func (e *NoTestsFoundError) Error() string {
	return fmt.Sprintf("no test files found in %s", e.Root)
}

// Discoverer finds test files under a root path.
type Discoverer struct {
	log zerolog.Logger
}

// New creates a Discoverer.
func New(log zerolog.Logger) *Discoverer {
	return &Discoverer{log: log.With().Str("component", "discovery").Logger()}
}

// FindTestFiles returns the deduplicated, lexicographically sorted list of
// absolute test file paths under root. Given identical directory contents it
// returns the same ordered list on every call.
func (d *Discoverer) FindTestFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve test path %q: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %w", err)
	}

	var found []string
	if !info.IsDir() {
		if isTestFile(absRoot) {
			found = append(found, absRoot)
		}
	} else {
		found = d.collectFromCategories(absRoot)
		if len(found) == 0 {
			found = d.collectRecursive(absRoot)
		}
	}

	found = dedupeSorted(found)
	if len(found) == 0 {
		return nil, &NoTestsFoundError{Root: absRoot}
	}

	d.log.Info().Int("count", len(found)).Str("root", absRoot).Msg("discovered test files")
	for _, f := range found {
		d.log.Debug().Str("file", f).Msg("test file")
	}
	return found, nil
}

// collectFromCategories gathers test files from the known category
// subdirectories that exist under root.
func (d *Discoverer) collectFromCategories(root string) []string {
	var found []string
	for _, category := range CategoryDirs {
		dir := filepath.Join(root, category)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		for _, glob := range categoryGlobs {
			matches, err := filepath.Glob(filepath.Join(dir, glob))
			if err != nil {
				continue
			}
			found = append(found, matches...)
		}
	}
	return found
}

// collectRecursive walks the whole tree matching the fallback patterns.
func (d *Discoverer) collectRecursive(root string) []string {
	var found []string
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		name := entry.Name()
		for _, pattern := range fallbackPatterns {
			if ok, _ := filepath.Match(pattern, name); ok {
				found = append(found, path)
				return nil
			}
		}
		return nil
	})
	return found
}

func isTestFile(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".js":
		return true
	}
	return false
}

func dedupeSorted(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// BaseName returns the file name without its test suffix, used when
// synthesizing test identifiers for a whole file.
func BaseName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	for _, suffix := range []string{".spec", ".test", "-spec", "-test"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}
