package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputStore persists raw runner output for later inspection.
type OutputStore interface {
	Store(testPath string, output *CapturedOutput) error
}

var _ OutputStore = (*fileOutputStore)(nil)

// fileOutputStore writes one log file per test file under the run's
// test-results directory.
type fileOutputStore struct {
	dir string
}

// NewOutputStore creates a store writing into dir.
func NewOutputStore(dir string) OutputStore {
	return &fileOutputStore{dir: dir}
}

func (s *fileOutputStore) Store(testPath string, output *CapturedOutput) error {
	if output == nil {
		return nil
	}
	name := strings.TrimSuffix(filepath.Base(testPath), filepath.Ext(testPath)) + ".log"

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s (exit code %d) ===\n", filepath.Base(testPath), output.ExitCode)
	if output.Stdout != "" {
		b.WriteString("--- stdout ---\n")
		b.WriteString(output.Stdout)
		if !strings.HasSuffix(output.Stdout, "\n") {
			b.WriteString("\n")
		}
	}
	if output.Stderr != "" {
		b.WriteString("--- stderr ---\n")
		b.WriteString(output.Stderr)
		if !strings.HasSuffix(output.Stderr, "\n") {
			b.WriteString("\n")
		}
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to store runner output for %s: %w", testPath, err)
	}
	return nil
}
