package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// test"), 0o644))
}

func TestFindTestFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "login.spec.ts")
	writeFile(t, file)

	d := New(zerolog.Nop())
	files, err := d.FindTestFiles(file)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, file, files[0])
}

func TestFindTestFilesCategoryLayout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "functionality", "signup.spec.ts"))
	writeFile(t, filepath.Join(dir, "functionality", "login.test.ts"))
	writeFile(t, filepath.Join(dir, "edge_cases", "empty-form.spec.ts"))
	// not a test file, must be ignored
	writeFile(t, filepath.Join(dir, "functionality", "helpers.ts"))

	d := New(zerolog.Nop())
	files, err := d.FindTestFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), "expected absolute path, got %s", f)
	}
}

func TestFindTestFilesFallbackPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nested", "deep", "checkout-test.ts"))
	writeFile(t, filepath.Join(dir, "flows", "search.spec.ts"))

	d := New(zerolog.Nop())
	files, err := d.FindTestFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindTestFilesDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "functionality", "zeta.spec.ts"))
	writeFile(t, filepath.Join(dir, "functionality", "alpha.spec.ts"))
	writeFile(t, filepath.Join(dir, "accessibility", "mid.spec.ts"))

	d := New(zerolog.Nop())
	first, err := d.FindTestFiles(dir)
	require.NoError(t, err)
	second, err := d.FindTestFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, sortedStrings(first), "expected lexicographically sorted output: %v", first)
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

func TestFindTestFilesEmptyDir(t *testing.T) {
	d := New(zerolog.Nop())
	_, err := d.FindTestFiles(t.TempDir())

	var notFound *NoTestsFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tests/login.spec.ts", "login"},
		{"/tests/signup.test.ts", "signup"},
		{"/tests/checkout-test.ts", "checkout"},
		{"/tests/search-spec.ts", "search"},
		{"/tests/plain.ts", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseName(tt.in), "BaseName(%q)", tt.in)
	}
}
