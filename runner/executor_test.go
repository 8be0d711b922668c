package runner

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

func newShellRunner(t *testing.T, script string) (*processRunner, Command) {
	t.Helper()
	pr, err := NewProcessRunner(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)
	r := pr.(*processRunner)
	// route every invocation to a shell script regardless of the command's
	// own argument vector
	r.cmdBuilder = func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", script)
	}
	return r, Command{Binary: "sh", TestPath: "tests/fake.spec.ts"}
}

func runEnv() *Environment {
	return &Environment{
		Config: types.DefaultExecutionConfig(),
		Vars:   map[string]string{"QA_PROBE": "probe-value"},
	}
}

func TestRunCapturesOutput(t *testing.T) {
	r, cmd := newShellRunner(t, `echo out-line; echo err-line >&2`)

	got, err := r.Run(context.Background(), cmd, runEnv())
	require.NoError(t, err)

	assert.Equal(t, 0, got.ExitCode)
	assert.Contains(t, got.Stdout, "out-line")
	assert.Contains(t, got.Stderr, "err-line")
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	r, cmd := newShellRunner(t, `echo "1 failed"; exit 1`)

	got, err := r.Run(context.Background(), cmd, runEnv())
	require.NoError(t, err)

	assert.Equal(t, 1, got.ExitCode)
	assert.Contains(t, got.Stdout, "1 failed")
}

func TestRunStripsANSISequences(t *testing.T) {
	r, cmd := newShellRunner(t, `printf '\033[31mred failure\033[0m\n'`)

	got, err := r.Run(context.Background(), cmd, runEnv())
	require.NoError(t, err)

	assert.Equal(t, "red failure\n", got.Stdout)
}

func TestRunPassesEnvironmentVars(t *testing.T) {
	r, cmd := newShellRunner(t, `printf '%s' "$QA_PROBE"`)

	got, err := r.Run(context.Background(), cmd, runEnv())
	require.NoError(t, err)

	assert.Equal(t, "probe-value", got.Stdout)
}

func TestRunTimeout(t *testing.T) {
	r, cmd := newShellRunner(t, `sleep 5`)
	r.ceiling = 100 * time.Millisecond

	_, err := r.Run(context.Background(), cmd, runEnv())

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Contains(t, timeoutErr.Error(), "timeout")
}

func TestRunMissingBinary(t *testing.T) {
	pr, err := NewProcessRunner(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)

	cmd := Command{Binary: "definitely-not-a-real-binary-qaagent"}
	_, err = pr.Run(context.Background(), cmd, runEnv())

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestNewProcessRunnerRequiresWorkDir(t *testing.T) {
	_, err := NewProcessRunner(zerolog.Nop(), "")
	assert.Error(t, err)
}
