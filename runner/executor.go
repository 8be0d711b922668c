package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/rs/zerolog"
)

// CapturedOutput is everything the process runner hands to the result
// parser: the streams with ANSI escapes stripped, and the exit code.
type CapturedOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// TimeoutError is returned when a runner invocation exceeds the wall-clock
// ceiling. The child process has been terminated by then.
type TimeoutError struct {
	TestPath string
	Limit    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("test execution timeout: exceeded %s ceiling: %s", e.Limit, e.TestPath)
}

// NotFoundError is returned when the runner binary or the test file cannot
// be found.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s: %v", e.Name, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ProcessRunner invokes the external test runner for one test file. A
// non-zero exit is not an error at this layer; only the timeout ceiling and
// a missing binary or file are.
type ProcessRunner interface {
	Run(ctx context.Context, cmd Command, env *Environment) (*CapturedOutput, error)
}

var _ ProcessRunner = (*processRunner)(nil)

type processRunner struct {
	workDir string
	ceiling time.Duration
	log     zerolog.Logger
	// cmdBuilder is injectable so the process boundary can be faked in tests.
	cmdBuilder func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewProcessRunner creates a runner that executes commands from workDir, the
// automation project root, with the standard wall-clock ceiling.
func NewProcessRunner(log zerolog.Logger, workDir string) (ProcessRunner, error) {
	if workDir == "" {
		return nil, errors.New("work directory is required")
	}
	return &processRunner{
		workDir:    workDir,
		ceiling:    ProcessTimeout,
		log:        log.With().Str("component", "process-runner").Logger(),
		cmdBuilder: exec.CommandContext,
	}, nil
}

func (r *processRunner) Run(ctx context.Context, cmd Command, env *Environment) (*CapturedOutput, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.ceiling)
	defer cancel()

	proc := r.cmdBuilder(runCtx, cmd.Binary, cmd.Args()...)
	proc.Dir = r.workDir
	proc.Env = mergedEnviron(env)

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	r.log.Info().
		Str("test", cmd.TestPath).
		Str("binary", cmd.Binary).
		Str("workdir", r.workDir).
		Msg("executing test file")

	start := time.Now()
	runErr := proc.Run()
	elapsed := time.Since(start)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		r.log.Error().Str("test", cmd.TestPath).Dur("elapsed", elapsed).Msg("test execution timed out")
		return nil, &TimeoutError{TestPath: cmd.TestPath, Limit: r.ceiling}
	}

	captured := &CapturedOutput{
		Stdout: stripansi.Strip(stdout.String()),
		Stderr: stripansi.Strip(stderr.String()),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			// Non-zero exit is data for the parser, not an execution error.
			captured.ExitCode = exitErr.ExitCode()
		case errors.Is(runErr, exec.ErrNotFound), errors.Is(runErr, fs.ErrNotExist):
			return nil, &NotFoundError{Name: cmd.Binary, Err: runErr}
		default:
			return nil, fmt.Errorf("failed to run test runner: %w", runErr)
		}
	}

	r.log.Debug().
		Str("test", cmd.TestPath).
		Int("exit_code", captured.ExitCode).
		Dur("elapsed", elapsed).
		Msg("test execution completed")

	return captured, nil
}

// mergedEnviron combines the inherited process environment with the run's
// variables; the run's values win.
func mergedEnviron(env *Environment) []string {
	out := os.Environ()
	if env == nil {
		return out
	}
	keys := make([]string, 0, len(env.Vars))
	for k := range env.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+env.Vars[k])
	}
	return out
}
