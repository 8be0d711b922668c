package runner

import (
	"fmt"
	"strconv"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// Command is the typed description of one runner invocation. Keeping the
// process boundary as explicit fields rather than string concatenation lets
// the contract be tested without executing anything.
type Command struct {
	Binary     string // e.g. "npx"
	TestPath   string // test file path relative to the working directory
	OutputDir  string
	Headless   bool
	Browser    types.Browser
	TimeoutMS  int // runner per-action timeout, not the process ceiling
	Retries    int
	Video      bool
	Screenshot bool
}

// NewCommand builds the runner command for one test file from a run
// environment.
func NewCommand(binary, relTestPath string, env *Environment) Command {
	if binary == "" {
		binary = DefaultRunnerBinary
	}
	return Command{
		Binary:     binary,
		TestPath:   relTestPath,
		OutputDir:  env.ArtifactsDir,
		Headless:   env.Config.Headless,
		Browser:    env.Config.Browser,
		TimeoutMS:  env.Config.TimeoutMS,
		Retries:    env.Config.Retries,
		Video:      env.Config.VideoEnabled,
		Screenshot: env.Config.ScreenshotEnabled,
	}
}

// Args returns the full argument vector passed to the binary.
func (c Command) Args() []string {
	args := []string{
		RunnerCommand, RunnerTestCommand,
		c.TestPath,
		ReporterFlag,
		fmt.Sprintf("%s=%s", OutputDirFlag, c.OutputDir),
	}

	if c.Headless {
		args = append(args, HeadlessFlag)
	} else {
		args = append(args, HeadedFlag)
	}

	args = append(args,
		fmt.Sprintf("%s=%s", BrowserFlag, c.Browser),
		fmt.Sprintf("%s=%s", TimeoutFlag, strconv.Itoa(c.TimeoutMS)),
		fmt.Sprintf("%s=%s", RetriesFlag, strconv.Itoa(c.Retries)),
	)

	if c.Video {
		args = append(args, VideoPolicyFlag)
	}
	if c.Screenshot {
		args = append(args, ScreenshotFlag)
	}
	return args
}
