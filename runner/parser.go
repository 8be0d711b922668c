package runner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/discovery"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/types"
)

// ParseInput is the captured process output plus the context needed to
// attribute results.
type ParseInput struct {
	Output   *CapturedOutput
	TestPath string // source test file, absolute
}

// ParseStrategy is one interpretation of runner output. Strategies are pure:
// they return a definite result list and true, or false for "no match".
type ParseStrategy interface {
	Name() string
	Parse(in ParseInput) ([]types.TestResult, bool)
}

// ResultParser converts captured output into canonical test results by
// trying an ordered chain of strategies; the first non-empty match wins. A
// failure inside parsing never propagates: it is converted into a single
// error result so one malformed output cannot abort the suite.
type ResultParser struct {
	log        zerolog.Logger
	strategies []ParseStrategy
}

// NewResultParser creates the standard chain: structured JSON first, then
// the authentication sentinel, then exit-code classification.
func NewResultParser(log zerolog.Logger) *ResultParser {
	return &ResultParser{
		log: log.With().Str("component", "parser").Logger(),
		strategies: []ParseStrategy{
			&structuredStrategy{},
			&authSentinelStrategy{},
			&exitCodeStrategy{},
		},
	}
}

// Parse runs the strategy chain over one file's output.
func (p *ResultParser) Parse(in ParseInput) (results []types.TestResult) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Str("test", in.TestPath).Interface("panic", r).Msg("result parsing failed")
			results = []types.TestResult{parseFailureResult(in.TestPath, fmt.Errorf("%v", r))}
		}
	}()

	for _, strategy := range p.strategies {
		if res, ok := strategy.Parse(in); ok && len(res) > 0 {
			p.log.Debug().
				Str("strategy", strategy.Name()).
				Str("test", in.TestPath).
				Int("results", len(res)).
				Msg("parsed runner output")
			return res
		}
	}

	// The exit-code strategy always matches, so this is unreachable unless
	// the chain is misconfigured.
	return []types.TestResult{parseFailureResult(in.TestPath, fmt.Errorf("no parse strategy matched"))}
}

func parseFailureResult(testPath string, cause error) types.TestResult {
	name := filepath.Base(testPath)
	return types.TestResult{
		TestID:       "parse_error_" + name,
		TestName:     name,
		Status:       types.TestStatusError,
		ErrorMessage: fmt.Sprintf("failed to parse results: %v", cause),
	}
}

// playwrightReport mirrors the runner's structured JSON report: nested
// suites containing specs, each spec containing tests with result attempts.
type playwrightReport struct {
	Suites []playwrightSuite `json:"suites"`
}

type playwrightSuite struct {
	Title  string            `json:"title"`
	Suites []playwrightSuite `json:"suites"`
	Specs  []playwrightSpec  `json:"specs"`
}

type playwrightSpec struct {
	Title string           `json:"title"`
	Tests []playwrightTest `json:"tests"`
}

type playwrightTest struct {
	ID      string              `json:"id"`
	Title   string              `json:"title"`
	Results []playwrightAttempt `json:"results"`
}

type playwrightAttempt struct {
	Status   string  `json:"status"`
	Duration float64 `json:"duration"` // milliseconds
	Error    struct {
		Message string `json:"message"`
	} `json:"error"`
}

// structuredStrategy scans stdout for a line that parses as the runner's
// structured report and walks its nested structure.
type structuredStrategy struct{}

func (s *structuredStrategy) Name() string { return "structured-json" }

func (s *structuredStrategy) Parse(in ParseInput) ([]types.TestResult, bool) {
	scanner := bufio.NewScanner(strings.NewReader(in.Output.Stdout))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "{") || !strings.Contains(line, "suites") {
			continue
		}
		var report playwrightReport
		if err := json.Unmarshal([]byte(line), &report); err != nil {
			continue
		}
		results := flattenReport(report.Suites)
		if len(results) > 0 {
			return results, true
		}
	}
	return nil, false
}

func flattenReport(suites []playwrightSuite) []types.TestResult {
	var results []types.TestResult
	for _, suite := range suites {
		results = append(results, flattenReport(suite.Suites)...)
		for _, spec := range suite.Specs {
			for _, test := range spec.Tests {
				results = append(results, leafResult(spec, test))
			}
		}
	}
	return results
}

// leafResult folds one test's attempts: any failed attempt makes the test
// failed with the first failing message; a skipped attempt with no failures
// makes it skipped; durations are summed across attempts.
func leafResult(spec playwrightSpec, test playwrightTest) types.TestResult {
	result := types.TestResult{
		TestID:   test.ID,
		TestName: test.Title,
		Status:   types.TestStatusPassed,
	}
	if result.TestID == "" {
		result.TestID = "unknown"
	}
	if result.TestName == "" {
		result.TestName = spec.Title
	}
	if result.TestName == "" {
		result.TestName = "Unknown Test"
	}

	for _, attempt := range test.Results {
		result.Duration += attempt.Duration / 1000.0

		switch attempt.Status {
		case "failed", "timedOut", "interrupted":
			if result.Status != types.TestStatusFailed {
				result.Status = types.TestStatusFailed
				result.ErrorMessage = attempt.Error.Message
				if result.ErrorMessage == "" {
					result.ErrorMessage = "Test failed"
				}
			}
		case "skipped":
			if result.Status == types.TestStatusPassed {
				result.Status = types.TestStatusSkipped
			}
		}
	}
	if len(test.Results) > 1 {
		result.RetryCount = len(test.Results) - 1
	}
	return result
}

// authSentinelStrategy detects an authentication precondition failure from
// sentinel substrings in the combined output. It takes priority over the
// generic exit-code fallback.
type authSentinelStrategy struct{}

func (s *authSentinelStrategy) Name() string { return "auth-sentinel" }

func (s *authSentinelStrategy) Parse(in ParseInput) ([]types.TestResult, bool) {
	combined := strings.ToLower(in.Output.Stdout + in.Output.Stderr)
	if !strings.Contains(combined, "login") || !strings.Contains(combined, "failed") {
		return nil, false
	}
	name := filepath.Base(in.TestPath)
	return []types.TestResult{{
		TestID:       "auth_failed_" + name,
		TestName:     name,
		Status:       types.TestStatusError,
		ErrorMessage: "Authentication failed - check credentials",
	}}, true
}

// exitCodeStrategy is the terminal fallback: it classifies the whole file by
// exit code alone. This is deliberately coarse; a non-zero exit with
// unparseable output becomes a single failed result attributed to the file.
type exitCodeStrategy struct{}

func (s *exitCodeStrategy) Name() string { return "exit-code" }

func (s *exitCodeStrategy) Parse(in ParseInput) ([]types.TestResult, bool) {
	result := types.TestResult{
		TestID:   "text_" + discovery.BaseName(in.TestPath),
		TestName: filepath.Base(in.TestPath),
		Status:   types.TestStatusPassed,
	}
	if in.Output.ExitCode != 0 {
		result.Status = types.TestStatusFailed
		result.ErrorMessage = strings.TrimSpace(in.Output.Stderr)
		if result.ErrorMessage == "" {
			result.ErrorMessage = "Test failed"
		}
	}
	return []types.TestResult{result}, true
}
