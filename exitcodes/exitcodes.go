// Package exitcodes defines the standard exit codes used by qaagent.
package exitcodes

// Exit code constants used by qaagent
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
//   - Success (0): The suite executed and reports were produced, regardless of
//     how many individual tests passed
//   - OrchestrationErr (1): Discovery, execution or report generation failed
//     before a complete report could be produced
//   - RuntimeErr (2): Panics, invalid configuration or other runtime failures
const (
	Success          = 0 // Suite ran and all reports were written
	OrchestrationErr = 1 // Orchestration failure
	RuntimeErr       = 2 // Runtime errors or panics
)
