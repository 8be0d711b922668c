package types

import "fmt"

// Browser is the browser engine the runner drives.
type Browser string

const (
	BrowserChromium Browser = "chromium"
	BrowserFirefox  Browser = "firefox"
	BrowserWebkit   Browser = "webkit"
)

// IsValid reports whether b names a supported browser engine.
func (b Browser) IsValid() bool {
	switch b {
	case BrowserChromium, BrowserFirefox, BrowserWebkit:
		return true
	}
	return false
}

// ExecutionConfig holds the recognized options for one execution run.
// A fresh copy is computed per suite; instances are never shared between
// concurrent runs.
type ExecutionConfig struct {
	BaseURL           string  `yaml:"base_url"`
	SignupURL         string  `yaml:"signup_url"`
	TestEmail         string  `yaml:"test_email"`
	TestPassword      string  `yaml:"test_password"`
	Headless          bool    `yaml:"headless"`
	Browser           Browser `yaml:"browser"`
	TimeoutMS         int     `yaml:"timeout"` // per-action runner timeout, milliseconds
	Retries           int     `yaml:"retries"`
	ParallelWorkers   int     `yaml:"parallel_workers"`
	VideoEnabled      bool    `yaml:"video_enabled"`
	ScreenshotEnabled bool    `yaml:"screenshot_enabled"`
	TestType          string  `yaml:"test_type"`
}

// ExecutionOverrides carries optional per-run overrides. A nil field leaves
// the base value untouched; precedence is override > base > default.
type ExecutionOverrides struct {
	BaseURL           *string  `yaml:"base_url"`
	SignupURL         *string  `yaml:"signup_url"`
	TestEmail         *string  `yaml:"test_email"`
	TestPassword      *string  `yaml:"test_password"`
	Headless          *bool    `yaml:"headless"`
	Browser           *Browser `yaml:"browser"`
	TimeoutMS         *int     `yaml:"timeout"`
	Retries           *int     `yaml:"retries"`
	ParallelWorkers   *int     `yaml:"parallel_workers"`
	VideoEnabled      *bool    `yaml:"video_enabled"`
	ScreenshotEnabled *bool    `yaml:"screenshot_enabled"`
}

// DefaultExecutionConfig returns the built-in defaults, matching the
// runner's own defaults where it has them.
func DefaultExecutionConfig() ExecutionConfig {
	return ExecutionConfig{
		BaseURL:           "https://www.recruter.ai",
		SignupURL:         "https://www.recruter.ai/onboarding/Signup",
		Headless:          true,
		Browser:           BrowserChromium,
		TimeoutMS:         30000,
		Retries:           2,
		ParallelWorkers:   1,
		VideoEnabled:      true,
		ScreenshotEnabled: true,
		TestType:          "recruter_ai",
	}
}

// Apply returns a copy of c with every non-nil override applied.
func (c ExecutionConfig) Apply(o ExecutionOverrides) ExecutionConfig {
	if o.BaseURL != nil {
		c.BaseURL = *o.BaseURL
	}
	if o.SignupURL != nil {
		c.SignupURL = *o.SignupURL
	}
	if o.TestEmail != nil {
		c.TestEmail = *o.TestEmail
	}
	if o.TestPassword != nil {
		c.TestPassword = *o.TestPassword
	}
	if o.Headless != nil {
		c.Headless = *o.Headless
	}
	if o.Browser != nil {
		c.Browser = *o.Browser
	}
	if o.TimeoutMS != nil {
		c.TimeoutMS = *o.TimeoutMS
	}
	if o.Retries != nil {
		c.Retries = *o.Retries
	}
	if o.ParallelWorkers != nil {
		c.ParallelWorkers = *o.ParallelWorkers
	}
	if o.VideoEnabled != nil {
		c.VideoEnabled = *o.VideoEnabled
	}
	if o.ScreenshotEnabled != nil {
		c.ScreenshotEnabled = *o.ScreenshotEnabled
	}
	return c
}

// Validate checks the recognized option ranges.
func (c ExecutionConfig) Validate() error {
	if !c.Browser.IsValid() {
		return fmt.Errorf("invalid browser %q: must be one of %s, %s, %s", c.Browser, BrowserChromium, BrowserFirefox, BrowserWebkit)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutMS)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be non-negative, got %d", c.Retries)
	}
	if c.ParallelWorkers < 1 {
		return fmt.Errorf("parallel_workers must be at least 1, got %d", c.ParallelWorkers)
	}
	return nil
}
