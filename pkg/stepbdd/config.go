package stepbdd

// RuntimeMode selects how generated scenario tests run relative to each
// other. Steps within one scenario always run sequentially on that
// scenario's goroutine regardless of mode.
type RuntimeMode int

const (
	// Sequential runs generated scenario tests one at a time (the zero
	// value, so an unset Config keeps the conservative default).
	Sequential RuntimeMode = iota
	// Parallel marks generated scenario tests with t.Parallel().
	Parallel
)

// Config holds runtime configuration settings for stepbdd.
// Settings are merged from all discovered config functions (see
// MergeConfigs). No command-line flags override these settings.
type Config struct {
	// FailFast stops execution on first scenario failure.
	FailFast bool

	// NoColor disables colored output.
	NoColor bool

	// DisableLog disables the structured logger (ctx.Logger()) used within
	// step functions. When true, a no-op logger that discards all messages
	// is injected instead of the default slog logger.
	// Default: false (logger is enabled).
	DisableLog bool

	// DisableReporter disables the BDD reporter output (feature, scenario,
	// step and summary lines). When true, no reporter output is printed.
	// Default: false (reporter output is enabled).
	DisableReporter bool

	// AllowSkippedByDefault relaxes the default fail-on-skip policy for
	// every scenario run under this config, equivalent to tagging every
	// scenario @allow_skipped. A scenario's own @allow_skipped tag still
	// applies regardless of this setting.
	AllowSkippedByDefault bool

	// DumpSteps, when true, writes the registry's step inventory plus the
	// run's scenario/bypassed-step records as JSON instead of the console
	// report. Same effect as setting the RSTEST_BDD_DUMP_STEPS environment
	// variable.
	DumpSteps bool

	// RuntimeMode controls whether generated scenario tests run
	// sequentially or call t.Parallel(). Zero value is Sequential.
	RuntimeMode RuntimeMode

	// Logger sets a custom logger. If nil, default slog logger is used.
	Logger Logger
}

// MergeConfigs combines multiple configs into one.
// A bool field is true if any config sets it; RuntimeMode and Logger take
// the last non-zero value.
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.FailFast {
			result.FailFast = true
		}
		if cfg.NoColor {
			result.NoColor = true
		}
		if cfg.DisableLog {
			result.DisableLog = true
		}
		if cfg.DisableReporter {
			result.DisableReporter = true
		}
		if cfg.AllowSkippedByDefault {
			result.AllowSkippedByDefault = true
		}
		if cfg.DumpSteps {
			result.DumpSteps = true
		}
		if cfg.RuntimeMode != Sequential {
			result.RuntimeMode = cfg.RuntimeMode
		}
		if cfg.Logger != nil {
			result.Logger = cfg.Logger
		}
	}

	return result
}
