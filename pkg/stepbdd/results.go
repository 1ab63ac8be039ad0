package stepbdd

import "time"

// StepStatus represents the execution outcome of a step.
type StepStatus int

const (
	// StepPassed indicates the step executed successfully.
	StepPassed StepStatus = iota
	// StepFailed indicates the step failed (assertion, panic, or returned error).
	StepFailed
	// StepSkipped indicates the step requested a skip, or did not run
	// because an earlier step failed or skipped.
	StepSkipped
)

// String returns a human-readable label for the step status.
func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult holds the execution result of a single step.
type StepResult struct {
	// Keyword is the Gherkin keyword including trailing whitespace
	// (e.g. "Given ", "When ", "Then ").
	Keyword string

	// Text is the step text after the keyword.
	Text string

	// Status is the execution outcome (passed, failed, or skipped).
	Status StepStatus

	// Error is the error message when the step failed. Empty for passed/skipped.
	Error string

	// SkipMessage is the reason a skip step gave, if any. Kept separate from
	// Error so a skip with no message stays a nil pointer through JSON/JUnit
	// output rather than becoming an empty-string error.
	SkipMessage *string

	// Duration is the wall-clock execution time. Zero for skipped steps.
	Duration time.Duration

	// StartedAt is when the step started executing. Zero for skipped steps.
	StartedAt time.Time

	// MatchLocs holds pairs of [start, end] byte offsets for each capture
	// group within Text (same format as regexp.FindStringSubmatchIndex,
	// minus the full-match pair). Used for parameter highlighting in reports.
	MatchLocs []int
}

// ScenarioResult holds the execution result of a single scenario.
type ScenarioResult struct {
	// FeatureName is the name of the parent feature.
	FeatureName string

	// RuleName is the name of the parent rule. Empty if the scenario is not
	// inside a rule.
	RuleName string

	// Name is the scenario name as written in the .feature file.
	Name string

	// Tags contains the tag names attached to this scenario, including
	// tags inherited from the Feature. A Rule's tags are not included.
	Tags []string

	// Passed is true when all steps passed.
	Passed bool

	// Skipped is true when some step in this scenario resolved to
	// StepSkipped, independent of Passed: an @allow_skipped scenario that
	// skips is Passed == true and Skipped == true, not silently folded
	// into an ordinary pass.
	Skipped bool

	// AllowSkipped records whether this scenario ran under an
	// @allow_skipped override of the fail-on-skipped policy.
	AllowSkipped bool

	// ForcedFailure is true when Passed is false because a skipped step
	// tripped the fail-on-skipped policy rather than because a step
	// actually failed an assertion.
	ForcedFailure bool

	// SkipMessage is the message carried by the skip that produced this
	// scenario's Skipped/ForcedFailure status, if any.
	SkipMessage *string

	// Error is the error message when the scenario failed. Empty if passed.
	Error string

	// Duration is the sum of the scenario's step durations; hook time is
	// not included.
	Duration time.Duration

	// StartedAt is when the scenario started executing.
	StartedAt time.Time

	// FeatureBgSteps contains the results of feature-level background steps.
	FeatureBgSteps []StepResult

	// RuleBgSteps contains the results of rule-level background steps.
	RuleBgSteps []StepResult

	// Steps contains the results of the scenario's steps. When built by the
	// runner's ToRunResult it also holds the background steps, in run order,
	// and FeatureBgSteps/RuleBgSteps stay empty.
	Steps []StepResult
}

// RunResult holds the complete results of a test run.
type RunResult struct {
	// Scenarios contains the result of every executed scenario.
	Scenarios []ScenarioResult

	// Summary holds aggregate pass/fail/skip counters.
	Summary ReporterSummary

	// Duration is the total wall-clock time for the entire run.
	Duration time.Duration

	// StartedAt is when the run started.
	StartedAt time.Time
}
