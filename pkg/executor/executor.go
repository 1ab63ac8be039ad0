// Package executor runs a parsed Gherkin document's scenarios against a
// step registry: it walks Background/Rule/Scenario structure, resolves
// And/But to the nearest preceding primary keyword, dispatches each step
// through the wrapper, and assembles a structured record of what ran.
package executor

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/google/uuid"

	"github.com/go-stepbdd/stepbdd/pkg/registry"
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
	"github.com/go-stepbdd/stepbdd/pkg/wrapper"
)

// StepOutcome classifies how a single step resolved.
type StepOutcome int

const (
	StepPassed StepOutcome = iota
	StepSkipped
	StepBypassed // not run because an earlier step in the scenario failed or skipped
	StepFailed
)

func (o StepOutcome) String() string {
	switch o {
	case StepPassed:
		return "passed"
	case StepSkipped:
		return "skipped"
	case StepBypassed:
		return "bypassed"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StepResult records the outcome of a single step within a scenario.
type StepResult struct {
	Keyword string
	Text    string
	Outcome StepOutcome
	Err     error

	// SkipMessage holds the reason a wrapper.Skip call gave, if any. It is
	// kept separate from Err so a skip with no message stays a nil pointer
	// all the way to JSON/JUnit output rather than becoming an empty-string
	// error field.
	SkipMessage *string

	// MatchedPattern/MatchedFile/MatchedLine describe the registered step
	// definition that would have matched this step's text, filled in for a
	// StepBypassed result by a non-invoking lookup so dump-mode diagnostics
	// can report which definition was skipped over.
	MatchedPattern string
	MatchedFile    string
	MatchedLine    int

	Duration time.Duration
}

// ScenarioRecord is the complete outcome of running one scenario (or one
// Examples row of a Scenario Outline).
type ScenarioRecord struct {
	// RunID uniquely identifies this scenario run, so dump-mode JSON and
	// console output from a parallel run can be correlated even though
	// interleaved stdout ordering cannot be relied on.
	RunID string
	Name  string

	// FeatureName, RuleName, FeaturePath, Tags and Line are set by the
	// caller (pkg/runner), which knows the document structure the Executor
	// does not; all are left at their zero value when Run is invoked
	// directly.
	FeatureName string
	RuleName    string
	FeaturePath string
	Tags        []string
	Line        int

	Steps    []StepResult
	Failed   bool
	Bypassed []StepResult

	// Skipped reports whether any step in this scenario resolved to
	// StepSkipped, independent of whether that skip went on to fail the
	// scenario.
	Skipped bool

	// AllowSkipped records whether this scenario ran under an
	// @allow_skipped override (tag or config default) of the process-wide
	// FailOnSkipped policy, regardless of whether a skip actually occurred.
	AllowSkipped bool

	// ForcedFailure is true when Failed was set because a skipped step
	// tripped the FailOnSkipped policy rather than because a step actually
	// failed; it distinguishes a policy-driven failure from a genuine one
	// in reports that only carry a single Failed bool from the caller.
	ForcedFailure bool
}

// FailOnSkipped controls whether a Skip request anywhere in a scenario
// fails that scenario. It is process-global by default (matching the
// underlying test binary's behaviour) but can be overridden per-scenario
// via the @allow_skipped tag, handled by the caller before Run is invoked.
var failOnSkipped atomic.Bool

func init() {
	failOnSkipped.Store(true)
}

// SetFailOnSkipped sets the process-wide default policy.
func SetFailOnSkipped(v bool) {
	failOnSkipped.Store(v)
}

// FailOnSkipped returns the process-wide default policy.
func FailOnSkipped() bool {
	return failOnSkipped.Load()
}

// Executor dispatches Gherkin steps against a Registry.
type Executor struct {
	Registry StepFinder

	// AllowSkipped overrides the process-wide FailOnSkipped policy for
	// every scenario this Executor runs, e.g. because the scenario carries
	// an @allow_skipped tag.
	AllowSkipped bool

	// StepHooks, when set, fires BeforeStep/AfterStep around every step
	// this Executor runs. Scenario- and run-level hooks are the caller's
	// responsibility (pkg/runner), since the Executor has no notion of a
	// document's Feature/Rule structure.
	StepHooks *stepbdd.HookExecutor
}

// New returns an Executor bound to reg.
func New(reg *registry.Registry) *Executor {
	return &Executor{Registry: reg}
}

// newAndButWithoutPrimaryError builds the StepError for an And/But step with
// no preceding primary keyword in scope.
func newAndButWithoutPrimaryError(text string) *stepbdd.StepError {
	return &stepbdd.StepError{Kind: stepbdd.AndButWithoutPrimary, Args: []any{text}}
}

// newFailOnSkippedError builds the StepError a scenario fails with when one
// of its steps was skipped and the run's policy does not allow that.
func newFailOnSkippedError(scenarioName string, stepIndex int, keyword, text string) *stepbdd.StepError {
	return &stepbdd.StepError{
		Kind:         stepbdd.FailOnSkipped,
		ScenarioName: scenarioName,
		StepIndex:    stepIndex,
		Keyword:      keyword,
		StepText:     text,
	}
}

// Run executes scenario's steps, prefixed by background's steps (if any),
// against a fresh stepbdd.Context. It never returns a non-nil error for a
// failed step; failures are recorded on the returned ScenarioRecord, and
// the error return is reserved for structural problems (e.g. a step using
// And/But with no preceding primary keyword in scope).
func (ex *Executor) Run(name string, background *messages.Background, scenario *messages.Scenario) (*ScenarioRecord, error) {
	rec := &ScenarioRecord{RunID: uuid.NewString(), Name: name, AllowSkipped: ex.AllowSkipped}
	ctx := stepbdd.New()

	var steps []*messages.Step
	if background != nil {
		steps = append(steps, background.Steps...)
	}
	steps = append(steps, scenario.Steps...)

	var lastPrimary registry.Keyword
	havePrimary := false
	bypassing := false

	for _, step := range steps {
		keyword, err := resolveKeyword(step.Keyword, &lastPrimary, &havePrimary)
		if err != nil {
			return nil, err
		}

		if bypassing {
			result := StepResult{Keyword: step.Keyword, Text: step.Text, Outcome: StepBypassed}
			if def, _, err := ex.find(keyword, step.Text); err == nil {
				result.MatchedPattern = def.Source
				result.MatchedFile = def.File
				result.MatchedLine = def.Line
			}
			rec.Steps = append(rec.Steps, result)
			rec.Bypassed = append(rec.Bypassed, result)
			continue
		}

		result := ex.runStep(keyword, ctx, step)
		rec.Steps = append(rec.Steps, result)

		switch result.Outcome {
		case StepFailed:
			rec.Failed = true
			bypassing = true
		case StepSkipped:
			rec.Skipped = true
			if !ex.AllowSkipped && failOnSkipped.Load() {
				rec.Failed = true
				rec.ForcedFailure = true
				rec.Steps[len(rec.Steps)-1].Err = newFailOnSkippedError(name, len(rec.Steps)-1, step.Keyword, step.Text)
			}
			bypassing = true
		}
	}

	return rec, nil
}

func resolveKeyword(raw string, lastPrimary *registry.Keyword, havePrimary *bool) (registry.Keyword, error) {
	k, err := parseKeyword(raw)
	if err != nil {
		return 0, err
	}
	if k.Primary() {
		*lastPrimary = k
		*havePrimary = true
		return k, nil
	}
	if !*havePrimary {
		return 0, newAndButWithoutPrimaryError(raw)
	}
	return *lastPrimary, nil
}

func parseKeyword(raw string) (registry.Keyword, error) {
	switch strings.TrimSpace(raw) {
	case "Given":
		return registry.Given, nil
	case "When":
		return registry.When, nil
	case "Then":
		return registry.Then, nil
	case "And", "*":
		return registry.And, nil
	case "But":
		return registry.But, nil
	default:
		return 0, fmt.Errorf("executor: unrecognised step keyword %q", raw)
	}
}

func (ex *Executor) runStep(keyword registry.Keyword, ctx *stepbdd.Context, step *messages.Step) StepResult {
	start := time.Now()
	result := StepResult{Keyword: step.Keyword, Text: step.Text}

	if ex.StepHooks != nil {
		ex.StepHooks.ExecuteBeforeStep(stepbdd.Step{Keyword: step.Keyword, Text: step.Text})
	}
	defer func() {
		result.Duration = time.Since(start)
		if ex.StepHooks != nil {
			ex.StepHooks.ExecuteAfterStep(stepbdd.Step{Keyword: step.Keyword, Text: step.Text}, result.Err)
		}
	}()

	def, captures, err := ex.find(keyword, step.Text)
	if err != nil {
		result.Outcome = StepFailed
		result.Err = classifyFindError(err, step.Text)
		return result
	}

	var table *stepbdd.Table
	if step.DataTable != nil {
		t := stepbdd.NewTableFromDataTable(step.DataTable)
		table = &t
	}
	var docString *string
	if step.DocString != nil {
		docString = &step.DocString.Content
	}

	spec := def.Fn.(*wrapper.Spec)
	outcome, err := wrapper.Invoke(spec, ctx, captures, table, docString)
	if err != nil {
		result.Outcome = StepFailed
		result.Err = classifyInvokeError(err)
		return result
	}

	def.MarkUsed()

	switch outcome.Kind {
	case wrapper.Skipped:
		result.Outcome = StepSkipped
		if outcome.Reason != "" {
			reason := outcome.Reason
			result.SkipMessage = &reason
		}
	case wrapper.Value:
		ctx.Data().PushReturned(outcome.Value)
		result.Outcome = StepPassed
	default:
		result.Outcome = StepPassed
	}
	return result
}

// classifyInvokeError turns a recovered step-function panic into the shared
// stepbdd.StepError taxonomy; a MissingFixture or plain binding error from
// pkg/wrapper is already descriptive enough and is returned unchanged.
func classifyInvokeError(err error) error {
	if panicErr, ok := err.(*wrapper.HandlerPanicError); ok {
		return &stepbdd.StepError{Kind: stepbdd.HandlerPanic, Args: []any{panicErr.Recovered}, Cause: err}
	}
	return err
}

// classifyFindError turns a registry.NotFoundError into the shared
// stepbdd.StepError taxonomy; every other error from Find (ambiguous match,
// recovered duplicate panic) already carries enough of its own detail and
// is returned unchanged.
func classifyFindError(err error, text string) error {
	if _, ok := err.(*registry.NotFoundError); ok {
		return &stepbdd.StepError{Kind: stepbdd.StepNotFound, Args: []any{text}, Cause: err}
	}
	return err
}

// find recovers the registry's DuplicateStepError panic and turns it into a
// plain error, since a scenario that trips it should be reported as a
// failed step rather than crash the whole test binary.
func (ex *Executor) find(keyword registry.Keyword, text string) (step *registry.Step, captures []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if dup, ok := r.(*registry.DuplicateStepError); ok {
				err = dup
				return
			}
			panic(r)
		}
	}()
	return ex.Registry.Find(keyword, text)
}
