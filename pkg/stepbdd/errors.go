package stepbdd

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
)

// ErrorKind closes the set of ways a step or scenario can fail. Every
// *StepError carries exactly one; callers that need to branch on failure
// mode switch on Kind rather than matching error strings.
type ErrorKind int

const (
	// StepNotFound means no registered pattern matched the step text.
	StepNotFound ErrorKind = iota
	// AmbiguousMatch means two or more equally specific patterns matched.
	// pkg/registry's own *AmbiguousMatchError carries the richer detail
	// (every tied source, not just one); this Kind exists so a future
	// dump-mode aggregator can classify it alongside the other kinds
	// without losing that detail, by setting Cause to the registry error.
	AmbiguousMatch
	// MissingFixture means a step function declared a fixture parameter
	// no earlier step inserted into the scenario's data store.
	MissingFixture
	// HandlerPanic means the step function's body panicked with something
	// other than a SkipRequest.
	HandlerPanic
	// FailOnSkipped means a step was skipped and the run's policy treats
	// any skip as a scenario failure.
	FailOnSkipped
	// AndButWithoutPrimary means an And/But step has no preceding
	// Given/When/Then in its scenario or background.
	AndButWithoutPrimary
)

func (k ErrorKind) templateName() string {
	switch k {
	case StepNotFound:
		return "step_not_found"
	case AmbiguousMatch:
		return "ambiguous_match"
	case MissingFixture:
		return "missing_fixture"
	case HandlerPanic:
		return "handler_panic"
	case FailOnSkipped:
		return "fail_on_skipped"
	case AndButWithoutPrimary:
		return "and_but_without_primary"
	default:
		return ""
	}
}

//go:embed messages.toml
var messageTemplatesTOML []byte

type messageTemplate struct {
	Template string `toml:"template"`
}

var messageTemplates map[string]messageTemplate

func init() {
	var parsed map[string]messageTemplate
	if _, err := toml.Decode(string(messageTemplatesTOML), &parsed); err != nil {
		log.Panicf("stepbdd: malformed messages.toml: %v", err)
	}
	messageTemplates = parsed
}

// StepError is the concrete error type returned or recorded for every step
// or scenario failure that originates inside this module (as opposed to an
// error value a step function itself returned). It carries enough location
// context for a report to point at the exact feature/scenario/step.
type StepError struct {
	Kind ErrorKind

	// FeaturePath is the .feature file the failing step belongs to, when
	// known. Empty when the error was raised below the feature-walking
	// layer (e.g. inside pkg/wrapper, which has no path context).
	FeaturePath string

	// ScenarioName is the scenario (or expanded Outline row) the step
	// belongs to.
	ScenarioName string

	// StepIndex is the zero-based position of the step within the
	// scenario's full step list, background steps included.
	StepIndex int

	// Keyword and StepText identify the step itself.
	Keyword string
	StepText string

	// Args are formatted into the Kind's message template, in declaration
	// order.
	Args []any

	// Required, Missing and Available are populated only for
	// MissingFixture: the fixture name the step function asked for, the
	// same name repeated for symmetry with future multi-fixture errors,
	// and the names currently available in the scenario's data store.
	Required  string
	Missing   string
	Available []string

	// Cause is the underlying error this StepError wraps, if any (e.g. a
	// step function's own returned error, or a recovered panic value
	// already wrapped by pkg/wrapper).
	Cause error
}

func (e *StepError) Error() string {
	tmpl, ok := messageTemplates[e.Kind.templateName()]
	msg := "unknown error"
	if ok {
		msg = fmt.Sprintf(tmpl.Template, e.Args...)
	}
	if e.ScenarioName == "" {
		return "stepbdd: " + msg
	}
	return fmt.Sprintf("stepbdd: %s: step %d (%s%s): %s", e.ScenarioName, e.StepIndex, e.Keyword, e.StepText, msg)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// NewMissingFixtureError builds the MissingFixture StepError pkg/wrapper and
// pkg/executor report when a step function's fixture parameter has nothing
// to bind to.
func NewMissingFixtureError(name string, available []string) *StepError {
	return &StepError{
		Kind:      MissingFixture,
		Required:  name,
		Missing:   name,
		Available: available,
		Args:      []any{name, available},
	}
}
