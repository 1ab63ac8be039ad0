package stepbdd

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
)

// jsonStepResult and jsonScenarioResult mirror StepResult/ScenarioResult but
// control field casing and omission independently of the in-memory types, so
// a report format change never forces a change to the runtime structs.
type jsonStepResult struct {
	Keyword     string  `json:"keyword"`
	Text        string  `json:"text"`
	Status      string  `json:"status"`
	Error       string  `json:"error,omitempty"`
	SkipMessage *string `json:"skip_message,omitempty"`
	Seconds     float64 `json:"duration_seconds"`
}

type jsonScenarioResult struct {
	Feature        string           `json:"feature"`
	Rule           string           `json:"rule,omitempty"`
	Name           string           `json:"name"`
	Tags           []string         `json:"tags,omitempty"`
	Passed         bool             `json:"passed"`
	Skipped        bool             `json:"skipped,omitempty"`
	AllowSkipped   bool             `json:"allow_skipped,omitempty"`
	ForcedFailure  bool             `json:"forced_failure,omitempty"`
	SkipMessage    *string          `json:"skip_message,omitempty"`
	Error          string           `json:"error,omitempty"`
	Seconds        float64          `json:"duration_seconds"`
	FeatureBgSteps []jsonStepResult `json:"feature_background_steps,omitempty"`
	RuleBgSteps    []jsonStepResult `json:"rule_background_steps,omitempty"`
	Steps          []jsonStepResult `json:"steps"`
}

type jsonSummary struct {
	ScenariosTotal   int `json:"scenarios_total"`
	ScenariosPassed  int `json:"scenarios_passed"`
	ScenariosFailed  int `json:"scenarios_failed"`
	ScenariosSkipped int `json:"scenarios_skipped"`
	StepsTotal       int `json:"steps_total"`
	StepsPassed      int `json:"steps_passed"`
	StepsFailed      int `json:"steps_failed"`
	StepsSkipped     int `json:"steps_skipped"`
}

type jsonRunResult struct {
	Scenarios []jsonScenarioResult `json:"scenarios"`
	Summary   jsonSummary          `json:"summary"`
	Seconds   float64              `json:"duration_seconds"`
}

func toJSONSteps(steps []StepResult) []jsonStepResult {
	out := make([]jsonStepResult, len(steps))
	for i, s := range steps {
		out[i] = jsonStepResult{
			Keyword:     s.Keyword,
			Text:        s.Text,
			Status:      s.Status.String(),
			Error:       s.Error,
			SkipMessage: s.SkipMessage,
			Seconds:     s.Duration.Seconds(),
		}
	}
	return out
}

// WriteJSON serializes result as the stable JSON report format: lower-case
// status strings, an absent error field (not an empty string) for steps
// that have none, and durations in fractional seconds.
func WriteJSON(w io.Writer, result RunResult) error {
	out := jsonRunResult{
		Scenarios: make([]jsonScenarioResult, len(result.Scenarios)),
		Summary: jsonSummary{
			ScenariosTotal:   result.Summary.ScenariosTotal,
			ScenariosPassed:  result.Summary.ScenariosPassed,
			ScenariosFailed:  result.Summary.ScenariosFailed,
			ScenariosSkipped: result.Summary.ScenariosSkipped,
			StepsTotal:       result.Summary.StepsTotal,
			StepsPassed:      result.Summary.StepsPassed,
			StepsFailed:      result.Summary.StepsFailed,
			StepsSkipped:     result.Summary.StepsSkipped,
		},
		Seconds: result.Duration.Seconds(),
	}

	for i, sc := range result.Scenarios {
		out.Scenarios[i] = jsonScenarioResult{
			Feature:        sc.FeatureName,
			Rule:           sc.RuleName,
			Name:           sc.Name,
			Tags:           sc.Tags,
			Passed:         sc.Passed,
			Skipped:        sc.Skipped,
			AllowSkipped:   sc.AllowSkipped,
			ForcedFailure:  sc.ForcedFailure,
			SkipMessage:    sc.SkipMessage,
			Error:          sc.Error,
			Seconds:        sc.Duration.Seconds(),
			FeatureBgSteps: toJSONSteps(sc.FeatureBgSteps),
			RuleBgSteps:    toJSONSteps(sc.RuleBgSteps),
			Steps:          toJSONSteps(sc.Steps),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// JUnit XML shape, grounded on the same testsuites/testsuite/testcase
// nesting every CI dashboard expects.

type junitTestSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     float64         `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

// xmlSafe replaces the characters XML 1.0 cannot encode even when escaped
// (C0 control codes below U+0020 other than tab/newline/carriage-return)
// with U+FFFD, so a step's captured error text can never produce invalid
// XML output.
func xmlSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		if r < 0x20 {
			return 0xFFFD
		}
		return r
	}, s)
}

// WriteJUnit serializes result as a single JUnit <testsuite> covering the
// whole run, one <testcase> per scenario. A scenario whose only failure is a
// skipped step under a fail-on-skipped policy is reported as a failed
// testcase with type="fail_on_skipped", distinguishing it from an ordinary
// assertion/handler failure for CI triage; a scenario that skipped under an
// @allow_skipped override is reported as <skipped>, not as a failure.
func WriteJUnit(w io.Writer, result RunResult) error {
	suite := junitTestSuite{
		Name: "stepbdd",
		Time: result.Duration.Seconds(),
	}

	for _, sc := range result.Scenarios {
		suite.Tests++
		tc := junitTestCase{
			Name:      sc.Name,
			ClassName: sc.FeatureName,
			Time:      sc.Duration.Seconds(),
		}

		switch {
		case sc.ForcedFailure:
			suite.Failures++
			tc.Failure = &junitFailure{Message: xmlSafe(sc.Error), Type: "fail_on_skipped"}
		case sc.Skipped:
			suite.Skipped++
			tc.Skipped = &junitSkipped{Message: xmlSafe(skipMessageOrEmpty(sc.SkipMessage))}
		case !sc.Passed:
			suite.Failures++
			tc.Failure = &junitFailure{Message: xmlSafe(sc.Error), Type: "failed"}
		}

		suite.Cases = append(suite.Cases, tc)
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(suite)
}

func skipMessageOrEmpty(msg *string) string {
	if msg == nil {
		return ""
	}
	return *msg
}
