package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-stepbdd/stepbdd/pkg/executor"
	"github.com/go-stepbdd/stepbdd/pkg/registry"
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// ToRunResult converts the raw scenario records Run produced into the
// shared stepbdd.RunResult shape the JSON/JUnit writers and ConsoleReporter
// operate on. Background steps are not split out from a scenario's own
// steps here: executor.ScenarioRecord records every step, background
// included, in traversal order, so FeatureBgSteps/RuleBgSteps are always
// left empty and the full sequence lives in Steps.
func (r *Result) ToRunResult() stepbdd.RunResult {
	out := stepbdd.RunResult{Scenarios: make([]stepbdd.ScenarioResult, len(r.Scenarios))}

	for i, rec := range r.Scenarios {
		sr := stepbdd.ScenarioResult{
			FeatureName:   rec.FeatureName,
			RuleName:      rec.RuleName,
			Name:          rec.Name,
			Tags:          rec.Tags,
			Passed:        !rec.Failed,
			Skipped:       rec.Skipped,
			AllowSkipped:  rec.AllowSkipped,
			ForcedFailure: rec.ForcedFailure,
			SkipMessage:   firstSkipMessage(rec.Steps),
			Steps:         make([]stepbdd.StepResult, len(rec.Steps)),
		}
		if rec.Failed {
			sr.Error = firstError(rec.Steps)
		}
		for j, st := range rec.Steps {
			sr.Steps[j] = stepbdd.StepResult{
				Keyword:     st.Keyword,
				Text:        st.Text,
				Status:      toStepStatus(st.Outcome),
				Duration:    st.Duration,
				SkipMessage: st.SkipMessage,
			}
			if st.Err != nil {
				sr.Steps[j].Error = st.Err.Error()
			}
			sr.Duration += st.Duration
		}
		out.Scenarios[i] = sr
		out.Duration += sr.Duration

		out.Summary.ScenariosTotal++
		switch {
		case rec.Skipped && !rec.ForcedFailure:
			out.Summary.ScenariosSkipped++
		case rec.Failed:
			out.Summary.ScenariosFailed++
		default:
			out.Summary.ScenariosPassed++
		}
		for _, st := range rec.Steps {
			out.Summary.StepsTotal++
			switch st.Outcome {
			case executor.StepPassed:
				out.Summary.StepsPassed++
			case executor.StepFailed:
				out.Summary.StepsFailed++
			case executor.StepSkipped, executor.StepBypassed:
				out.Summary.StepsSkipped++
			}
		}
	}

	return out
}

func firstError(steps []executor.StepResult) string {
	for _, s := range steps {
		if s.Err != nil {
			return s.Err.Error()
		}
	}
	return ""
}

// firstSkipMessage returns the message of the first skipped step in steps,
// or nil if none skipped or the skip carried no message.
func firstSkipMessage(steps []executor.StepResult) *string {
	for _, s := range steps {
		if s.Outcome == executor.StepSkipped && s.SkipMessage != nil {
			return s.SkipMessage
		}
	}
	return nil
}

func toStepStatus(o executor.StepOutcome) stepbdd.StepStatus {
	switch o {
	case executor.StepPassed:
		return stepbdd.StepPassed
	case executor.StepFailed:
		return stepbdd.StepFailed
	default: // StepSkipped, StepBypassed
		return stepbdd.StepSkipped
	}
}

// dumpSnapshot is the --dump-steps / RSTEST_BDD_DUMP_STEPS output shape: the
// registry's full step inventory alongside the scenario and bypassed-step
// records from the run that triggered the dump.
type dumpSnapshot struct {
	Steps         []registry.StepInfo        `json:"steps"`
	Scenarios     []*executor.ScenarioRecord `json:"scenarios"`
	BypassedSteps []dumpBypassedStep         `json:"bypassed_steps"`
}

// dumpBypassedStep is one entry of the dump's bypassed_steps array: a step
// that never ran because an earlier step in the same scenario failed or
// skipped. Pattern/File/Line describe the step definition that would have
// matched, when a prior Find on this same text already resolved one;
// Reason carries the scenario's skip message, if the bypass was caused by a
// skip rather than a failure.
type dumpBypassedStep struct {
	RunID        string   `json:"run_id"`
	Keyword      string   `json:"keyword"`
	Text         string   `json:"text"`
	Pattern      string   `json:"pattern,omitempty"`
	File         string   `json:"file,omitempty"`
	Line         int      `json:"line,omitempty"`
	FeaturePath  string   `json:"feature_path,omitempty"`
	ScenarioName string   `json:"scenario_name"`
	ScenarioLine int      `json:"scenario_line,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Reason       *string  `json:"reason,omitempty"`
}

// Report writes either a JSON dump or a console summary of result,
// depending on c's config. Dump mode is selected by the config's DumpSteps
// field or the RSTEST_BDD_DUMP_STEPS environment variable (a non-empty
// value is treated as a file path to write to; "-" or "1" writes to
// stdout). Generated test code calls this once after Run/RunWithTags.
func (c *CucumberRunner) Report(result *Result) error {
	dumpTarget, dumpRequested := dumpDestination(c.config)
	if dumpRequested {
		return c.writeDump(dumpTarget, result)
	}

	if c.config != nil && c.config.DisableReporter {
		return nil
	}

	reporter := stepbdd.NewConsoleReporter(c.config == nil || !c.config.NoColor)
	runResult := result.ToRunResult()
	writeConsoleReport(reporter, runResult)
	return nil
}

func dumpDestination(cfg *stepbdd.Config) (target string, requested bool) {
	if env := os.Getenv("RSTEST_BDD_DUMP_STEPS"); env != "" {
		return env, true
	}
	if cfg != nil && cfg.DumpSteps {
		return "", true
	}
	return "", false
}

func (c *CucumberRunner) writeDump(target string, result *Result) error {
	snapshot := dumpSnapshot{Steps: c.registry.DumpRegistry(), Scenarios: result.Scenarios}
	for _, rec := range result.Scenarios {
		reason := firstSkipMessage(rec.Steps)
		for _, b := range rec.Bypassed {
			snapshot.BypassedSteps = append(snapshot.BypassedSteps, dumpBypassedStep{
				RunID:        rec.RunID,
				Keyword:      b.Keyword,
				Text:         b.Text,
				Pattern:      b.MatchedPattern,
				File:         b.MatchedFile,
				Line:         b.MatchedLine,
				FeaturePath:  rec.FeaturePath,
				ScenarioName: rec.Name,
				ScenarioLine: rec.Line,
				Tags:         rec.Tags,
				Reason:       reason,
			})
		}
	}

	var w io.Writer = os.Stdout
	if target != "" && target != "-" && target != "1" {
		f, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("runner: creating dump file %s: %w", target, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

func writeConsoleReport(reporter *stepbdd.ConsoleReporter, result stepbdd.RunResult) {
	var currentFeature string
	for _, sc := range result.Scenarios {
		if sc.FeatureName != "" && sc.FeatureName != currentFeature {
			reporter.FeatureStart(sc.FeatureName)
			currentFeature = sc.FeatureName
		}
		reporter.ScenarioStart(sc.Name)
		for _, st := range sc.Steps {
			switch st.Status {
			case stepbdd.StepPassed:
				reporter.StepPassed(st.Keyword, st.Text, st.MatchLocs)
			case stepbdd.StepFailed:
				reporter.StepFailed(st.Keyword, st.Text, st.Error, st.MatchLocs)
			case stepbdd.StepSkipped:
				reporter.StepSkipped(st.Keyword, st.Text)
			}
			reporter.AddStepResult(st.Status == stepbdd.StepPassed, st.Status == stepbdd.StepSkipped)
		}
		reporter.AddScenarioResult(sc.Passed, sc.Skipped && !sc.ForcedFailure)
	}
	reporter.PrintSummary()
	reporter.Flush()
}
