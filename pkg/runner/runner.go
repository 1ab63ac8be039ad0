// Package runner ties the pieces together: it discovers .feature files,
// parses them, filters scenarios by tag expression, and runs each one
// through an executor bound to the process-wide step registry.
package runner

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	messages "github.com/cucumber/messages/go/v21"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
	"github.com/google/uuid"

	"github.com/go-stepbdd/stepbdd/pkg/executor"
	"github.com/go-stepbdd/stepbdd/pkg/gherkin_parser"
	"github.com/go-stepbdd/stepbdd/pkg/pattern"
	"github.com/go-stepbdd/stepbdd/pkg/registry"
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
	"github.com/go-stepbdd/stepbdd/pkg/wrapper"
)

// CucumberRunner owns the process-wide step registry and the feature
// directories/config it will run against.
type CucumberRunner struct {
	config             *stepbdd.Config
	hooks              []*stepbdd.Hooks
	featureDirectories []string
	registry           *registry.Registry
	customTypes        map[string]*pattern.CustomType
	source             FeatureSource
}

// NewCucumberRunner returns a runner with an empty registry, discovering
// feature files from disk by default.
func NewCucumberRunner() *CucumberRunner {
	return &CucumberRunner{
		registry:    registry.New(),
		customTypes: make(map[string]*pattern.CustomType),
		source:      fileFeatureSource{},
	}
}

// WithFeatureSource overrides how feature files are discovered and parsed.
// Generated code never needs this; it exists so tests can exercise tag
// filtering and scenario dispatch against a fixed document set.
func (c *CucumberRunner) WithFeatureSource(source FeatureSource) *CucumberRunner {
	c.source = source
	return c
}

// fileFeatureSource is the default FeatureSource: it walks the filesystem
// with gherkin_parser.
type fileFeatureSource struct{}

func (fileFeatureSource) Discover(directories []string) ([]*messages.GherkinDocument, error) {
	files, err := gherkin_parser.SearchFeatureFilesIn(directories)
	if err != nil {
		return nil, fmt.Errorf("runner: discovering feature files: %w", err)
	}

	docs := make([]*messages.GherkinDocument, 0, len(files))
	for _, path := range files {
		doc, err := parseFile(path)
		if err != nil {
			return nil, fmt.Errorf("runner: parsing %s: %w", path, err)
		}
		uri := path
		doc.Uri = &uri
		docs = append(docs, doc)
	}
	return docs, nil
}

// WithConfigFunc applies a config-producing function discovered by the
// generator; nil is a no-op so generated code doesn't need a nil check.
func (c *CucumberRunner) WithConfigFunc(configFunction func() *stepbdd.Config) *CucumberRunner {
	if configFunction != nil {
		c.config = configFunction()
	}
	return c
}

// WithConfigFuncs applies every config-producing function the generator
// discovered across the scanned packages, merging them with
// stepbdd.MergeConfigs; a nil entry is skipped so generated code doesn't
// need to filter its own list.
func (c *CucumberRunner) WithConfigFuncs(configFunctions ...func() *stepbdd.Config) *CucumberRunner {
	configs := make([]*stepbdd.Config, 0, len(configFunctions)+1)
	if c.config != nil {
		configs = append(configs, c.config)
	}
	for _, fn := range configFunctions {
		if fn == nil {
			continue
		}
		if cfg := fn(); cfg != nil {
			configs = append(configs, cfg)
		}
	}
	c.config = stepbdd.MergeConfigs(configs...)
	return c
}

// WithHooksFunc applies a hooks-producing function discovered by the
// generator; nil is a no-op. Multiple calls accumulate, matching how the
// generator discovers one HooksFunctions entry per *Hooks-returning
// function across every scanned package.
func (c *CucumberRunner) WithHooksFunc(hooksFunction func() *stepbdd.Hooks) *CucumberRunner {
	if hooksFunction != nil {
		if h := hooksFunction(); h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
	return c
}

// WithFeaturesDirectories sets the directories SearchFeatureFilesIn walks.
func (c *CucumberRunner) WithFeaturesDirectories(directories ...string) *CucumberRunner {
	c.featureDirectories = directories
	return c
}

// Config returns the runner's merged configuration, or nil if none of
// WithConfigFunc/WithConfigFuncs ever supplied one. Generated test code reads
// this to decide whether to call t.Parallel() before running a scenario.
func (c *CucumberRunner) Config() *stepbdd.Config {
	return c.config
}

// RegisterCustomType registers a user-declared type's allowed names/values
// so {typename} placeholder hints can resolve against it.
func (c *CucumberRunner) RegisterCustomType(name, underlying string, values map[string]string) *CucumberRunner {
	c.customTypes[name] = &pattern.CustomType{Name: name, Underlying: underlying, Values: values}
	return c
}

// RegisterStep registers a step definition. spec describes how to bind the
// function's parameters; keyword is one of Given/When/Then (And/But are
// resolved to a primary keyword at execution time, never at registration).
// The file and line recorded against it are this call's own location, i.e.
// the generated setup function for generated code, since that is the only
// call site a Go step definition has.
func (c *CucumberRunner) RegisterStep(keyword registry.Keyword, definition string, spec *wrapper.Spec) *CucumberRunner {
	file, line := callerLocation()
	c.registry.Register(keyword, definition, spec, c.customTypes, file, line)
	return c
}

// callerLocation reports the file/line of RegisterStep's caller.
func callerLocation() (string, int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "", 0
	}
	return file, line
}

// Result summarises one full run across every discovered feature file.
type Result struct {
	Scenarios []*executor.ScenarioRecord
	Failed    bool
}

// RunWithTags discovers feature files under the configured directories,
// parses each, filters scenarios by the given cucumber tag expression
// (an empty/no-arg call runs everything), and executes every scenario
// that survives the filter. It returns a non-nil error for a structural
// failure (bad tag expression, unreadable feature file) and also when any
// scenario failed; Run gives the per-scenario records instead.
func (c *CucumberRunner) RunWithTags(tags ...string) error {
	result, err := c.Run(tags...)
	if err != nil {
		return err
	}
	if result.Failed && c.config != nil && c.config.FailFast {
		return fmt.Errorf("runner: one or more scenarios failed")
	}
	if result.Failed {
		return fmt.Errorf("runner: %d scenario(s) failed", countFailed(result.Scenarios))
	}
	return nil
}

func countFailed(records []*executor.ScenarioRecord) int {
	n := 0
	for _, r := range records {
		if r.Failed {
			n++
		}
	}
	return n
}

// Run is RunWithTags without the error-on-failure collapsing, for callers
// (e.g. generated test functions) that want the per-scenario records
// directly rather than a single pass/fail error.
func (c *CucumberRunner) Run(tags ...string) (*Result, error) {
	var evaluator tagexpressions.Evaluatable
	if len(tags) > 0 {
		expr, err := tagexpressions.Parse(tags[0])
		if err != nil {
			return nil, fmt.Errorf("runner: invalid tag expression %q: %w", tags[0], err)
		}
		evaluator = expr
	}

	units, err := c.collect()
	if err != nil {
		return nil, err
	}

	hooks := stepbdd.NewHookExecutor(c.hooks...)
	hooks.ExecuteBeforeAll()
	defer hooks.ExecuteAfterAll()

	result := &Result{}
	for _, u := range units {
		if evaluator != nil && !evaluator.Evaluate(u.tags) {
			continue
		}
		c.runUnit(u, result, hooks)
		if result.Failed && c.config != nil && c.config.FailFast {
			break
		}
	}
	return result, nil
}

// RunNamed runs exactly the scenario whose title is name, expanding every
// Examples row if it is a Scenario Outline. It exists for generated code
// that emits one TestXxx per scenario rather than one test per run: a tag
// expression selects a batch, a selector picks one. An empty match reports
// every discovered scenario title so the caller can see what was available;
// more than one match means the feature's scenarios are not unique by name
// and the generator should have resolved the selector to an index instead.
func (c *CucumberRunner) RunNamed(name string) (*Result, error) {
	units, err := c.collect()
	if err != nil {
		return nil, err
	}

	var matches []runnableScenario
	var available []string
	for _, u := range units {
		available = append(available, u.scenario.Name)
		if u.scenario.Name == name {
			matches = append(matches, u)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("runner: no scenario named %q (available: %s)", name, strings.Join(available, ", "))
	case 1:
		hooks := stepbdd.NewHookExecutor(c.hooks...)
		hooks.ExecuteBeforeAll()
		defer hooks.ExecuteAfterAll()

		result := &Result{}
		c.runUnit(matches[0], result, hooks)
		return result, nil
	default:
		return nil, fmt.Errorf("runner: %d scenarios are named %q; disambiguate with RunAt(index)", len(matches), name)
	}
}

// RunAt runs exactly the scenario at index within the discovery order
// (features, then each feature's children, depth-first), the same order a
// generator walking the same feature directories would assign indices in.
// An out-of-range index is reported as an error rather than a panic, since
// generated code calling this represents a selector fixed at generation
// time against a feature set that may since have changed on disk.
func (c *CucumberRunner) RunAt(index int) (*Result, error) {
	units, err := c.collect()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(units) {
		return nil, fmt.Errorf("runner: scenario index %d out of range (found %d scenario(s))", index, len(units))
	}

	hooks := stepbdd.NewHookExecutor(c.hooks...)
	hooks.ExecuteBeforeAll()
	defer hooks.ExecuteAfterAll()

	result := &Result{}
	c.runUnit(units[index], result, hooks)
	return result, nil
}

// runnableScenario is one Scenario (or Scenario Outline) located within a
// discovered feature, with its effective background and tag set already
// resolved, but not yet expanded into per-row executor runs.
type runnableScenario struct {
	featureName string
	featurePath string
	ruleName    string
	scenario    *messages.Scenario
	background  *messages.Background
	tags        []string
}

// collect walks every discovered document's Feature/Rule/Scenario structure
// into a flat, depth-first list of runnableScenario, the shared traversal
// both tag-filtered batch runs and single-scenario selector runs build on.
func (c *CucumberRunner) collect() ([]runnableScenario, error) {
	docs, err := c.source.Discover(c.featureDirectories)
	if err != nil {
		return nil, err
	}

	var units []runnableScenario
	for _, doc := range docs {
		if doc.Feature == nil {
			continue
		}
		var path string
		if doc.Uri != nil {
			path = *doc.Uri
		}
		units = append(units, collectFeature(doc.Feature, path)...)
	}
	return units, nil
}

func collectFeature(feature *messages.Feature, featurePath string) []runnableScenario {
	featureTags := tagNames(feature.Tags)
	var background *messages.Background
	var units []runnableScenario

	for _, child := range feature.Children {
		switch {
		case child.Background != nil:
			background = child.Background
		case child.Rule != nil:
			units = append(units, collectRule(feature.Name, featurePath, child.Rule, featureTags, background)...)
		case child.Scenario != nil:
			units = append(units, runnableScenario{
				featureName: feature.Name,
				featurePath: featurePath,
				scenario:    child.Scenario,
				background:  background,
				tags:        append(append([]string(nil), featureTags...), tagNames(child.Scenario.Tags)...),
			})
		}
	}
	return units
}

func collectRule(featureName, featurePath string, rule *messages.Rule, featureTags []string, featureBackground *messages.Background) []runnableScenario {
	var ruleBackground *messages.Background
	var units []runnableScenario

	for _, child := range rule.Children {
		switch {
		case child.Background != nil:
			ruleBackground = child.Background
		case child.Scenario != nil:
			units = append(units, runnableScenario{
				featureName: featureName,
				featurePath: featurePath,
				ruleName:    rule.Name,
				scenario:    child.Scenario,
				background:  combineBackgrounds(featureBackground, ruleBackground),
				tags:        append(append([]string(nil), featureTags...), tagNames(child.Scenario.Tags)...),
			})
		}
	}
	return units
}

// combineBackgrounds concatenates a feature-level and a rule-level
// background into a single synthetic one, feature steps first.
func combineBackgrounds(feature, rule *messages.Background) *messages.Background {
	if feature == nil {
		return rule
	}
	if rule == nil {
		return feature
	}
	steps := append(append([]*messages.Step(nil), feature.Steps...), rule.Steps...)
	return &messages.Background{Steps: steps}
}

// runUnit expands and executes one runnableScenario, appending every
// resulting ScenarioRecord (one for a plain Scenario, one per Examples row
// for an Outline) to result. hooks fires BeforeScenario/AfterScenario around
// every run and BeforeStep/AfterStep around every step within it.
func (c *CucumberRunner) runUnit(u runnableScenario, result *Result, hooks *stepbdd.HookExecutor) {
	ex := executor.New(c.registry)
	ex.AllowSkipped = hasTag(u.tags, "@allow_skipped") || (c.config != nil && c.config.AllowSkippedByDefault)
	ex.StepHooks = hooks

	record := func(name string, steps *messages.Scenario) *executor.ScenarioRecord {
		scenario := stepbdd.Scenario{Name: name, Tags: u.tags, Keyword: "Scenario"}
		hooks.ExecuteBeforeScenario(scenario)

		rec, err := ex.Run(name, u.background, steps)
		if err != nil {
			rec = &executor.ScenarioRecord{RunID: uuid.NewString(), Name: name, Failed: true}
		}
		rec.FeatureName = u.featureName
		rec.FeaturePath = u.featurePath
		rec.RuleName = u.ruleName
		rec.Tags = u.tags
		if steps.Location != nil {
			rec.Line = int(steps.Location.Line)
		}

		var scenarioErr error
		if rec.Failed {
			scenarioErr = fmt.Errorf("runner: scenario %q failed", name)
		}
		hooks.ExecuteAfterScenario(scenario, scenarioErr)
		if rec.Skipped && !rec.ForcedFailure {
			hooks.ExecuteOnSkipped(scenario, skipReason(rec.Steps))
		}
		return rec
	}

	if len(u.scenario.Examples) == 0 {
		rec := record(u.scenario.Name, u.scenario)
		result.Scenarios = append(result.Scenarios, rec)
		if rec.Failed {
			result.Failed = true
		}
		return
	}

	for _, example := range u.scenario.Examples {
		if len(example.TableHeader) == 0 {
			continue
		}
		for rowIdx, row := range example.TableBody {
			expanded := expandOutlineRow(u.scenario, example.TableHeader, row)
			name := fmt.Sprintf("%s (#%d)", u.scenario.Name, rowIdx+1)
			rec := record(name, expanded)
			result.Scenarios = append(result.Scenarios, rec)
			if rec.Failed {
				result.Failed = true
			}
		}
	}
}

// expandOutlineRow substitutes <placeholder> markers in every step's text
// with the corresponding Examples row value, producing a concrete scenario
// the executor can run as-is.
func expandOutlineRow(scenario *messages.Scenario, header *messages.TableRow, row *messages.TableRow) *messages.Scenario {
	substitutions := make(map[string]string, len(header.Cells))
	for i, cell := range header.Cells {
		if i < len(row.Cells) {
			substitutions[cell.Value] = row.Cells[i].Value
		}
	}

	steps := make([]*messages.Step, len(scenario.Steps))
	for i, step := range scenario.Steps {
		steps[i] = &messages.Step{
			Keyword:   step.Keyword,
			Text:      substitute(step.Text, substitutions),
			DataTable: step.DataTable,
			DocString: step.DocString,
			Location:  step.Location,
		}
	}

	return &messages.Scenario{
		Name:     scenario.Name,
		Tags:     scenario.Tags,
		Steps:    steps,
		Location: scenario.Location,
	}
}

func substitute(text string, substitutions map[string]string) string {
	for name, value := range substitutions {
		text = strings.ReplaceAll(text, "<"+name+">", value)
	}
	return text
}

// skipReason returns the message of the first skipped step in steps, or
// empty if none carried one.
func skipReason(steps []executor.StepResult) string {
	for _, s := range steps {
		if s.Outcome == executor.StepSkipped && s.SkipMessage != nil {
			return *s.SkipMessage
		}
	}
	return ""
}

func tagNames(tags []*messages.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

func hasTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

func parseFile(path string) (*messages.GherkinDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gherkin_parser.ParseGherkinFile(f)
}
