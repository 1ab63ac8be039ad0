// Package registry holds the process-wide table of step definitions: every
// Given/When/Then/And/But pattern registered by generated test code, looked
// up by an executor against the literal text of a Gherkin step.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-stepbdd/stepbdd/pkg/pattern"
)

// Keyword identifies which of the five Gherkin step keywords a definition
// was registered under. And/But never carry their own matching semantics:
// the executor resolves them to the nearest preceding Given/When/Then
// before calling Find.
type Keyword int

const (
	Given Keyword = iota
	When
	Then
	And
	But
)

func (k Keyword) String() string {
	switch k {
	case Given:
		return "Given"
	case When:
		return "When"
	case Then:
		return "Then"
	case And:
		return "And"
	case But:
		return "But"
	default:
		return "Unknown"
	}
}

// Primary reports whether the keyword can anchor a lookup on its own.
func (k Keyword) Primary() bool {
	return k == Given || k == When || k == Then
}

// Step is a single registered step definition: the keyword it was declared
// under, the compiled pattern it matches step text against, and the
// reflect-friendly function value the wrapper will invoke.
type Step struct {
	Keyword Keyword
	Pattern *pattern.Pattern
	Fn      any

	// Source is used for diagnostics and duplicate detection: two
	// registrations under the same keyword with byte-identical pattern
	// source text are a duplicate.
	Source string

	// File and Line locate the call that registered this step, captured at
	// registration time so --dump-steps and duplicate/unused diagnostics can
	// point back at the generated call site rather than just the pattern
	// text.
	File string
	Line int

	mu    sync.Mutex
	used  bool
	calls int
}

// MarkUsed records that this step matched and ran at least once. Exposed so
// the executor can flag it without reaching into unexported fields.
func (s *Step) MarkUsed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = true
	s.calls++
}

// Used reports whether this step has ever matched a scenario step.
func (s *Step) Used() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

// Calls returns how many times this step has matched and run.
func (s *Step) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// DuplicateStepError is panicked by Find the first time a step text matches
// a pattern that was registered more than once under the same keyword with
// identical source text: there is no principled way to choose which
// function should run, so the ambiguity is only discovered, and only
// surfaced, at the moment it would actually matter.
type DuplicateStepError struct {
	Keyword Keyword
	Source  string
	Count   int
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("registry: step %s %q is registered %d times; cannot disambiguate at match time",
		e.Keyword, e.Source, e.Count)
}

// AmbiguousMatchError is returned by Find when two or more distinct
// patterns match the same step text with equal specificity.
type AmbiguousMatchError struct {
	Keyword Keyword
	Text    string
	Sources []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("registry: step text %q matches %d equally specific patterns under %s: %v",
		e.Text, len(e.Sources), e.Keyword, e.Sources)
}

// NotFoundError is returned by Find when no registered pattern under the
// given keyword matches the step text.
type NotFoundError struct {
	Keyword Keyword
	Text    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: no %s step matches %q", e.Keyword, e.Text)
}

// Registry is the process-wide, append-only table of step definitions. It
// is safe for concurrent registration and lookup, which matters once
// scenarios run in parallel goroutines (RuntimeMode Parallel).
type Registry struct {
	mu    sync.RWMutex
	steps map[Keyword][]*Step
	dups  map[string]int // "keyword|source" -> registration count
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		steps: make(map[Keyword][]*Step),
		dups:  make(map[string]int),
	}
}

// Register adds a step definition. It never errors and never panics on a
// duplicate pattern: duplicates are recorded, but only become visible the
// first time a step text actually matches one, via Find. file and line
// locate the call site that registered it (the generated setup function,
// for generated code), used only for diagnostics.
func (r *Registry) Register(keyword Keyword, source string, fn any, customTypes map[string]*pattern.CustomType, file string, line int) *Step {
	r.mu.Lock()
	defer r.mu.Unlock()

	step := &Step{
		Keyword: keyword,
		Pattern: pattern.NewWithTypes(source, customTypes),
		Fn:      fn,
		Source:  source,
		File:    file,
		Line:    line,
	}
	r.steps[keyword] = append(r.steps[keyword], step)
	r.dups[dupKey(keyword, source)]++
	return step
}

func dupKey(keyword Keyword, source string) string {
	return keyword.String() + "|" + source
}

// candidate keywords An/But resolve to, given the nearest preceding primary
// keyword. Find itself only ever searches the resolved primary keyword's
// bucket; callers resolve And/But before calling Find.
func resolvePrimary(k Keyword) Keyword {
	if k.Primary() {
		return k
	}
	return k // And/But resolution to a concrete prior keyword is the executor's job
}

// Find looks up the single best-matching step for keyword and text,
// ranking by specificity. It panics with *DuplicateStepError the first
// time the winning pattern turns out to have been registered more than
// once, and returns *AmbiguousMatchError or *NotFoundError for the other
// failure modes.
func (r *Registry) Find(keyword Keyword, text string) (*Step, []string, error) {
	keyword = resolvePrimary(keyword)

	r.mu.RLock()
	candidates := append([]*Step(nil), r.steps[keyword]...)
	r.mu.RUnlock()

	type scored struct {
		step       *Step
		specificty pattern.Specificity
		captures   []string
	}
	var matches []scored

	for _, step := range candidates {
		captures, matched, err := step.Pattern.Extract(text)
		if err != nil {
			// Patterns are not validated at registration; a malformed
			// pattern is treated as no match here and never raises an
			// error of its own.
			continue
		}
		if !matched {
			continue
		}
		spec, err := step.Pattern.Specificity()
		if err != nil {
			continue
		}
		matches = append(matches, scored{step: step, specificty: spec, captures: captures})
	}

	if len(matches) == 0 {
		return nil, nil, &NotFoundError{Keyword: keyword, Text: text}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[j].specificty.Less(matches[i].specificty)
	})

	best := matches[0]
	if len(matches) > 1 && !matches[1].specificty.Less(best.specificty) {
		sources := make([]string, 0, len(matches))
		for _, m := range matches {
			if !m.specificty.Less(best.specificty) {
				sources = append(sources, m.step.Source)
			}
		}
		return nil, nil, &AmbiguousMatchError{Keyword: keyword, Text: text, Sources: sources}
	}

	r.mu.RLock()
	count := r.dups[dupKey(keyword, best.step.Source)]
	r.mu.RUnlock()
	if count > 1 {
		panic(&DuplicateStepError{Keyword: keyword, Source: best.step.Source, Count: count})
	}

	return best.step, best.captures, nil
}

// DuplicateSteps reports every (keyword, source) pair registered more than
// once, regardless of whether it was ever matched. Used by --dump-steps
// diagnostics, independent of whether the ambiguity was ever exercised.
func (r *Registry) DuplicateSteps() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dups []string
	for key, count := range r.dups {
		if count > 1 {
			dups = append(dups, key)
		}
	}
	sort.Strings(dups)
	return dups
}

// UnusedSteps returns every registered step that has never matched a
// scenario step, across the whole process.
func (r *Registry) UnusedSteps() []*Step {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var unused []*Step
	for _, steps := range r.steps {
		for _, s := range steps {
			if !s.Used() {
				unused = append(unused, s)
			}
		}
	}
	return unused
}

// All returns every registered step across every keyword, for dump-mode
// reporting.
func (r *Registry) All() []*Step {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*Step
	for _, steps := range r.steps {
		all = append(all, steps...)
	}
	return all
}

// StepInfo is a point-in-time, dump-friendly snapshot of one registered
// step: no mutex, no pattern internals, just what --dump-steps needs to
// report.
type StepInfo struct {
	Keyword    string `json:"keyword"`
	Pattern    string `json:"pattern"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Used       bool   `json:"used"`
	Calls      int    `json:"calls"`
	Duplicated bool   `json:"duplicated"`
}

// DumpRegistry snapshots every registered step, sorted by keyword then
// pattern source text for stable dump output across runs.
func (r *Registry) DumpRegistry() []StepInfo {
	all := r.All()

	r.mu.RLock()
	dups := make(map[string]int, len(r.dups))
	for k, v := range r.dups {
		dups[k] = v
	}
	r.mu.RUnlock()

	infos := make([]StepInfo, len(all))
	for i, s := range all {
		infos[i] = StepInfo{
			Keyword:    s.Keyword.String(),
			Pattern:    s.Source,
			File:       s.File,
			Line:       s.Line,
			Used:       s.Used(),
			Calls:      s.Calls(),
			Duplicated: dups[dupKey(s.Keyword, s.Source)] > 1,
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Keyword != infos[j].Keyword {
			return infos[i].Keyword < infos[j].Keyword
		}
		return infos[i].Pattern < infos[j].Pattern
	})

	return infos
}
