package models

import (
	"fmt"
)

// ExampleTable is one Examples block of a Scenario Outline: the placeholder
// header row and the concrete substitution rows beneath it.
type ExampleTable struct {
	Headers []string
	Rows    [][]string
}

// ScenarioUnit is one Scenario or Scenario Outline discovered while walking
// a feature directory for code generation, carrying everything the
// generator needs to emit a TestXxx function without re-parsing the
// feature file.
type ScenarioUnit struct {
	FeaturePath string
	FeatureName string
	RuleName    string
	Name        string

	// Index is this scenario's position in the depth-first discovery order
	// across every feature file the generator walked, the same order
	// pkg/runner's CucumberRunner.RunAt indexes into.
	Index int

	Tags      []string
	IsOutline bool
	Examples  []ExampleTable
}

// ScenarioCount returns the number of TestXxx-visible units this scenario
// expands to: 1 for a plain Scenario, one per Examples row for an Outline.
func (s *ScenarioUnit) ScenarioCount() int {
	if !s.IsOutline {
		return 1
	}
	n := 0
	for _, ex := range s.Examples {
		n += len(ex.Rows)
	}
	return n
}

// HasTag reports whether name is present among s.Tags.
func (s *ScenarioUnit) HasTag(name string) bool {
	for _, t := range s.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// SelectorSpec names a single ScenarioUnit to generate, by Index or by Name,
// never both. A nil *SelectorSpec selects nothing, i.e. every discovered
// scenario is generated; a zero-value SelectorSpec fails to resolve.
//
// Index is clamped against the discovered scenario count at generation
// time: out of range is a generation-time error, the Go-codegen analogue of
// the source macro's compile error. Name is matched case-sensitively; a
// name shared by more than one scenario in the same generation run requires
// Index instead, and is reported as a disambiguation error rather than
// silently picking the first match.
type SelectorSpec struct {
	HasIndex bool
	Index    int
	HasName  bool
	Name     string
}

// Resolve picks the single ScenarioUnit s identifies out of units, which
// must be in the same depth-first discovery order ScenarioUnit.Index was
// assigned in.
func (s SelectorSpec) Resolve(units []*ScenarioUnit) (*ScenarioUnit, error) {
	if s.HasIndex {
		for _, u := range units {
			if u.Index == s.Index {
				return u, nil
			}
		}
		return nil, &SelectorError{Kind: SelectorOutOfRange, Index: s.Index, Count: len(units)}
	}

	if s.HasName {
		var matches []*ScenarioUnit
		names := make([]string, 0, len(units))
		for _, u := range units {
			names = append(names, u.Name)
			if u.Name == s.Name {
				matches = append(matches, u)
			}
		}
		switch len(matches) {
		case 0:
			return nil, &SelectorError{Kind: SelectorNameNotFound, Name: s.Name, Available: names}
		case 1:
			return matches[0], nil
		default:
			return nil, &SelectorError{Kind: SelectorNameAmbiguous, Name: s.Name, Count: len(matches)}
		}
	}

	return nil, &SelectorError{Kind: SelectorMissing}
}

// SelectorErrorKind classifies why SelectorSpec.Resolve failed.
type SelectorErrorKind int

const (
	SelectorMissing SelectorErrorKind = iota
	SelectorOutOfRange
	SelectorNameNotFound
	SelectorNameAmbiguous
)

// SelectorError is returned by SelectorSpec.Resolve.
type SelectorError struct {
	Kind      SelectorErrorKind
	Index     int
	Count     int
	Name      string
	Available []string
}

func (e *SelectorError) Error() string {
	switch e.Kind {
	case SelectorOutOfRange:
		return fmt.Sprintf("generator: scenario index %d out of range (found %d scenario(s))", e.Index, e.Count)
	case SelectorNameNotFound:
		return fmt.Sprintf("generator: no scenario named %q (available: %v)", e.Name, e.Available)
	case SelectorNameAmbiguous:
		return fmt.Sprintf("generator: %d scenarios are named %q; disambiguate with an index selector", e.Count, e.Name)
	default:
		return "generator: no selector given and no scenario generated"
	}
}
