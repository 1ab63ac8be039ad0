// Package pattern compiles the {name[:type]} placeholder mini-language used
// by step definitions into anchored regular expressions, and scores each
// pattern's specificity so the registry can disambiguate overlapping
// matches.
package pattern

import (
	"fmt"
	"regexp"
	"sync"
)

// ErrorKind classifies why a pattern failed to compile.
type ErrorKind int

const (
	// ErrPlaceholder means the placeholder grammar itself was malformed
	// (unbalanced braces, whitespace before a hint, an empty hint, a
	// stray '}').
	ErrPlaceholder ErrorKind = iota
	// ErrRegex means the assembled regular expression was rejected by the
	// regexp engine.
	ErrRegex
)

// Error reports a pattern compilation failure, carrying enough context to
// point at the offending placeholder.
type Error struct {
	Kind     ErrorKind
	Message  string
	Position int
	Name     string // placeholder name, if known; empty otherwise
	Err      error  // wrapped regexp error for ErrRegex
}

func (e *Error) Error() string {
	if e.Kind == ErrRegex {
		return fmt.Sprintf("pattern: invalid regular expression: %v", e.Err)
	}
	if e.Name != "" {
		return fmt.Sprintf("pattern: %s at byte %d (placeholder %q)", e.Message, e.Position, e.Name)
	}
	return fmt.Sprintf("pattern: %s at byte %d", e.Message, e.Position)
}

func (e *Error) Unwrap() error { return e.Err }

func placeholderErr(message string, position int, name string) error {
	return &Error{Kind: ErrPlaceholder, Message: message, Position: position, Name: name}
}

// Specificity is the lexicographically ordered tuple used to pick among
// overlapping step patterns: more literal characters first, then more
// typed placeholders, then fewer untyped (wildcard) placeholders.
type Specificity struct {
	Literal int
	Typed   int
	Untyped int // stored positive; compared as a negative count (fewer wins)
}

// Less reports whether s is strictly less specific than o.
func (s Specificity) Less(o Specificity) bool {
	if s.Literal != o.Literal {
		return s.Literal < o.Literal
	}
	if s.Typed != o.Typed {
		return s.Typed < o.Typed
	}
	// Fewer untyped placeholders is MORE specific, so a larger Untyped
	// count is LESS specific.
	return s.Untyped > o.Untyped
}

// Pattern is an immutable placeholder-bearing template string. Two patterns
// are equal iff their source strings are equal byte-for-byte. Compilation
// (regex + specificity) is lazily computed and memoised.
type Pattern struct {
	Source string

	// CustomTypes, when set before first use, lets a {typename} hint
	// resolve against a user-declared type (e.g. `type Color string` with
	// const values) instead of only the built-in numeric classes. Keyed by
	// lowercase type name.
	CustomTypes map[string]*CustomType

	once        sync.Once
	regex       *regexp.Regexp
	specificity Specificity
	names       []string
	compileErr  error
}

// New wraps a pattern source string. Compilation does not happen until the
// pattern is first used (Regex, Specificity, or Extract).
func New(source string) *Pattern {
	return &Pattern{Source: source}
}

// NewWithTypes wraps a pattern source string with a set of custom types
// available for {typename} hints, in addition to the built-in classes.
func NewWithTypes(source string, customTypes map[string]*CustomType) *Pattern {
	return &Pattern{Source: source, CustomTypes: customTypes}
}

// Equal reports whether two patterns have byte-identical source strings.
func (p *Pattern) Equal(o *Pattern) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Source == o.Source
}

func (p *Pattern) compile() {
	p.once.Do(func() {
		p.regex, p.specificity, p.names, p.compileErr = compile(p.Source, p.CustomTypes)
	})
}

// Regex returns the anchored compiled regular expression for this pattern.
func (p *Pattern) Regex() (*regexp.Regexp, error) {
	p.compile()
	return p.regex, p.compileErr
}

// MustRegex panics if compilation fails; for callers that already
// validated the pattern.
func (p *Pattern) MustRegex() *regexp.Regexp {
	re, err := p.Regex()
	if err != nil {
		panic(err)
	}
	return re
}

// Specificity returns the specificity tuple computed from the source
// pattern.
func (p *Pattern) Specificity() (Specificity, error) {
	p.compile()
	return p.specificity, p.compileErr
}

// Names returns the placeholder names in declaration order, for
// diagnostics. It does not participate in matching or binding: arguments
// are bound to step-function parameters positionally, as spec'd.
func (p *Pattern) Names() ([]string, error) {
	p.compile()
	return p.names, p.compileErr
}

// Extract matches text against the compiled pattern (whole-string, anchored)
// and returns the ordered captured values. A false matched indicates no
// match; a non-nil error indicates the pattern itself failed to compile.
func (p *Pattern) Extract(text string) (captures []string, matched bool, err error) {
	re, err := p.Regex()
	if err != nil {
		return nil, false, err
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil, false, nil
	}
	return m[1:], true, nil
}
