package pattern

import (
	"regexp"
	"strings"
)

// typeClasses is the bit-exact type-class table from the specification.
// Numeric hints get a dedicated character class; any other identifier
// (including no hint at all) falls back to the default non-greedy any-char
// class.
var typeClasses = map[string]string{
	"u8": `\d+`, "u16": `\d+`, "u32": `\d+`, "u64": `\d+`, "u128": `\d+`, "usize": `\d+`,
	"i8": `[+-]?\d+`, "i16": `[+-]?\d+`, "i32": `[+-]?\d+`, "i64": `[+-]?\d+`, "i128": `[+-]?\d+`, "isize": `[+-]?\d+`,
	"f32": `(?i:(?:[+-]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][+-]?\d+)?|nan|inf|infinity))`,
	"f64": `(?i:(?:[+-]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][+-]?\d+)?|nan|inf|infinity))`,
}

const defaultClass = `.+?`

func classFor(hint string, customTypes map[string]*CustomType) (class string, typed bool) {
	if hint == "" {
		return defaultClass, false
	}
	if c, ok := typeClasses[hint]; ok {
		return c, true
	}
	if customTypes != nil {
		if ct, ok := customTypes[strings.ToLower(hint)]; ok {
			return "(?i:" + ct.regexPattern() + ")", true
		}
	}
	return defaultClass, false
}

// compile performs the single-pass scan described in spec section 4.1: an
// anchored regex is assembled byte-by-byte, placeholders become capture
// groups, {{ }} \{ \} become literal braces, and a stray '{' that doesn't
// open a well-formed placeholder is treated as the start of a literal brace
// region that runs to the next '}' (placeholders do not nest inside it).
func compile(source string, customTypes map[string]*CustomType) (*regexp.Regexp, Specificity, []string, error) {
	b := []byte(source)
	var out strings.Builder
	out.WriteByte('^')

	var spec Specificity
	var names []string

	i := 0
	n := len(b)
	for i < n {
		c := b[i]

		switch {
		case c == '\\' && i+1 < n && (b[i+1] == '{' || b[i+1] == '}'):
			out.WriteString(regexp.QuoteMeta(string(b[i+1])))
			spec.Literal++
			i += 2

		case c == '{' && i+1 < n && b[i+1] == '{':
			out.WriteString(`\{`)
			spec.Literal++
			i += 2

		case c == '}' && i+1 < n && b[i+1] == '}':
			out.WriteString(`\}`)
			spec.Literal++
			i += 2

		case c == '{':
			next, name, hint, ok, err := tryParsePlaceholder(b, i)
			if err != nil {
				return nil, Specificity{}, nil, err
			}
			if !ok {
				// Stray '{': literal brace region until the next '}'.
				literalEnd := strings.IndexByte(string(b[i+1:]), '}')
				if literalEnd == -1 {
					// No closing brace at all: the rest is literal.
					for _, ch := range b[i:] {
						out.WriteString(regexp.QuoteMeta(string(ch)))
						spec.Literal++
					}
					i = n
					continue
				}
				region := b[i : i+1+literalEnd+1] // include the closing '}'
				for _, ch := range region {
					out.WriteString(regexp.QuoteMeta(string(ch)))
					spec.Literal++
				}
				i += len(region)
				continue
			}

			class, typed := classFor(hint, customTypes)
			out.WriteByte('(')
			out.WriteString(class)
			out.WriteByte(')')
			names = append(names, name)
			if typed {
				spec.Typed++
			} else {
				spec.Untyped++
			}
			i = next

		case c == '}':
			return nil, Specificity{}, nil, placeholderErr("unmatched '}' outside a placeholder", i, "")

		default:
			out.WriteString(regexp.QuoteMeta(string(c)))
			spec.Literal++
			i++
		}
	}

	out.WriteByte('$')

	re, err := regexp.Compile(out.String())
	if err != nil {
		return nil, Specificity{}, nil, &Error{Kind: ErrRegex, Err: err}
	}
	return re, spec, names, nil
}

// tryParsePlaceholder attempts to parse a well-formed placeholder starting
// at b[start] == '{'. ok is false (with no error) when the brace does not
// open a well-formed placeholder and should be treated as a stray literal
// brace instead.
func tryParsePlaceholder(b []byte, start int) (next int, name string, hint string, ok bool, err error) {
	i := start + 1
	nameStart := i
	for i < len(b) && (isAlphaNumUnderscore(b[i])) {
		i++
	}
	name = string(b[nameStart:i])

	if name == "" || !isNameStart(b[nameStart]) {
		return 0, "", "", false, nil
	}

	// Forbidden whitespace between name and ':'.
	wsStart := i
	for i < len(b) && isASCIISpace(b[i]) {
		i++
	}
	if i > wsStart {
		// Whitespace was skipped; only acceptable if followed by '}' with
		// no hint -- but spec explicitly forbids whitespace before ':' and
		// treats trailing whitespace before '}' as malformed too, since a
		// well-formed placeholder has no internal whitespace at all.
		if i < len(b) && (b[i] == ':' || b[i] == '}') {
			return 0, "", "", false, placeholderErr("invalid placeholder in step pattern", start, name)
		}
		// Whitespace not followed by ':' or '}': not a placeholder at all.
		return 0, "", "", false, nil
	}

	if i < len(b) && b[i] == ':' {
		i++
		hintStart := i
		for i < len(b) && b[i] != '}' && b[i] != '{' {
			i++
		}
		if i >= len(b) {
			return 0, "", "", false, placeholderErr("missing closing '}' for placeholder", start, name)
		}
		if b[i] == '{' {
			return 0, "", "", false, placeholderErr("invalid placeholder in step pattern", start, name)
		}
		hint = string(b[hintStart:i])
		if hint == "" {
			return 0, "", "", false, placeholderErr("empty type hint in step pattern", start, name)
		}
		// consume closing '}'
		i++
		return i, name, hint, true, nil
	}

	if i < len(b) && b[i] == '}' {
		return i + 1, name, "", true, nil
	}

	// Neither ':' nor '}' follows the name: not a well-formed placeholder.
	return 0, "", "", false, nil
}

func isAlphaNumUnderscore(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
