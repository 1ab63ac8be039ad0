package pattern

import (
	"regexp"
	"sort"
	"strings"
)

// CustomType describes a user-declared type (e.g. `type Color string` with a
// handful of const values) that a {typename} placeholder hint can resolve
// against, in addition to the built-in numeric type classes.
type CustomType struct {
	Name       string            // Type name, e.g. "Color"
	Underlying string            // Underlying primitive: "string", "int", "float64", ...
	Values     map[string]string // const name -> value, e.g. {"Red": "red", "Blue": "blue"}
}

// NamesAndValues returns a lowercase name/value -> actual value map, used for
// case-insensitive argument resolution at invocation time.
func (ct *CustomType) NamesAndValues() map[string]string {
	result := make(map[string]string, len(ct.Values)*2)
	for name, value := range ct.Values {
		result[strings.ToLower(name)] = value
		result[strings.ToLower(value)] = value
	}
	return result
}

// regexPattern returns an alternation matching any constant name or value for
// this type, deduplicated and sorted for a deterministic compiled regex.
func (ct *CustomType) regexPattern() string {
	seen := make(map[string]bool, len(ct.Values)*2)
	var parts []string

	for name, value := range ct.Values {
		nameLower := strings.ToLower(name)
		valueLower := strings.ToLower(value)

		if !seen[nameLower] {
			parts = append(parts, regexp.QuoteMeta(nameLower))
			seen[nameLower] = true
		}
		if !seen[valueLower] {
			parts = append(parts, regexp.QuoteMeta(valueLower))
			seen[valueLower] = true
		}
	}

	sort.Strings(parts)
	return strings.Join(parts, "|")
}
