// Package wrapper implements the step-function invocation pipeline: given a
// step's registered parameter shape, the capture strings a pattern match
// produced, and the fixtures available in the current scenario, it builds a
// reflect.Value call, invokes the step function, and classifies whatever it
// returns (or panics with).
package wrapper

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// ParamKind classifies what a step function parameter is bound from.
type ParamKind int

const (
	// ParamCapture binds to the next unconsumed pattern capture, converted
	// to the parameter's type.
	ParamCapture ParamKind = iota
	// ParamFixture binds to a named value previously inserted into the
	// scenario's Data store.
	ParamFixture
	// ParamAggregate binds every remaining, not-yet-consumed capture as a
	// single []string parameter; at most one per step function, and it
	// must come after any individually bound captures.
	ParamAggregate
	// ParamTable binds the step's attached data table, if any. At most one
	// per step function, and it must precede a ParamDocString parameter.
	ParamTable
	// ParamDocString binds the step's attached doc string, if any. At most
	// one per step function, and it must be the last non-context
	// parameter.
	ParamDocString
	// ParamContext binds *stepbdd.Context, the step's execution context
	// (logger, assertions, data store, reporter), satisfied directly from
	// the scenario rather than from captures or fixtures.
	ParamContext
)

// Param describes one parameter of a registered step function.
type Param struct {
	Kind ParamKind
	Name string // fixture name, for ParamFixture; custom type name, otherwise empty
	Type reflect.Type

	// AllowedValues, when non-nil, restricts a ParamCapture argument to a
	// custom type's declared constant names/values (case-insensitive).
	AllowedValues map[string]string
}

// Spec is the generator-produced description of a step function's
// parameter shape, built once when the step is registered and reused on
// every invocation.
type Spec struct {
	Fn     any
	Params []Param
}

// ParamsFor builds a Param slice for fn from kinds/names determined at
// generation time (Go reflection erases parameter names, so the generator
// classifies each parameter by its AST type before this is called). A
// parameter beyond the end of kinds/names defaults to ParamCapture with no
// name, matching a plain positional pattern capture.
func ParamsFor(fn any, kinds []ParamKind, names []string) []Param {
	fnType := reflect.TypeOf(fn)
	params := make([]Param, fnType.NumIn())
	for i := range params {
		kind := ParamCapture
		if i < len(kinds) {
			kind = kinds[i]
		}
		var name string
		if i < len(names) {
			name = names[i]
		}
		params[i] = Param{Kind: kind, Name: name, Type: fnType.In(i)}
	}
	return params
}

// OutcomeKind classifies what a step invocation produced.
type OutcomeKind int

const (
	// Unit means the step function returned nothing (or only a nil error).
	Unit OutcomeKind = iota
	// Value means the step function returned a single non-error value,
	// which has been pushed onto the scenario's returned-value list.
	Value
	// Skipped means the step function raised a SkipRequest.
	Skipped
)

// Outcome reports the result of a successful (non-panicking, non-erroring)
// step invocation.
type Outcome struct {
	Kind   OutcomeKind
	Value  any
	Reason string // set when Kind == Skipped
}

// HandlerPanicError wraps a non-SkipRequest panic recovered from a step
// function body.
type HandlerPanicError struct {
	Recovered any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("wrapper: step function panicked: %v", e.Recovered)
}

// normalizeFixtureName lowercases and collapses whitespace/hyphens to
// underscores, so `Current User`, `current-user`, and `current_user` all
// address the same fixture.
func normalizeFixtureName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

// Invoke runs spec.Fn against the given scenario context, pattern captures,
// optional data table, and optional doc string, following the binding
// pipeline: fixtures by name, then captures positionally, then an optional
// aggregate capture, then the table, then the doc string.
func Invoke(spec *Spec, ctx *stepbdd.Context, captures []string, table *stepbdd.Table, docString *string) (outcome Outcome, err error) {
	if err := validateShape(spec.Params); err != nil {
		return Outcome{}, err
	}

	fnValue := reflect.ValueOf(spec.Fn)
	fnType := fnValue.Type()

	callArgs, err := bindArgs(spec.Params, fnType, ctx, captures, table, docString)
	if err != nil {
		return Outcome{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			if sr, ok := r.(SkipRequest); ok {
				outcome = Outcome{Kind: Skipped, Reason: sr.Reason}
				err = nil
				return
			}
			err = &HandlerPanicError{Recovered: r}
		}
	}()

	results := fnValue.Call(callArgs)
	return classifyResults(fnType, results)
}

// validateShape enforces the structural constraints on a step function's
// parameter list: at most one aggregate, at most one table, at most one
// doc string, and the table (if present) must precede the doc string.
func validateShape(params []Param) error {
	var sawAggregate, sawTable, sawDocString bool
	tableIndex, docIndex := -1, -1

	for i, p := range params {
		switch p.Kind {
		case ParamAggregate:
			if sawAggregate {
				return fmt.Errorf("wrapper: step function declares more than one aggregate argument parameter")
			}
			sawAggregate = true
		case ParamTable:
			if sawTable {
				return fmt.Errorf("wrapper: step function declares more than one data table parameter")
			}
			sawTable = true
			tableIndex = i
		case ParamDocString:
			if sawDocString {
				return fmt.Errorf("wrapper: step function declares more than one doc string parameter")
			}
			sawDocString = true
			docIndex = i
		}
	}

	if tableIndex != -1 && docIndex != -1 && tableIndex > docIndex {
		return fmt.Errorf("wrapper: a data table parameter must precede a doc string parameter")
	}
	return nil
}

func bindArgs(params []Param, fnType reflect.Type, ctx *stepbdd.Context, captures []string, table *stepbdd.Table, docString *string) ([]reflect.Value, error) {
	args := make([]reflect.Value, 0, len(params))
	captureIdx := 0

	for i, p := range params {
		paramType := fnType.In(i)

		switch p.Kind {
		case ParamContext:
			args = append(args, reflect.ValueOf(ctx))

		case ParamFixture:
			raw, ok := ctx.Data().Get(normalizeFixtureName(p.Name))
			if !ok {
				return nil, stepbdd.NewMissingFixtureError(p.Name, ctx.Data().Names())
			}
			rv := reflect.ValueOf(raw)
			if !rv.IsValid() || !rv.Type().AssignableTo(paramType) {
				return nil, fmt.Errorf("wrapper: fixture %q has type %T, want %s", p.Name, raw, paramType)
			}
			args = append(args, rv)

		case ParamCapture:
			if captureIdx >= len(captures) {
				return nil, fmt.Errorf("wrapper: not enough pattern captures: expected at least %d, have %d", captureIdx+1, len(captures))
			}
			arg := captures[captureIdx]
			captureIdx++

			converted, err := convertCapture(arg, paramType, p.AllowedValues)
			if err != nil {
				return nil, fmt.Errorf("wrapper: argument %q: %w", arg, err)
			}
			args = append(args, converted)

		case ParamAggregate:
			remaining := append([]string(nil), captures[captureIdx:]...)
			captureIdx = len(captures)
			args = append(args, reflect.ValueOf(remaining))

		case ParamTable:
			if table == nil {
				return nil, fmt.Errorf("wrapper: step function expects a data table but none was provided")
			}
			if paramType.Kind() == reflect.Ptr {
				args = append(args, reflect.ValueOf(table))
			} else {
				args = append(args, reflect.ValueOf(*table))
			}

		case ParamDocString:
			if docString == nil {
				return nil, fmt.Errorf("wrapper: step function expects a doc string but none was provided")
			}
			if paramType.Kind() == reflect.Ptr {
				args = append(args, reflect.ValueOf(docString))
			} else {
				args = append(args, reflect.ValueOf(*docString))
			}
		}
	}

	if captureIdx < len(captures) {
		return nil, fmt.Errorf("wrapper: %d pattern capture(s) were not consumed by any parameter", len(captures)-captureIdx)
	}

	return args, nil
}

func convertCapture(arg string, targetType reflect.Type, allowedValues map[string]string) (reflect.Value, error) {
	if allowedValues != nil {
		return convertCustomType(arg, targetType, allowedValues)
	}
	return convertPrimitive(arg, targetType)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func classifyResults(fnType reflect.Type, results []reflect.Value) (Outcome, error) {
	var retErr error
	var value any
	haveValue := false

	for i, result := range results {
		outType := fnType.Out(i)
		if outType.Implements(errorType) {
			if !result.IsNil() {
				retErr = result.Interface().(error)
			}
			continue
		}
		haveValue = true
		value = result.Interface()
	}

	if retErr != nil {
		return Outcome{}, retErr
	}
	if haveValue {
		return Outcome{Kind: Value, Value: value}, nil
	}
	return Outcome{Kind: Unit}, nil
}
