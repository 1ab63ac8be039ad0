package generator

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/go-stepbdd/stepbdd/internal/models"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
	"github.com/go-stepbdd/stepbdd/pkg/wrapper"
)

type (
	FunctionLocator struct {
		FullPackageName string
		FunctionName    string

		// IsExported reports whether FunctionName starts with an uppercase
		// letter. A step/config/hooks function in a different package than
		// the generated test file must be exported, or the generated
		// reference to it won't compile.
		IsExported bool
	}

	StepFunctionLocator struct {
		StepName string

		// ParamKinds/ParamNames classify each of the function's parameters
		// in declaration order, determined from its AST at discovery time
		// since Go reflection erases parameter names. wrapper.ParamsFor
		// zips these against the function's reflected parameter types when
		// the generated code builds its wrapper.Spec.
		ParamKinds []wrapper.ParamKind
		ParamNames []string

		*FunctionLocator
	}

	// CustomType represents a user-defined type like `type Color string`
	// with its associated constant values
	CustomType struct {
		Name        string            // Type name, e.g., "Color"
		PackagePath string            // Full package path
		Underlying  string            // Underlying primitive type: "string", "int", "float64", etc.
		Values      map[string]string // Constant name -> value, e.g., {"Red": "red", "Blue": "blue"}
	}

	Output struct {
		// PackageName/CurrentPackagePath are the generated test file's own
		// package clause and import path, detected from the target
		// directory; CurrentPackagePath lets isSamePackage allow
		// unexported step/config/hooks functions that live alongside the
		// generated file.
		PackageName        string
		CurrentPackagePath string

		// TestFuncName is the base identifier generated test functions are
		// derived from, e.g. "TestBilling" produces
		// "TestBilling_0_SomeScenario" for the scenario at index 0.
		TestFuncName string

		FeatureDirectories []string
		TagExpression      string
		Selector           *models.SelectorSpec
		Scenarios          []*models.ScenarioUnit

		ConfigFunctions []*FunctionLocator
		HooksFunctions  []*FunctionLocator
		StepFunctions   []*StepFunctionLocator
		CustomTypes     map[string]*CustomType // lowercase type name -> CustomType
	}
)

// isSamePackage reports whether pkgPath is the package the generated test
// file itself lives in.
func (o *Output) isSamePackage(pkgPath string) bool {
	return o.CurrentPackagePath != "" && pkgPath == o.CurrentPackagePath
}

// ValuesList returns a sorted list of all constant values for this custom type
func (ct *CustomType) ValuesList() []string {
	values := make([]string, 0, len(ct.Values))
	for _, v := range ct.Values {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// NamesAndValues returns a map of lowercase name/value -> actual value
// This is used for case-insensitive matching at runtime
func (ct *CustomType) NamesAndValues() map[string]string {
	result := make(map[string]string)
	for name, value := range ct.Values {
		// Add lowercase constant name -> value
		result[strings.ToLower(name)] = value
		// Add lowercase value -> value (for direct value matching)
		result[strings.ToLower(value)] = value
	}
	return result
}

// RegexPattern returns a regex pattern that matches any of the constant values or names
func (ct *CustomType) RegexPattern() string {
	seen := make(map[string]bool)
	var parts []string

	// Add constant names and values (deduplicated, lowercase for matching)
	for name, value := range ct.Values {
		nameLower := strings.ToLower(name)
		valueLower := strings.ToLower(value)

		if !seen[nameLower] {
			parts = append(parts, regexEscape(nameLower))
			seen[nameLower] = true
		}
		if !seen[valueLower] {
			parts = append(parts, regexEscape(valueLower))
			seen[valueLower] = true
		}
	}

	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// regexEscape escapes special regex characters in a string
func regexEscape(s string) string {
	special := []string{"\\", ".", "+", "*", "?", "(", ")", "[", "]", "{", "}", "^", "$", "|"}
	result := s
	for _, char := range special {
		result = strings.ReplaceAll(result, char, "\\"+char)
	}
	return result
}

const (
	runnerPkg   = "github.com/go-stepbdd/stepbdd/pkg/runner"
	registryPkg = "github.com/go-stepbdd/stepbdd/pkg/registry"
	wrapperPkg  = "github.com/go-stepbdd/stepbdd/pkg/wrapper"
	stepbddPkg  = "github.com/go-stepbdd/stepbdd/pkg/stepbdd"
	testingPkg  = "testing"
)

// Generate writes one Go source file containing one TestXxx function per
// selected Scenario (one t.Run subtest per Examples row when it is a
// Scenario Outline), plus a shared unexported helper that builds the
// CucumberRunner every generated test calls into.
func (o *Output) Generate(writer io.Writer) error {
	units, err := o.selectScenarios()
	if err != nil {
		return err
	}

	file := jen.NewFile(o.PackageName)

	file.Func().Id(o.setupFuncName()).Params(jen.Id("t").Op("*").Qual(testingPkg, "T")).Op("*").Qual(runnerPkg, "CucumberRunner").Block(
		o.setupFuncBody()...,
	)
	file.Line()

	for _, u := range units {
		file.Func().Id(o.testFuncName(u)).Params(jen.Id("t").Op("*").Qual(testingPkg, "T")).Block(
			scenarioTestBody(o.setupFuncName(), u)...,
		)
		file.Line()
	}

	_, err = writer.Write([]byte(file.GoString()))
	return err
}

// selectScenarios narrows o.Scenarios to what this generated file should
// actually produce a test for: a Selector picks exactly one; otherwise the
// tag expression (an empty one matches everything) filters the batch.
func (o *Output) selectScenarios() ([]*models.ScenarioUnit, error) {
	if o.Selector != nil {
		unit, err := o.Selector.Resolve(o.Scenarios)
		if err != nil {
			return nil, err
		}
		return []*models.ScenarioUnit{unit}, nil
	}

	if strings.TrimSpace(o.TagExpression) == "" {
		return o.Scenarios, nil
	}

	expr, err := tagexpressions.Parse(o.TagExpression)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid tag expression %q: %w", o.TagExpression, err)
	}

	var filtered []*models.ScenarioUnit
	for _, u := range o.Scenarios {
		if expr.Evaluate(u.Tags) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func (o *Output) setupFuncName() string {
	return "new" + strings.TrimPrefix(o.TestFuncName, "Test") + "Runner"
}

func (o *Output) testFuncName(u *models.ScenarioUnit) string {
	return fmt.Sprintf("%s_%d_%s", o.TestFuncName, u.Index, sanitizeIdent(u.Name))
}

var identDisallowed = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// sanitizeIdent turns a scenario title into a valid Go identifier fragment.
func sanitizeIdent(name string) string {
	cleaned := identDisallowed.ReplaceAllString(strings.TrimSpace(name), "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		cleaned = "Scenario"
	}
	if cleaned[0] >= '0' && cleaned[0] <= '9' {
		cleaned = "_" + cleaned
	}
	return cleaned
}

// setupFuncBody builds the statements of the shared runner-construction
// helper: feature directories, custom types, then config, hooks and step
// registration, in that order since custom types must be known before a
// step pattern referencing one is compiled.
func (o *Output) setupFuncBody() []jen.Code {
	var stmts []jen.Code

	call := jen.Id("r").Op(":=").Qual(runnerPkg, "NewCucumberRunner").Call()
	if len(o.FeatureDirectories) > 0 {
		dirArgs := make([]jen.Code, len(o.FeatureDirectories))
		for i, d := range o.FeatureDirectories {
			dirArgs[i] = jen.Lit(d)
		}
		call = call.Dot("WithFeaturesDirectories").Call(dirArgs...)
	}
	stmts = append(stmts, call)

	for _, ct := range o.CustomTypes {
		valuesMap := jen.Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
			for k, v := range ct.NamesAndValues() {
				d[jen.Lit(k)] = jen.Lit(v)
			}
		}))
		stmts = append(stmts, jen.Id("r").Op("=").Id("r").Dot("RegisterCustomType").Call(
			jen.Lit(ct.Name), jen.Lit(ct.Underlying), valuesMap,
		))
	}

	if len(o.ConfigFunctions) > 0 {
		fnArgs := make([]jen.Code, len(o.ConfigFunctions))
		for i, cf := range o.ConfigFunctions {
			fnArgs[i] = jen.Qual(cf.FullPackageName, cf.FunctionName)
		}
		stmts = append(stmts, jen.Id("r").Op("=").Id("r").Dot("WithConfigFuncs").Call(fnArgs...))
	}

	for _, hf := range o.HooksFunctions {
		stmts = append(stmts, jen.Id("r").Op("=").Id("r").Dot("WithHooksFunc").Call(jen.Qual(hf.FullPackageName, hf.FunctionName)))
	}

	for _, sf := range o.StepFunctions {
		for _, kw := range []string{"Given", "When", "Then"} {
			stmts = append(stmts, jen.Id("r").Op("=").Id("r").Dot("RegisterStep").Call(
				jen.Qual(registryPkg, kw),
				jen.Lit(sf.StepName),
				jen.Op("&").Qual(wrapperPkg, "Spec").Values(jen.Dict{
					jen.Id("Fn"): jen.Qual(sf.FullPackageName, sf.FunctionName),
					jen.Id("Params"): jen.Qual(wrapperPkg, "ParamsFor").Call(
						jen.Qual(sf.FullPackageName, sf.FunctionName),
						paramKindSlice(sf.ParamKinds),
						paramNameSlice(sf.ParamNames),
					),
				}),
			))
		}
	}

	stmts = append(stmts, jen.Return(jen.Id("r")))
	return stmts
}

func paramKindSlice(kinds []wrapper.ParamKind) jen.Code {
	elems := make([]jen.Code, len(kinds))
	for i, k := range kinds {
		elems[i] = jen.Qual(wrapperPkg, paramKindName(k))
	}
	return jen.Index().Qual(wrapperPkg, "ParamKind").Values(elems...)
}

func paramNameSlice(names []string) jen.Code {
	elems := make([]jen.Code, len(names))
	for i, n := range names {
		elems[i] = jen.Lit(n)
	}
	return jen.Index().String().Values(elems...)
}

func paramKindName(k wrapper.ParamKind) string {
	switch k {
	case wrapper.ParamFixture:
		return "ParamFixture"
	case wrapper.ParamAggregate:
		return "ParamAggregate"
	case wrapper.ParamTable:
		return "ParamTable"
	case wrapper.ParamDocString:
		return "ParamDocString"
	case wrapper.ParamContext:
		return "ParamContext"
	default:
		return "ParamCapture"
	}
}

// scenarioTestBody builds one TestXxx function's statements: resolve the
// runner, run exactly this scenario's index, and report every resulting
// ScenarioRecord as a subtest (one row per Examples row for an Outline,
// a single one otherwise).
func scenarioTestBody(setupFuncName string, u *models.ScenarioUnit) []jen.Code {
	return []jen.Code{
		jen.Id("r").Op(":=").Id(setupFuncName).Call(jen.Id("t")),
		jen.If(jen.List(jen.Id("cfg")).Op(":=").Id("r").Dot("Config").Call(), jen.Id("cfg").Op("!=").Nil().Op("&&").Id("cfg").Dot("RuntimeMode").Op("==").Qual(stepbddPkg, "Parallel")).Block(
			jen.Id("t").Dot("Parallel").Call(),
		),
		jen.List(jen.Id("result"), jen.Id("err")).Op(":=").Id("r").Dot("RunAt").Call(jen.Lit(u.Index)),
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Id("t").Dot("Fatal").Call(jen.Id("err")),
		),
		jen.For(jen.List(jen.Id("_"), jen.Id("rec")).Op(":=").Range().Id("result").Dot("Scenarios")).Block(
			jen.Id("rec").Op(":=").Id("rec"),
			jen.Id("t").Dot("Run").Call(jen.Id("rec").Dot("Name"), jen.Func().Params(jen.Id("t").Op("*").Qual(testingPkg, "T")).Block(
				jen.If(jen.Id("rec").Dot("Failed")).Block(
					jen.Id("t").Dot("Errorf").Call(jen.Lit("scenario %q failed"), jen.Id("rec").Dot("Name")),
				),
			)),
		),
	}
}
