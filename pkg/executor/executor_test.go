package executor

import (
	"errors"
	"reflect"
	"testing"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/go-stepbdd/stepbdd/pkg/registry"
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
	"github.com/go-stepbdd/stepbdd/pkg/wrapper"
)

func registerUnit(reg *registry.Registry, keyword registry.Keyword, pattern string, fn any) {
	reg.Register(keyword, pattern, &wrapper.Spec{Fn: fn, Params: captureParams(fn)}, nil, "executor_test.go", 1)
}

// captureParams builds a Param list that binds every input of fn as a
// positional pattern capture, for tests whose step functions take only
// untyped placeholders.
func captureParams(fn any) []wrapper.Param {
	t := reflect.TypeOf(fn)
	params := make([]wrapper.Param, t.NumIn())
	for i := range params {
		params[i] = wrapper.Param{Kind: wrapper.ParamCapture, Type: t.In(i)}
	}
	return params
}

func TestExecutor_Run_AllStepsPass(t *testing.T) {
	reg := registry.New()
	var ran []string
	registerUnit(reg, registry.Given, "a user named {name}", func(name string) { ran = append(ran, "given:"+name) })
	registerUnit(reg, registry.When, "they log in", func() { ran = append(ran, "when") })
	registerUnit(reg, registry.Then, "they see the dashboard", func() { ran = append(ran, "then") })

	scenario := &messages.Scenario{
		Name: "login",
		Steps: []*messages.Step{
			{Keyword: "Given", Text: "a user named Alice"},
			{Keyword: "When", Text: "they log in"},
			{Keyword: "Then", Text: "they see the dashboard"},
		},
	}

	ex := New(reg)
	rec, err := ex.Run("login", nil, scenario)
	require.NoError(t, err)
	require.False(t, rec.Failed)
	require.Len(t, rec.Steps, 3)
	require.Equal(t, []string{"given:Alice", "when", "then"}, ran)
}

func TestExecutor_Run_AndResolvesToPriorPrimary(t *testing.T) {
	reg := registry.New()
	var ran []string
	registerUnit(reg, registry.Given, "a user exists", func() { ran = append(ran, "given") })
	registerUnit(reg, registry.Given, "the user is an admin", func() { ran = append(ran, "and") })

	scenario := &messages.Scenario{
		Steps: []*messages.Step{
			{Keyword: "Given", Text: "a user exists"},
			{Keyword: "And", Text: "the user is an admin"},
		},
	}

	ex := New(reg)
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.False(t, rec.Failed)
	require.Equal(t, []string{"given", "and"}, ran)
}

func TestExecutor_Run_AndWithoutPrimaryErrors(t *testing.T) {
	reg := registry.New()
	scenario := &messages.Scenario{
		Steps: []*messages.Step{
			{Keyword: "And", Text: "something happens"},
		},
	}

	ex := New(reg)
	_, err := ex.Run("s", nil, scenario)
	require.Error(t, err)
	var target *stepbdd.StepError
	require.ErrorAs(t, err, &target)
	require.Equal(t, stepbdd.AndButWithoutPrimary, target.Kind)
}

func TestExecutor_Run_FailedStepBypassesRest(t *testing.T) {
	reg := registry.New()
	var ran []string
	registerUnit(reg, registry.Given, "step one", func() { ran = append(ran, "one") })
	registerUnit(reg, registry.When, "step two fails", func() error { return errors.New("boom") })
	registerUnit(reg, registry.Then, "step three", func() { ran = append(ran, "three") })

	scenario := &messages.Scenario{
		Steps: []*messages.Step{
			{Keyword: "Given", Text: "step one"},
			{Keyword: "When", Text: "step two fails"},
			{Keyword: "Then", Text: "step three"},
		},
	}

	ex := New(reg)
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.True(t, rec.Failed)
	require.Equal(t, []string{"one"}, ran)
	require.Equal(t, StepFailed, rec.Steps[1].Outcome)
	require.Equal(t, StepBypassed, rec.Steps[2].Outcome)
	require.Len(t, rec.Bypassed, 1)
}

func TestExecutor_Run_SkippedFailsByDefault(t *testing.T) {
	reg := registry.New()
	registerUnit(reg, registry.Given, "a skipped step", func() { wrapper.Skip("not relevant") })

	scenario := &messages.Scenario{
		Steps: []*messages.Step{{Keyword: "Given", Text: "a skipped step"}},
	}

	ex := New(reg)
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.True(t, rec.Failed)
	require.Equal(t, StepSkipped, rec.Steps[0].Outcome)
}

func TestExecutor_Run_SkippedAllowedWithOverride(t *testing.T) {
	reg := registry.New()
	registerUnit(reg, registry.Given, "a skipped step", func() { wrapper.Skip("not relevant") })

	scenario := &messages.Scenario{
		Steps: []*messages.Step{{Keyword: "Given", Text: "a skipped step"}},
	}

	ex := New(reg)
	ex.AllowSkipped = true
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.False(t, rec.Failed)
}

func TestExecutor_Run_StepNotFound(t *testing.T) {
	reg := registry.New()
	scenario := &messages.Scenario{
		Steps: []*messages.Step{{Keyword: "Given", Text: "nothing registered"}},
	}

	ex := New(reg)
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.True(t, rec.Failed)
	require.Equal(t, StepFailed, rec.Steps[0].Outcome)
}

func TestExecutor_Run_BackgroundRunsBeforeScenario(t *testing.T) {
	reg := registry.New()
	var ran []string
	registerUnit(reg, registry.Given, "the system is ready", func() { ran = append(ran, "bg") })
	registerUnit(reg, registry.When, "a scenario step runs", func() { ran = append(ran, "scenario") })

	background := &messages.Background{
		Steps: []*messages.Step{{Keyword: "Given", Text: "the system is ready"}},
	}
	scenario := &messages.Scenario{
		Steps: []*messages.Step{{Keyword: "When", Text: "a scenario step runs"}},
	}

	ex := New(reg)
	rec, err := ex.Run("s", background, scenario)
	require.NoError(t, err)
	require.False(t, rec.Failed)
	require.Equal(t, []string{"bg", "scenario"}, ran)
}

func TestExecutor_Run_TypedCaptureFeedsStep(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.Given, "a counter starts at {n:u32}", &wrapper.Spec{
		Fn: func(n int) {},
		Params: []wrapper.Param{
			{Kind: wrapper.ParamCapture, Type: reflect.TypeOf(0)},
		},
	}, nil, "executor_test.go", 1)
	registerUnit(reg, registry.Then, "the counter is remembered", func() {})

	scenario := &messages.Scenario{
		Steps: []*messages.Step{
			{Keyword: "Given", Text: "a counter starts at 5"},
			{Keyword: "Then", Text: "the counter is remembered"},
		},
	}

	ex := New(reg)
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.False(t, rec.Failed)
}

func TestExecutor_Run_StepNotFoundClassifiedAsStepError(t *testing.T) {
	reg := registry.New()
	scenario := &messages.Scenario{
		Steps: []*messages.Step{{Keyword: "Given", Text: "nobody defined this"}},
	}

	ex := New(reg)
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.True(t, rec.Failed)

	var target *stepbdd.StepError
	require.ErrorAs(t, rec.Steps[0].Err, &target)
	require.Equal(t, stepbdd.StepNotFound, target.Kind)
}

func TestExecutor_Run_DuplicateStepPanicIsRecoveredAsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := NewMockStepFinder(ctrl)
	finder.EXPECT().Find(registry.Given, "a counter starts at 5").
		DoAndReturn(func(registry.Keyword, string) (*registry.Step, []string, error) {
			panic(&registry.DuplicateStepError{Keyword: registry.Given, Source: "a counter starts at {n}", Count: 2})
		})

	scenario := &messages.Scenario{
		Steps: []*messages.Step{{Keyword: "Given", Text: "a counter starts at 5"}},
	}

	ex := &Executor{Registry: finder}
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.True(t, rec.Failed)
	require.Equal(t, StepFailed, rec.Steps[0].Outcome)

	var dup *registry.DuplicateStepError
	require.ErrorAs(t, rec.Steps[0].Err, &dup)
	require.Equal(t, 2, dup.Count)
}

func TestExecutor_Run_HandlerPanicClassifiedAsStepError(t *testing.T) {
	reg := registry.New()
	registerUnit(reg, registry.Given, "it explodes", func() { panic("boom") })
	scenario := &messages.Scenario{
		Steps: []*messages.Step{{Keyword: "Given", Text: "it explodes"}},
	}

	ex := New(reg)
	rec, err := ex.Run("s", nil, scenario)
	require.NoError(t, err)
	require.True(t, rec.Failed)

	var target *stepbdd.StepError
	require.ErrorAs(t, rec.Steps[0].Err, &target)
	require.Equal(t, stepbdd.HandlerPanic, target.Kind)
}
