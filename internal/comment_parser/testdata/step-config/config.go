package step_config

import "github.com/go-stepbdd/stepbdd/pkg/stepbdd"

// MyConfig returns configuration settings
func MyConfig() *stepbdd.Config {
	return &stepbdd.Config{
		FailFast: true,
	}
}

// MyHooks returns lifecycle hooks
func MyHooks() *stepbdd.Hooks {
	return &stepbdd.Hooks{
		Order: 10,
		BeforeAll: func() {
			// setup
		},
		BeforeScenario: func(s stepbdd.Scenario) {
			// runs before each scenario
			_ = s.Name
		},
		AfterScenario: func(s stepbdd.Scenario, err error) {
			// runs after each scenario (always runs)
			_ = s.Name
			_ = err
		},
		BeforeStep: func(s stepbdd.Step) {
			// runs before each step
			_ = s.Text
		},
		AfterStep: func(s stepbdd.Step, err error) {
			// runs after each step
			_ = s.Text
			_ = err
		},
	}
}
