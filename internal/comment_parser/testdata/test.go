package testdata

import "github.com/go-stepbdd/stepbdd/pkg/stepbdd"

// MyConfig returns configuration settings
func MyConfig() *stepbdd.Config {
	return &stepbdd.Config{
		RuntimeMode: stepbdd.Parallel,
		FailFast:    true,
	}
}

// MyHooks returns lifecycle hooks
func MyHooks() *stepbdd.Hooks {
	return &stepbdd.Hooks{
		Order: 10,
		BeforeAll: func() {
			// setup
		},
	}
}
