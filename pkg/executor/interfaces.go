//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=executor
package executor

import "github.com/go-stepbdd/stepbdd/pkg/registry"

// StepFinder is the lookup surface Executor needs from a step registry. It
// exists so executor_test.go can drive runStep/Run against a hand-built set
// of definitions without going through registry.Registry's own matching and
// duplicate-panic machinery.
type StepFinder interface {
	Find(keyword registry.Keyword, text string) (*registry.Step, []string, error)
}
