//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=runner
package runner

import messages "github.com/cucumber/messages/go/v21"

// FeatureSource discovers and parses the .feature files a run should cover.
// The default implementation walks the configured directories with
// gherkin_parser; tests substitute a mock to exercise tag filtering and
// scenario dispatch against a fixed document set without touching the
// filesystem.
type FeatureSource interface {
	Discover(directories []string) ([]*messages.GherkinDocument, error)
}
