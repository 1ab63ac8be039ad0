package generator

import (
	"fmt"
	"os"
	"path/filepath"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/go-stepbdd/stepbdd/internal/models"
	"github.com/go-stepbdd/stepbdd/pkg/gherkin_parser"
)

// DiscoverScenarios walks every .feature file under directories and returns
// every Scenario/Scenario Outline in the same depth-first order
// pkg/runner.CucumberRunner assigns RunAt indices in, so a SelectorSpec
// resolved here and baked into generated code picks the same unit the
// generated test calls RunAt against at execution time. A file is parsed
// at most once per call even if two overlapping --features directories
// both reach it, keyed by its canonicalised absolute path.
func DiscoverScenarios(directories []string) ([]*models.ScenarioUnit, error) {
	files, err := gherkin_parser.SearchFeatureFilesIn(directories)
	if err != nil {
		return nil, fmt.Errorf("generator: discovering feature files: %w", err)
	}

	seen := make(map[string]bool, len(files))
	var units []*models.ScenarioUnit
	index := 0
	for _, path := range files {
		canonical, err := filepath.Abs(path)
		if err != nil {
			canonical = path
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		doc, err := parseFeatureFile(path)
		if err != nil {
			return nil, fmt.Errorf("generator: parsing %s: %w", path, err)
		}
		if doc.Feature == nil {
			continue
		}
		for _, u := range collectFeatureUnits(path, doc.Feature) {
			u.Index = index
			index++
			units = append(units, u)
		}
	}
	return units, nil
}

func parseFeatureFile(path string) (*messages.GherkinDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gherkin_parser.ParseGherkinFile(f)
}

func collectFeatureUnits(path string, feature *messages.Feature) []*models.ScenarioUnit {
	featureTags := tagNames(feature.Tags)
	var units []*models.ScenarioUnit

	for _, child := range feature.Children {
		switch {
		case child.Rule != nil:
			for _, rc := range child.Rule.Children {
				if rc.Scenario == nil {
					continue
				}
				tags := append(append([]string(nil), featureTags...), tagNames(rc.Scenario.Tags)...)
				units = append(units, scenarioUnit(path, feature.Name, child.Rule.Name, rc.Scenario, tags))
			}
		case child.Scenario != nil:
			tags := append(append([]string(nil), featureTags...), tagNames(child.Scenario.Tags)...)
			units = append(units, scenarioUnit(path, feature.Name, "", child.Scenario, tags))
		}
	}
	return units
}

func scenarioUnit(path, featureName, ruleName string, scenario *messages.Scenario, tags []string) *models.ScenarioUnit {
	u := &models.ScenarioUnit{
		FeaturePath: path,
		FeatureName: featureName,
		RuleName:    ruleName,
		Name:        scenario.Name,
		Tags:        tags,
		IsOutline:   len(scenario.Examples) > 0,
	}

	for _, ex := range scenario.Examples {
		if len(ex.TableHeader.Cells) == 0 {
			continue
		}
		headers := make([]string, len(ex.TableHeader.Cells))
		for i, c := range ex.TableHeader.Cells {
			headers[i] = c.Value
		}
		rows := make([][]string, len(ex.TableBody))
		for i, row := range ex.TableBody {
			cells := make([]string, len(row.Cells))
			for j, c := range row.Cells {
				cells[j] = c.Value
			}
			rows[i] = cells
		}
		u.Examples = append(u.Examples, models.ExampleTable{Headers: headers, Rows: rows})
	}

	return u
}

func tagNames(tags []*messages.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
