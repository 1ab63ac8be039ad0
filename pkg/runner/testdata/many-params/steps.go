package many_params

import (
	"fmt"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// ARecordWith handles a step that captures 10 parameters, one for each
// color in the HTML report's htmlParamColors palette.
// @stepbdd `^a record with "([^"]*)" aged (\d+) scored ([\d.]+) from "([^"]*)" tagged "([^"]*)" on level (\d+) with code "([^"]*)" rated ([\d.]+) and flag (true|false) in group "([^"]*)"$`
func ARecordWith(ctx *stepbdd.Context, name string, age int, score float64, city string, tag string, level int, code string, rating float64, flag bool, group string) {
	ctx.Logger().Info("record",
		"name", name,
		"age", age,
		"score", fmt.Sprintf("%.1f", score),
		"city", city,
		"tag", tag,
		"level", level,
		"code", code,
		"rating", fmt.Sprintf("%.1f", rating),
		"flag", flag,
		"group", group,
	)
}
