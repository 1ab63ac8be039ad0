package step_csv

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchCSV uses built-in {csv} type
// @stepbdd `^the items are {csv}$`
func MatchCSV(ctx *stepbdd.Context, items []string) {
	ctx.Logger().Info("csv", "items", items)
}
