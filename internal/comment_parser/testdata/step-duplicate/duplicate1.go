package step_duplicate

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// FirstDuplicateStep is the first definition of a duplicate step
// @stepbdd `^I have (\d+) items$`
func FirstDuplicateStep(ctx *stepbdd.Context, count int) {
	ctx.Logger().Info("first duplicate step", "count", count)
}
