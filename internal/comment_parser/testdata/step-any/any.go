package step_any

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// SeeAnything uses built-in {any} type to match any text
// @stepbdd `^I see {any}$`
func SeeAnything(ctx *stepbdd.Context, thing string) {
	ctx.Logger().Info("I see", "thing", thing)
}

// DescriptionIs uses {any} for free-form text
// @stepbdd `^the description is {any}$`
func DescriptionIs(ctx *stepbdd.Context, desc string) {
	ctx.Logger().Info("description is", "desc", desc)
}
