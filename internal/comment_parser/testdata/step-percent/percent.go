package step_percent

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchPercent uses built-in {percent} type
// @stepbdd `^the discount is {percent}$`
func MatchPercent(ctx *stepbdd.Context, pct float64) {
	ctx.Logger().Info("percent", "pct", pct)
}
