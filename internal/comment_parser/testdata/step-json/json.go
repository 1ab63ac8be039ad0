package step_json

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchJSON uses built-in {json} type
// @stepbdd `^the payload is {json}$`
func MatchJSON(ctx *stepbdd.Context, payload string) {
	ctx.Logger().Info("json", "payload", payload)
}
