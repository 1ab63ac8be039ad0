package step_uuid

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchUUID uses built-in {uuid} type
// @stepbdd `^the identifier is {uuid}$`
func MatchUUID(ctx *stepbdd.Context, id string) {
	ctx.Logger().Info("uuid", "id", id)
}
