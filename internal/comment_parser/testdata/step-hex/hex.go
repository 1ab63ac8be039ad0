package step_hex

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchHex uses built-in {hex} type
// @stepbdd `^the color code is {hex}$`
func MatchHex(ctx *stepbdd.Context, value int64) {
	ctx.Logger().Info("hex", "value", value)
}
