package step_base64

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchBase64 uses built-in {base64} type
// @stepbdd `^the encoded data is {base64}$`
func MatchBase64(ctx *stepbdd.Context, data []byte) {
	ctx.Logger().Info("base64", "data", data)
}
