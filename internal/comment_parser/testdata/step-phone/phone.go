package step_phone

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchPhone uses built-in {phone} type
// @stepbdd `^the contact number is {phone}$`
func MatchPhone(ctx *stepbdd.Context, number string) {
	ctx.Logger().Info("phone", "number", number)
}
