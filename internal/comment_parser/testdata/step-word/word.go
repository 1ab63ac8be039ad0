package step_word

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// NameIs uses built-in {word} type to match a single word
// @stepbdd `^my name is {word}$`
func NameIs(ctx *stepbdd.Context, name string) {
	ctx.Logger().Info("my name is", "name", name)
}

// StatusIs uses {word} to match a status keyword
// @stepbdd `^the status is {word}$`
func StatusIs(ctx *stepbdd.Context, status string) {
	ctx.Logger().Info("status is", "status", status)
}
