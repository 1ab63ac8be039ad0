package step_path

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchPath uses built-in {path} type
// @stepbdd `^the file is at {path}$`
func MatchPath(ctx *stepbdd.Context, p string) {
	ctx.Logger().Info("path", "p", p)
}
