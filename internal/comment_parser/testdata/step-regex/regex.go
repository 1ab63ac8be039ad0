package step_regex

import (
	"regexp"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchRegex uses built-in {regex} type
// @stepbdd `^the pattern is {regex}$`
func MatchRegex(ctx *stepbdd.Context, re *regexp.Regexp) {
	ctx.Logger().Info("regex", "re", re)
}
