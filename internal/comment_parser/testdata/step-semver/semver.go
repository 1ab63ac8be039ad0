package step_semver

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchSemver uses built-in {semver} type
// @stepbdd `^the version is {semver}$`
func MatchSemver(ctx *stepbdd.Context, ver string) {
	ctx.Logger().Info("semver", "ver", ver)
}
