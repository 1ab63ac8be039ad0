package step_bigint

import (
	"math/big"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchBigint uses built-in {bigint} type
// @stepbdd `^the large number is {bigint}$`
func MatchBigint(ctx *stepbdd.Context, n *big.Int) {
	ctx.Logger().Info("bigint", "n", n)
}
