package step_ip

import (
	"net"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MatchIP uses built-in {ip} type
// @stepbdd `^the server is at {ip}$`
func MatchIP(ctx *stepbdd.Context, addr net.IP) {
	ctx.Logger().Info("ip", "addr", addr)
}
