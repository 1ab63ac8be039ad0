package step_time

import (
	"time"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// MeetingAt uses built-in {time} type - parses to time.Time with zero date (0001-01-01)
// Supports: HH:MM, HH:MM:SS, HH:MM:SS.mmm, with optional AM/PM and timezone
// @stepbdd `^the meeting is at {time}$`
func MeetingAt(ctx *stepbdd.Context, t time.Time) {
	ctx.Logger().Info("meeting at", "time", t.Format("15:04:05"), "location", t.Location())
}

// TimeBetween checks time range with two {time} parameters
// @stepbdd `^the store is open between {time} and {time}$`
func TimeBetween(ctx *stepbdd.Context, openTime, closeTime time.Time) {
	ctx.Logger().Info("store open", "from", openTime.Format("15:04"), "to", closeTime.Format("15:04"))
}
