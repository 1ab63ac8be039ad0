package step_date

import (
	"time"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// EventOn uses built-in {date} type - parses to time.Time at midnight in Local timezone
// Supports: EU (DD/MM/YYYY), ISO (YYYY-MM-DD), written (15 Jan 2024)
// @stepbdd `^the event is on {date}$`
func EventOn(ctx *stepbdd.Context, d time.Time) {
	ctx.Logger().Info("event on", "date", d.Format("2006-01-02"))
}

// DateRange checks date range with two {date} parameters
// @stepbdd `^the sale runs from {date} to {date}$`
func DateRange(ctx *stepbdd.Context, startDate, endDate time.Time) {
	ctx.Logger().Info("sale runs", "from", startDate.Format("2006-01-02"), "to", endDate.Format("2006-01-02"))
}
