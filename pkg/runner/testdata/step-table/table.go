package step_table

import (
	"fmt"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// TheFollowingUsers receives a DataTable of users
// @stepbdd `^the following users:$`
func TheFollowingUsers(ctx *stepbdd.Context, table stepbdd.Table) {
	for _, row := range table.SkipHeader() {
		ctx.Logger().Info("user", "name", row.Get("name"), "age", row.Get("age"))
	}
}

// ThereShouldBeNUsers asserts the expected user count
// @stepbdd `^there should be {int} users$`
func ThereShouldBeNUsers(ctx *stepbdd.Context, expected int) {
	ctx.Logger().Info("checking user count", "expected", expected)
}

// IHaveItems receives a count and a DataTable of items
// @stepbdd `^I have {int} items:$`
func IHaveItems(ctx *stepbdd.Context, count int, table stepbdd.Table) {
	ctx.Logger().Info("items", "count", count)
	for _, row := range table.SkipHeader() {
		ctx.Logger().Info("item", "name", row.Get("item"), "price", row.Get("price"))
	}
}

// Coordinates receives a headerless DataTable of coordinates
// @stepbdd `^the coordinates are:$`
func Coordinates(table stepbdd.Table) {
	for _, row := range table.All() {
		x := row.Cell(0)
		y := row.Cell(1)
		fmt.Println(x, y)
	}
}
