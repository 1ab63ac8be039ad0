package scenario_outline

import (
	"fmt"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// TheApplicationIsStarted initializes the application
// @stepbdd `^the application is started$`
func TheApplicationIsStarted(ctx *stepbdd.Context) {
	ctx.Logger().Info("application started")
}

// UserExistsWithRole sets up a user with a given role
// @stepbdd `^user "([^"]*)" exists with role "([^"]*)"$`
func UserExistsWithRole(ctx *stepbdd.Context, username, role string) {
	ctx.Data().Set("user:"+username+":role", role)
	ctx.Logger().Info("user exists", "username", username, "role", role)
}

// UserLogsInWithPassword attempts a login
// @stepbdd `^user "([^"]*)" logs in with password "([^"]*)"$`
func UserLogsInWithPassword(ctx *stepbdd.Context, username, password string) {
	ctx.Logger().Info("login attempt", "username", username)
}

// TheLoginResultShouldBe verifies the login outcome
// @stepbdd `^the login result should be "([^"]*)"$`
func TheLoginResultShouldBe(ctx *stepbdd.Context, result string) {
	ctx.Logger().Info("login result", "result", result)
}

// TheUserRoleShouldBe verifies the user's role
// @stepbdd `^the user role should be "([^"]*)"$`
func TheUserRoleShouldBe(ctx *stepbdd.Context, role string) {
	ctx.Logger().Info("user role", "role", role)
}

// IAssignPermissions assigns permissions from a DataTable to a user
// @stepbdd `^I assign permissions to "([^"]*)":$`
func IAssignPermissions(ctx *stepbdd.Context, username string, table stepbdd.Table) {
	for _, row := range table.SkipHeader() {
		perm := row.Get("permission")
		granted := row.Get("granted")
		ctx.Logger().Info("assign permission",
			"user", username,
			"permission", perm,
			"granted", granted,
		)
	}
}

// UserShouldHaveNPermissions verifies permission count
// @stepbdd `^user "([^"]*)" should have {int} permissions$`
func UserShouldHaveNPermissions(ctx *stepbdd.Context, username string, count int) {
	ctx.Logger().Info("permission count", "user", username, "expected", count)
}

// TheApplicationIsRunning checks the app is running
// @stepbdd `^the application is running$`
func TheApplicationIsRunning(ctx *stepbdd.Context) {
	ctx.Logger().Info("application is running")
}

// ICheckTheStatus performs a status check
// @stepbdd `^I check the status$`
func ICheckTheStatus(ctx *stepbdd.Context) {
	ctx.Logger().Info("checking status")
}

// TheStatusCodeShouldBe verifies the HTTP status code
// @stepbdd `^the status code should be {int}$`
func TheStatusCodeShouldBe(ctx *stepbdd.Context, code int) {
	ctx.Logger().Info("status code", "code", code)
}

// TheAccessControlModuleIsLoaded initializes the ACL module
// @stepbdd `^the access control module is loaded$`
func TheAccessControlModuleIsLoaded(ctx *stepbdd.Context) {
	ctx.Logger().Info("access control module loaded")
}

// UserHasRole sets a user's role for access control
// @stepbdd `^user "([^"]*)" has role "([^"]*)"$`
func UserHasRole(ctx *stepbdd.Context, user, role string) {
	ctx.Data().Set("acl:"+user+":role", role)
	ctx.Logger().Info("user has role", "user", user, "role", role)
}

// UserAccessesResource attempts to access a resource
// @stepbdd `^user "([^"]*)" accesses "([^"]*)"$`
func UserAccessesResource(ctx *stepbdd.Context, user, resource string) {
	ctx.Logger().Info("access attempt", "user", user, "resource", resource)
}

// AccessShouldBe verifies the access decision
// @stepbdd `^access should be "([^"]*)"$`
func AccessShouldBe(ctx *stepbdd.Context, decision string) {
	if decision != "granted" && decision != "denied" {
		panic(fmt.Sprintf("unexpected access decision: %s", decision))
	}
	ctx.Logger().Info("access decision", "decision", decision)
}
