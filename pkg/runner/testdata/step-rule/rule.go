package step_rule

import (
	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// SystemInitialized sets up the system (feature-level background)
// @stepbdd `^the system is initialized$`
func SystemInitialized(ctx *stepbdd.Context) {
	ctx.Logger().Info("system initialized")
}

// RegistrationFormLoaded loads the registration form (rule-level background)
// @stepbdd `^the registration form is loaded$`
func RegistrationFormLoaded(ctx *stepbdd.Context) {
	ctx.Logger().Info("registration form loaded")
}

// LoginPageLoaded loads the login page (rule-level background)
// @stepbdd `^the login page is loaded$`
func LoginPageLoaded(ctx *stepbdd.Context) {
	ctx.Logger().Info("login page loaded")
}

// UserRegisters handles user registration with an email
// @stepbdd `^the user registers with {string}$`
func UserRegisters(ctx *stepbdd.Context, email string) {
	ctx.Logger().Info("user registers", "email", email)
}

// RegistrationSucceed asserts that the registration succeeded
// @stepbdd `^the registration should succeed$`
func RegistrationSucceed(ctx *stepbdd.Context) {
	ctx.Logger().Info("registration succeeded")
}

// RegistrationFail asserts that the registration failed
// @stepbdd `^the registration should fail$`
func RegistrationFail(ctx *stepbdd.Context) {
	ctx.Logger().Info("registration failed")
}

// UserLogsIn handles user login with credentials
// @stepbdd `^the user logs in with {string} and {string}$`
func UserLogsIn(ctx *stepbdd.Context, username string, password string) {
	ctx.Logger().Info("user logs in", "username", username, "password", password)
}

// LoginSucceed asserts that the login succeeded
// @stepbdd `^the login should succeed$`
func LoginSucceed(ctx *stepbdd.Context) {
	ctx.Logger().Info("login succeeded")
}

// LoginFail asserts that the login failed
// @stepbdd `^the login should fail$`
func LoginFail(ctx *stepbdd.Context) {
	ctx.Logger().Info("login failed")
}
