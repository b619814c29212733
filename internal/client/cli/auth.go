package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeyev/shelfkeeper/internal/client/api"
	"github.com/avdeyev/shelfkeeper/internal/client/guard"
	"github.com/avdeyev/shelfkeeper/internal/client/session"
	"github.com/avdeyev/shelfkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// loginScreen renders the sign-in form. If the session was dropped
// because a stored token expired or was rejected, the user is told why
// they are back here.
func (a *App) loginScreen(ctx context.Context) error {
	if a.session.ConsumeExpiryNotice() {
		fmt.Fprintln(a.out, "Your session has expired, please sign in again.")
	}

	userName, err := getSimpleText(a.reader, "Username or email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.session.Login(ctx, session.Credentials{
		UsernameOrEmail: userName,
		Password:        string(password),
	})
	if err != nil {
		a.printAuthError(err)
		return nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", result.User.Fullname)
	a.Open(ctx, result.DashboardRoute)
	return nil
}

// registerScreen renders the sign-up form. The password confirmation is
// checked by the session store before any request leaves the client.
func (a *App) registerScreen(ctx context.Context) error {
	fullname, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	result, err := a.session.Register(ctx, session.Registration{
		Fullname:        fullname,
		Username:        username,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		a.printAuthError(err)
		return nil
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", result.User.Fullname)
	a.Open(ctx, result.DashboardRoute)
	return nil
}

// logout ends the session and performs a hard return to the login screen,
// discarding whatever screen the user was on.
func (a *App) logout(ctx context.Context) {
	a.session.Logout(ctx)
	a.current = ""
	fmt.Fprintln(a.out, "Signed out.")
	a.Open(ctx, guard.LoginRoute)
}

// printAuthError renders login/register failures inline near the form.
func (a *App) printAuthError(err error) {
	var validation *api.ValidationError
	switch {
	case errors.Is(err, session.ErrPasswordMismatch):
		fmt.Fprintln(a.out, "Passwords do not match.")
	case errors.As(err, &validation):
		fmt.Fprintln(a.out, "Please correct the following:")
		for field, msg := range validation.Fields {
			fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
		}
	case errors.Is(err, api.ErrInvalidCredentials):
		fmt.Fprintln(a.out, "Invalid username or password.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot reach the server, try again later.")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
