package cli

import (
	"context"
	"os"

	"github.com/zapdesk/zapdesk/internal/client/session"
	"github.com/zapdesk/zapdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email, and password and creates a new account.
// A fresh account always lands in onboarding. The password byte slice is
// securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.sessions.Register(ctx, name, email, string(password))
	a.reportAuth("Account created", res)
	return nil
}

// Login prompts for credentials and authenticates against the backend. On
// success the destination reflects the onboarding state; on failure the
// result's message is shown and the previous session state is untouched.
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.sessions.Login(ctx, email, string(password))
	a.reportAuth("Logged in", res)
	return nil
}

// reportAuth turns an auth result into user feedback.
func (a *App) reportAuth(verb string, res session.Result) {
	if !res.Success {
		a.toasts.Error("Authentication failed", res.Error)
		printlnFn(res.Error)
		return
	}
	a.toasts.Success(verb, "")
	printlnFn(verb + ". Landing: " + string(res.Destination))
}

// Logout clears the session; notification polling stops via the session
// change listener.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	a.toasts.Success("Logged out", "")
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the current identity record.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.sessions.Current()
	if s == nil || s.User == nil {
		printlnFn("Not logged in.")
		return nil
	}
	u := s.User
	printlnFn("ID:          " + u.ID)
	printlnFn("Name:        " + u.Name)
	printlnFn("Email:       " + u.Email)
	printlnFn("Role:        " + u.Role)
	printlnFn("Organization:" + " " + u.Organization)
	return nil
}

// RefreshIdentity re-fetches the identity record from the backend and prints
// the (possibly updated) result. A failing refresh keeps the current record.
func (a *App) RefreshIdentity(ctx context.Context) error {
	if !a.sessions.IsAuthenticated() {
		printlnFn("Not logged in.")
		return nil
	}
	a.sessions.RefreshUser(ctx)
	return a.WhoAmI(ctx)
}
