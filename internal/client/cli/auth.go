package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// registerCmd prompts for account details and creates an account. The user
// stays on the sign-in screen: registering does not sign in.
func (a *App) registerCmd(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
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
	confirmation, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.auth.Register(ctx, name, email, password, confirmation); err != nil {
		printRequestError(err)
		return err
	}

	printlnFn(okStyle.Render("Account created. You can sign in now."))
	return nil
}

// loginCmd prompts for credentials and signs in. On success the session store
// holds the token and identity, and the REPL moves to the dashboard screen.
func (a *App) loginCmd(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printRequestError(err)
		return err
	}

	a.screen = screenDashboard
	name := "merchant"
	if user != nil && user.Name != "" {
		name = user.Name
	}
	printlnFn(okStyle.Render("Welcome, " + name + "!"))
	return nil
}

// logoutCmd signs out and returns to the sign-in screen. Local state is
// cleared even if the server cannot be reached.
func (a *App) logoutCmd(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.screen = screenSignIn
	printlnFn("Signed out.")
	return nil
}

// whoamiCmd prints the current identity from the session store.
func (a *App) whoamiCmd() {
	u := a.sessions.User()
	if u == nil {
		printlnFn("Signed in (identity not restored).")
		return
	}
	printlnFn(u.Name + " <" + u.Email + ">")
}
