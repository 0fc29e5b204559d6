package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/itcontroller/internal/common"
)

// getSimpleText, getPassword, getSecret and getMultiline are indirections
// used to facilitate testing. They point to interactive input helpers and
// can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getSecret     = GetSecret
	getMultiline  = GetMultiline
)

func (a *App) credentials(args []string) (string, []byte, error) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = a.ask("Enter username"); err != nil {
			return "", nil, err
		}
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

// Register prompts for a username and password and creates the account.
// The user still has to log in afterwards.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context, args []string) error {
	username, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.svc.Auth.Register(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can log in now.")
	return nil
}

// Login prompts for credentials and opens a session, which is kept for the
// next run.
func (a *App) Login(ctx context.Context, args []string) error {
	username, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	c, err := a.svc.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.takeExpired()
	a.resetViews()

	fmt.Fprintf(a.out, "Welcome, %s!\n", c.Username)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.svc.Auth.Logout(ctx); err != nil {
		return err
	}
	a.resetViews()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(_ context.Context, _ []string) error {
	fmt.Fprintln(a.out, a.svc.Auth.Current().Username)
	return nil
}

// Profile changes the user name and, optionally, the password. An empty
// answer keeps the current name; an empty password keeps the password.
func (a *App) Profile(ctx context.Context, _ []string) error {
	current := a.svc.Auth.Current().Username

	username, err := a.ask(fmt.Sprintf("Enter new username (empty keeps %q)", current))
	if err != nil {
		return err
	}
	if username == "" {
		username = current
	}

	password, err := getSecret(a.out, "Enter new password (empty keeps the current one)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := a.svc.Auth.UpdateProfile(a.authed(ctx), username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated, you are now %s\n", name)
	return nil
}
