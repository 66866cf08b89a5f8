package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for a username, an optional email and a password, creates
// the account and keeps the returned session token.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.api.Register(ctx, userName, email, password)
	if err != nil {
		return err
	}

	a.setUser(p.Username)
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and starts a session. The previous login
// time is shown when the server reports one.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.api.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.setUser(p.Username)
	a.setMode(ModeOnline)

	if p.LastLogin != nil {
		fmt.Fprintf(a.out, "Welcome back, %s! Last login: %s\n", p.Username, p.LastLogin.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(a.out, "Welcome, %s!\n", p.Username)
	}
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	p, err := a.api.Verify(ctx)
	if err != nil {
		return err
	}
	a.setUser(p.Username)
	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Token is valid for %s\n", p.Username)
	return nil
}

// Logout tells the server to drop presence and forgets the token locally
// even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)

	a.api.SetToken("")
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")

	return err
}
