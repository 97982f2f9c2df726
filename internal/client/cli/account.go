package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) promptPassword(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register asks for username, email and the password twice, then creates
// the account and logs in.
func (a *App) Register(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password1, err := a.promptPassword("Password")
	if err != nil {
		return err
	}
	password2, err := a.promptPassword("Repeat password")
	if err != nil {
		return err
	}

	return a.auth.Register(ctx, username, email, password1, password2)
}

// Login asks for email and password. On success the session moves to the
// transactions screen.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	return a.auth.Login(ctx, email, password)
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	a.auth.Logout(ctx)
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	st := a.session.State()
	if st.User == nil {
		fmt.Fprintln(a.out, "Profile not loaded.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", st.User.Username, st.User.Email, st.User.ID)

	if a.tokens == nil {
		return nil
	}
	at, ok, err := a.tokens.SavedAt(ctx)
	if err != nil {
		a.logger.Warn(ctx, "token timestamp unreadable", "error", err)
		return nil
	}
	if ok {
		fmt.Fprintf(a.out, "Signed in since %s\n", at.Format("2006-01-02 15:04 MST"))
	}
	return nil
}

// Rename takes the new username as argument or asks for it.
func (a *App) Rename(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = getSimpleText(a.reader, "New username", a.out); err != nil {
			return err
		}
	}

	if err := a.auth.Rename(ctx, username); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Username updated.")
	return nil
}

func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	password1, err := a.promptPassword("New password")
	if err != nil {
		return err
	}
	password2, err := a.promptPassword("Repeat new password")
	if err != nil {
		return err
	}
	if password1 != password2 {
		return common.ErrPasswordMismatch
	}

	if err := a.auth.ChangePassword(ctx, password1); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
