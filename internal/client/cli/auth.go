package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studydeck/internal/client/api"
	"github.com/dmitrijs2005/studydeck/internal/client/models"
	"github.com/dmitrijs2005/studydeck/internal/common"
)

// ask and askSecret are swapped in tests.
var (
	ask       = Prompt
	askSecret = PromptSecret
)

// Register prompts for a username, email and password and creates an
// account. A successful registration also signs in.
func (a *App) Register(ctx context.Context) error {
	username, err := ask(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := ask(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := askSecret("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Register(ctx, username, email, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(user))
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	username, err := ask(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := askSecret("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, username, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Signed in as %s\n", displayName(user))
	return nil
}

// Logout ends the session locally even when the server cannot be told.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// WhoAmI prints the signed-in profile.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.authService.Current()
	switch {
	case !st.IsAuthenticated:
		fmt.Fprintln(a.out, "Not signed in")
	case st.User == nil:
		fmt.Fprintln(a.out, "Signed in (profile not loaded yet)")
	default:
		u := st.User
		fmt.Fprintf(a.out, "%s <%s> role=%s", u.Username, u.Email, u.Role)
		if u.IsAdmin() {
			fmt.Fprint(a.out, " [admin]")
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

// report prints err the way the user should see it.
func (a *App) report(err error) {
	if msg, status, ok := api.Normalize(err); ok {
		if status != 0 {
			fmt.Fprintf(a.out, "Error (%d): %s\n", status, msg)
			return
		}
		fmt.Fprintf(a.out, "Error: %s\n", msg)
		return
	}
	fmt.Fprintf(a.out, "Error: %s\n", err)
}

func displayName(u *models.User) string {
	if u == nil || u.Username == "" {
		return "(unnamed)"
	}
	return u.Username
}
