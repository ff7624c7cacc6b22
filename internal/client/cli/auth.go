package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// getSimpleText, getPassword and confirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

var (
	errNotSignedIn   = errors.New("not signed in")
	errSignInFailed  = errors.New("sign in failed: check your email and password")
	errEmailTaken    = errors.New("an account with this email already exists")
	errEmptyEmail    = errors.New("email must not be empty")
	errEmptyPassword = errors.New("password must not be empty")
)

// askCredentials takes the email from args when given, otherwise prompts.
func (a *App) askCredentials(args []string) (string, string, error) {
	var email string
	if len(args) > 0 {
		email = strings.TrimSpace(args[0])
	} else {
		var err error
		email, err = getSimpleText(a.in, "Enter email", a.out)
		if err != nil {
			return "", "", err
		}
	}
	if email == "" {
		return "", "", errEmptyEmail
	}

	password, err := getPassword(a.in, a.out)
	if err != nil {
		return "", "", err
	}
	if password == "" {
		return "", "", errEmptyPassword
	}
	return email, password, nil
}

// SignUp creates a local account and signs in with it.
func (a *App) SignUp(ctx context.Context, args []string) error {
	a.store.SetSignUpMode(true)
	defer a.store.SetSignUpMode(false)

	email, password, err := a.askCredentials(args)
	if err != nil {
		return err
	}

	if !a.store.SignUp(email, password) {
		return errEmailTaken
	}

	a.log.Info(ctx, "account created", "email", email)
	fmt.Fprintln(a.out, titleStyle.Render("Welcome, "+email+"!"))
	return nil
}

// SignIn authenticates against the remote lookup, falling back to local
// accounts when the remote is unreachable.
func (a *App) SignIn(ctx context.Context, args []string) error {
	email, password, err := a.askCredentials(args)
	if err != nil {
		return err
	}

	if !a.store.SignIn(ctx, email, password) {
		return errSignInFailed
	}

	fmt.Fprintln(a.out, titleStyle.Render("Signed in as "+a.store.State().CurrentUser.Email))
	return nil
}

func (a *App) Guest(ctx context.Context) error {
	if a.isSignedIn() {
		a.store.SignOut()
	}
	a.store.SetGuest(true)
	fmt.Fprintln(a.out, "Continuing as guest")
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	a.store.SignOut()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	st := a.store.State()
	switch {
	case st.CurrentUser != nil:
		u := st.CurrentUser
		fmt.Fprintln(a.out, titleStyle.Render(u.Email))
		fmt.Fprintln(a.out, bodyStyle.Render("id:      "+u.ID))
		fmt.Fprintln(a.out, bodyStyle.Render("since:   "+u.CreatedAt.Format("2006-01-02 15:04")))
		avatar := u.Avatar
		if avatar == "" {
			avatar = subtleStyle.Render("(none)")
		}
		fmt.Fprintln(a.out, bodyStyle.Render("avatar:  "+avatar))
	case st.IsGuest:
		fmt.Fprintln(a.out, "guest")
	default:
		fmt.Fprintln(a.out, "not signed in")
	}
	return nil
}
