package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bmic/internal/client/models"
)

var errUnknownAccount = errors.New("no account with this id")

// Accounts lists locally known accounts; the current one is starred.
func (a *App) Accounts(ctx context.Context) error {
	st := a.store.State()
	if len(st.Accounts) == 0 {
		fmt.Fprintln(a.out, subtleStyle.Render("No accounts yet"))
		return nil
	}

	rows := make([][]string, 0, len(st.Accounts))
	for _, acc := range st.Accounts {
		mark := ""
		if st.CurrentUser != nil && st.CurrentUser.ID == acc.ID {
			mark = "*"
		}
		rows = append(rows, []string{mark, acc.ID, acc.Email, acc.CreatedAt.Format("2006-01-02"), acc.Avatar})
	}
	fmt.Fprint(a.out, renderTable([]string{"", "ID", "EMAIL", "CREATED", "AVATAR"}, rows))
	return nil
}

func (a *App) currentUser() (*models.Account, error) {
	u := a.store.State().CurrentUser
	if u == nil {
		return nil, errNotSignedIn
	}
	return u, nil
}

// Avatar stores uri as the current user's avatar.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: avatar <uri>")
	}

	a.store.UpdateAvatar(args[0])
	fmt.Fprintln(a.out, "Avatar updated")
	return nil
}

// UploadAvatar sends a local image to object storage via the server and
// uses the resulting URL as the avatar.
func (a *App) UploadAvatar(ctx context.Context, args []string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: upload-avatar <path>")
	}

	url, err := a.avatars.Upload(ctx, args[0])
	if err != nil {
		a.log.Warn(ctx, "avatar upload failed", "path", args[0], "error", err)
		return err
	}

	a.store.UpdateAvatar(url)
	fmt.Fprintln(a.out, "Avatar uploaded: "+url)
	return nil
}

// Delete removes an account after confirmation. Without an id it deletes
// the current user's account.
func (a *App) Delete(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		u, err := a.currentUser()
		if err != nil {
			return err
		}
		id = u.ID
	}

	ok, err := confirm(a.in, "Delete account "+id+"? This cannot be undone.", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if !a.store.DeleteAccount(id) {
		return errUnknownAccount
	}
	a.log.Info(ctx, "account deleted", "id", id)
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
