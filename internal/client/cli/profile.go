package cli

import (
	"context"
	"fmt"

	"github.com/avdeyev/shelfkeeper/internal/client/session"
)

// profileScreen shows the current user's record and offers an edit form.
// The backend write happens first; only after it succeeds is the local
// session record patched.
func (a *App) profileScreen(ctx context.Context) error {
	user := a.session.CurrentUser()

	fmt.Fprintln(a.out, "=== Profile ===")
	fmt.Fprintf(a.out, "Name:     %s\n", user.Fullname)
	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "Role:     %s\n", user.Role)
	if user.Phone != "" {
		fmt.Fprintf(a.out, "Phone:    %s\n", user.Phone)
	}
	if user.Address != "" {
		fmt.Fprintf(a.out, "Address:  %s\n", user.Address)
	}

	action, err := getSimpleText(a.reader, "(e)dit, (b)ack", a.out)
	if err != nil {
		return err
	}
	if action != "e" && action != "edit" {
		return nil
	}
	return a.editProfile(ctx)
}

func (a *App) editProfile(ctx context.Context) error {
	user := a.session.CurrentUser()

	patch := session.UserPatch{}
	var err error
	if patch.Fullname, err = GetOptionalText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if patch.Email, err = GetOptionalText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if patch.Phone, err = GetOptionalText(a.reader, "Phone", a.out); err != nil {
		return err
	}
	if patch.Address, err = GetOptionalText(a.reader, "Address", a.out); err != nil {
		return err
	}

	body := make(map[string]string)
	if patch.Fullname != nil {
		body["fullname"] = *patch.Fullname
	}
	if patch.Email != nil {
		body["email"] = *patch.Email
	}
	if patch.Phone != nil {
		body["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		body["address"] = *patch.Address
	}
	if len(body) == 0 {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if _, err := a.api.Update(ctx, "/api/users", user.ID, body); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return nil
	}
	if err := a.session.UpdateCurrentUser(ctx, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
