package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/authdemo/internal/client/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readCredentials prompts for an email and a password and loads them into
// the login form. The password buffer is wiped before returning.
func (a *App) readCredentials() error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	a.loginForm.SetEmail(email)
	a.loginForm.SetPassword(string(password))
	return nil
}

// Login prompts for credentials and submits them to the login endpoint.
// Success is announced by the session listener; any other outcome prints the
// form's notice.
func (a *App) Login(ctx context.Context) error {
	if err := a.readCredentials(); err != nil {
		return err
	}
	defer a.loginForm.SetPassword("")

	a.loginForm.Login(ctx)
	if notice := a.loginForm.Notice(); notice != "" {
		printlnFn(notice)
	}
	return nil
}

// Register prompts for credentials and submits them to the registration
// endpoint, then prints the outcome.
func (a *App) Register(ctx context.Context) error {
	if err := a.readCredentials(); err != nil {
		return err
	}
	defer a.loginForm.SetPassword("")

	a.loginForm.Register(ctx)
	printlnFn(a.loginForm.Notice())
	return nil
}

// Resend prompts for an email and asks the server to send the verification
// email again.
func (a *App) Resend(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	a.resendForm.SetEmail(email)

	printlnFn(forms.LabelSending)
	if err := a.resendForm.Submit(ctx); err != nil {
		if errors.Is(err, forms.ErrBusy) {
			printlnFn("A request is already in progress.")
		}
		return err
	}

	if msg := a.resendForm.Message(); msg != "" {
		printlnFn(msg)
	}
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.container.User()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(a.container.Greeting())
	printlnFn(fmt.Sprintf("email verified: %t", u.IsEmailVerified))
	if u.PhoneNumber != "" {
		printlnFn(fmt.Sprintf("phone: %s (verified: %t)", u.PhoneNumber, u.IsPhoneVerified))
	}
	if u.MustChangePassword {
		printlnFn("You must change your password.")
	}
	return nil
}

// Logout ends the session. Only a failure to clear the stored token is
// reported.
func (a *App) Logout(ctx context.Context) error {
	if err := a.container.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	return nil
}
