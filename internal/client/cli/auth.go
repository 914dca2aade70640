package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/ragdesk/internal/client/services"
	"github.com/dmitrijs2005/ragdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readPasswordPair prompts for a password and its confirmation. Both slices
// must be wiped by the caller.
func (a *App) readPasswordPair(label string) ([]byte, []byte, error) {
	pw, err := getPassword(a.out, label)
	if err != nil {
		return nil, nil, err
	}
	confirm, err := getPassword(a.out, "Confirm "+strings.ToLower(label))
	if err != nil {
		common.WipeByteArray(pw)
		return nil, nil, err
	}
	return pw, confirm, nil
}

// Login prompts for credentials (username may be given up front) and signs
// in. On success the dashboard opens after a short pause.
//
// Only prompt I/O errors are returned; request outcomes are printed.
func (a *App) Login(ctx context.Context, username string) error {
	username, err := getSimpleText(a.reader, "Username", username, a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	done := a.startBusy("Logging in...")
	defer done()

	sess, err := a.authService.Login(ctx, username, string(password))
	if err != nil {
		a.log.Info(ctx, "login failed", "username", username, "error", err)
		a.fail(failureText(err, "Login failed", fixed(msgConnection)))
		return nil
	}

	a.session = sess
	a.success("Login successful! Redirecting...")
	sleepFn(ctx, loginRedirectDelay)
	a.navigate(ctx, PageDashboard)
	return nil
}

// Signup prompts for the account fields and creates the account. The login
// prompt follows with the username filled in.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", "", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", "", a.out)
	if err != nil {
		return err
	}

	password, confirm, err := a.readPasswordPair("Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	defer common.WipeByteArray(confirm)

	done := a.startBusy("Creating account...")
	defer done()

	if err := a.authService.Signup(ctx, username, email, string(password), string(confirm)); err != nil {
		a.fail(failureText(err, "Signup failed", fixed(msgConnection)))
		return nil
	}

	a.success("Account created! Switching to login...")
	sleepFn(ctx, signupSwitchDelay)
	done()
	return a.Login(ctx, username)
}

// ForgotPassword asks the backend to mail a reset link.
func (a *App) ForgotPassword(ctx context.Context, email string) error {
	email, err := getSimpleText(a.reader, "Email", email, a.out)
	if err != nil {
		return err
	}

	done := a.startBusy("Sending reset link...")
	defer done()

	msg, err := a.authService.RequestReset(ctx, email)
	if err != nil {
		a.fail(failureText(err, "Request failed", fixed(msgConnection)))
		return nil
	}
	if msg == "" {
		msg = "If the email is registered, a reset link has been sent"
	}
	a.success(msg)
	return nil
}

// ResetPassword sets a new password using the token carried by link. A link
// without a token is rejected before anything is prompted.
func (a *App) ResetPassword(ctx context.Context, link string) error {
	if _, err := services.ResetToken(link); err != nil {
		a.fail(err.Error())
		return nil
	}

	password, confirm, err := a.readPasswordPair("New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	defer common.WipeByteArray(confirm)

	done := a.startBusy("Resetting password...")
	defer done()

	if err := a.authService.ResetPassword(ctx, link, string(password), string(confirm)); err != nil {
		a.fail(failureText(err, "Reset failed", fixed(msgResetConnection)))
		return nil
	}

	a.success("Password reset successful! Redirecting to login...")
	sleepFn(ctx, resetRedirectDelay)
	a.navigate(ctx, PageAuth)
	return nil
}

// Logout forgets the stored session and returns to the auth page.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		a.fail("Error: " + err.Error())
		return nil
	}
	a.navigate(ctx, PageAuth)
	return nil
}
