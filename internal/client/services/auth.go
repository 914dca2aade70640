// Package services contains the application services of the ragdesk client.
// This file defines the authentication service: login, signup, password
// reset and logout.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/client/session"
)

// AuthService defines the operations of the auth page.
//
// Contract:
//   - Login: authenticate and persist the session.
//   - Signup: validate the password pair, then create the account.
//   - RequestReset: ask the server to mail a reset link.
//   - ResetPassword: set a new password using the token from a reset link.
//   - Logout: forget the stored session.
//
// Validation failures are ValidationError values and never reach the server.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
	Signup(ctx context.Context, username, email, password, confirmation string) error
	RequestReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, link, newPassword, confirmation string) error
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, store *session.Store) AuthService {
	return &authService{client: c, store: store}
}

// Login stores username and token on success. Under the legacy contract no
// token is issued and only the username is stored.
func (a *authService) Login(ctx context.Context, username, password string) (models.Session, error) {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{Username: username, Token: token}
	if err := a.store.Save(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Signup checks the confirmation first, then the length in characters
// (runes), so an emoji counts once.
func (a *authService) Signup(ctx context.Context, username, email, password, confirmation string) error {
	if password != confirmation {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return a.client.Signup(ctx, username, email, password)
}

func (a *authService) RequestReset(ctx context.Context, email string) (string, error) {
	return a.client.ForgotPassword(ctx, email)
}

func (a *authService) ResetPassword(ctx context.Context, link, newPassword, confirmation string) error {
	token, err := ResetToken(link)
	if err != nil {
		return err
	}
	if newPassword != confirmation {
		return ErrPasswordMismatch
	}
	return a.client.ResetPassword(ctx, token, newPassword)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// ResetToken extracts the "token" query parameter from a reset link. The link
// may be a full URL ("http://host/reset-password?token=abc") or a bare query
// string ("?token=abc", "token=abc").
func ResetToken(link string) (string, error) {
	link = strings.TrimSpace(link)
	query := link
	if i := strings.IndexByte(link, '?'); i >= 0 {
		query = link[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return "", ErrInvalidResetLink
	}
	token := values.Get("token")
	if token == "" {
		return "", ErrInvalidResetLink
	}
	return token, nil
}
