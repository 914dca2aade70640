package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresUsernameAndToken(t *testing.T) {
	store, _ := setupStore(t)
	fc := &fakeClient{LoginToken: "t"}
	svc := NewAuthService(fc, store)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.Session{Username: "alice", Token: "t"}, sess)
	assert.Equal(t, [2]string{"alice", "secret"}, fc.LastLogin)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{Username: "alice", Token: "t"}, stored)
}

func TestLogin_Legacy_StoresUsernameOnly(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "token", "stale"))

	svc := NewAuthService(&fakeClient{contract: client.ContractLegacy}, store)
	_, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Guard(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestLogin_FailureStoresNothing(t *testing.T) {
	store, _ := setupStore(t)
	fc := &fakeClient{LoginErr: &client.ServerError{Message: "X"}}

	_, err := NewAuthService(fc, store).Login(context.Background(), "alice", "bad")
	assert.Equal(t, "X", client.ServerMessage(err, "Login failed"))

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Session{}, stored)
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		confirmation string
		wantErr      error
	}{
		{"mismatch", "secret1", "secret2", ErrPasswordMismatch},
		{"mismatch wins over length", "abc", "abd", ErrPasswordMismatch},
		{"too short", "abc", "abc", ErrPasswordTooShort},
		{"five runes", "äääää", "äääää", ErrPasswordTooShort},
		{"astral characters count once each", "😀😀😀", "😀😀😀", ErrPasswordTooShort},
		{"six astral characters", "😀😀😀😀😀😀", "😀😀😀😀😀😀", nil},
		{"six is enough", "secret", "secret", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := setupStore(t)
			fc := &fakeClient{}
			err := NewAuthService(fc, store).Signup(context.Background(), "bob", "b@x", tt.password, tt.confirmation)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidation(err))
				assert.Empty(t, fc.Calls, "request must not be sent")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, [3]string{"bob", "b@x", tt.password}, fc.LastSignup)
		})
	}
}

func TestSignup_ShortPasswordsNeverSent(t *testing.T) {
	store, _ := setupStore(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, store)

	for n := 0; n < MinPasswordLength; n++ {
		p := strings.Repeat("x", n)
		require.ErrorIs(t, svc.Signup(context.Background(), "u", "e", p, p), ErrPasswordTooShort)
	}
	assert.Empty(t, fc.Calls)
}

func TestSignup_ServerMessage(t *testing.T) {
	store, _ := setupStore(t)
	fc := &fakeClient{SignupErr: &client.ServerError{Message: "Username already exists"}}

	err := NewAuthService(fc, store).Signup(context.Background(), "bob", "b@x", "secret", "secret")
	assert.Equal(t, "Username already exists", client.ServerMessage(err, ""))
}

func TestResetToken(t *testing.T) {
	tests := []struct {
		link    string
		want    string
		wantErr bool
	}{
		{link: "http://localhost:8000/reset-password?token=abc123", want: "abc123"},
		{link: "?token=abc", want: "abc"},
		{link: "token=abc&x=1", want: "abc"},
		{link: "  http://h/r?x=1&token=a%2Bb#frag ", want: "a+b"},
		{link: "http://localhost:8000/reset-password", wantErr: true},
		{link: "?token=", wantErr: true},
		{link: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ResetToken(tt.link)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidResetLink, tt.link)
			continue
		}
		require.NoError(t, err, tt.link)
		assert.Equal(t, tt.want, got, tt.link)
	}
}

func TestResetPassword(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	t.Run("invalid link sends nothing", func(t *testing.T) {
		fc := &fakeClient{}
		err := NewAuthService(fc, store).ResetPassword(ctx, "http://h/reset-password", "newpass", "newpass")
		require.ErrorIs(t, err, ErrInvalidResetLink)
		assert.Empty(t, fc.Calls)
	})
	t.Run("mismatch sends nothing", func(t *testing.T) {
		fc := &fakeClient{}
		err := NewAuthService(fc, store).ResetPassword(ctx, "?token=t", "newpass", "other")
		require.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Empty(t, fc.Calls)
	})
	t.Run("ok", func(t *testing.T) {
		fc := &fakeClient{}
		require.NoError(t, NewAuthService(fc, store).ResetPassword(ctx, "?token=t", "newpass", "newpass"))
		assert.Equal(t, [2]string{"t", "newpass"}, fc.LastReset)
	})
}

func TestRequestReset(t *testing.T) {
	store, _ := setupStore(t)
	fc := &fakeClient{ForgotMsg: "Reset link sent"}

	msg, err := NewAuthService(fc, store).RequestReset(context.Background(), "a@x")
	require.NoError(t, err)
	assert.Equal(t, "Reset link sent", msg)
}

func TestLogout(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Session{Username: "alice", Token: "t"}))

	require.NoError(t, NewAuthService(&fakeClient{}, store).Logout(ctx))

	_, err := store.Guard(ctx, true)
	require.Error(t, err)
}
