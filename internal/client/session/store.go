// Package session keeps the signed-in user's state (username, bearer token)
// and the theme preference in the local session database.
package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ragdesk/internal/common"
	"github.com/dmitrijs2005/ragdesk/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("no active session")

// Store is the persistent key/value state shared by every page of the client.
type Store struct {
	db   *sql.DB
	repo metadata.Repository
	now  func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repo: metadata.NewSQLiteRepository(db), now: time.Now}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *Store) Remove(ctx context.Context, keys ...string) error {
	return s.repo.Delete(ctx, keys...)
}

// Load returns whatever session is stored, valid or not.
func (s *Store) Load(ctx context.Context) (models.Session, error) {
	var sess models.Session
	var err error
	if sess.Username, _, err = s.repo.Get(ctx, common.KeyUsername); err != nil {
		return models.Session{}, err
	}
	if sess.Token, _, err = s.repo.Get(ctx, common.KeyToken); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// Save stores username and token together. An empty token removes any
// token left over from an earlier login.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.KeyUsername, sess.Username); err != nil {
			return err
		}
		if sess.Token == "" {
			return repo.Delete(ctx, common.KeyToken)
		}
		return repo.Set(ctx, common.KeyToken, sess.Token)
	})
}

// Clear signs the user out. The theme survives.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.KeyUsername, common.KeyToken)
}

// Guard returns the stored session if it may open the dashboard. With
// requireToken a missing or expired token fails too. A failed guard clears
// the stored session and returns ErrNoSession.
func (s *Store) Guard(ctx context.Context, requireToken bool) (models.Session, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return models.Session{}, err
	}

	ok := sess.Username != ""
	if requireToken {
		ok = ok && sess.Token != "" && !tokenExpired(sess.Token, s.now())
	}
	if ok {
		return sess, nil
	}

	if err := s.Clear(ctx); err != nil {
		return models.Session{}, err
	}
	return models.Session{}, ErrNoSession
}

// tokenExpired reads the exp claim without verifying the signature; the
// client has no key. Tokens that are not JWTs never expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// Theme defaults to dark, including for unknown stored values.
func (s *Store) Theme(ctx context.Context) (models.Theme, error) {
	v, _, err := s.repo.Get(ctx, common.KeyTheme)
	if err != nil {
		return models.ThemeDark, err
	}
	if models.Theme(v) == models.ThemeLight {
		return models.ThemeLight, nil
	}
	return models.ThemeDark, nil
}

func (s *Store) SetTheme(ctx context.Context, t models.Theme) error {
	return s.repo.Set(ctx, common.KeyTheme, string(t))
}
