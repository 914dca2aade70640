package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ragdesk/internal/client/models"
)

// Contract selects the backend API shape.
type Contract string

const (
	ContractBearer Contract = "bearer"
	ContractLegacy Contract = "legacy"
)

// ParseContract validates a contract name from configuration.
func ParseContract(s string) (Contract, error) {
	switch Contract(s) {
	case ContractBearer, ContractLegacy:
		return Contract(s), nil
	default:
		return "", fmt.Errorf("unknown API contract %q (want %q or %q)", s, ContractBearer, ContractLegacy)
	}
}

// RequiresToken reports whether a session must carry a token under c.
func (c Contract) RequiresToken() bool {
	return c == ContractBearer
}

// Client is the backend API. Every call that acts on behalf of the user takes
// the session explicitly.
type Client interface {
	Contract() Contract

	Login(ctx context.Context, username, password string) (token string, err error)
	Signup(ctx context.Context, username, email, password string) error
	ForgotPassword(ctx context.Context, email string) (message string, err error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, s models.Session, oldPassword, newPassword string) error

	ListDocuments(ctx context.Context, s models.Session) ([]string, error)
	UploadDocument(ctx context.Context, s models.Session, path string) error
	DeleteDocument(ctx context.Context, s models.Session, doc string) error
	Query(ctx context.Context, s models.Session, q models.Query) (*models.Answer, error)
	History(ctx context.Context, s models.Session) ([]models.ConversationEntry, error)

	Profile(ctx context.Context, s models.Session) (*models.Profile, error)
	UpdateProfile(ctx context.Context, s models.Session, newUsername, newEmail string) (confirmedUsername string, err error)

	UploadData(ctx context.Context, s models.Session, path string) (*models.DataUpload, error)
	DataInsights(ctx context.Context, s models.Session, filename string) (string, error)
	DataCharts(ctx context.Context, s models.Session, filename string) ([]models.ChartSpec, error)
	DataQuery(ctx context.Context, s models.Session, filename, question string) (string, error)
}
