package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/client/session"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupStore(t *testing.T) (*session.Store, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewStore(db), db
}

// ---- fake client ----

// fakeClient implements client.Client and records every call by name.
type fakeClient struct {
	contract client.Contract
	Calls    []string

	LoginToken string
	LoginErr   error
	LastLogin  [2]string

	SignupErr  error
	LastSignup [3]string

	ForgotMsg string
	ForgotErr error

	ResetErr  error
	LastReset [2]string

	ChangeErr  error
	LastChange [2]string

	Docs    []string
	DocsErr error

	// UploadErrs is consumed in order, one per UploadDocument call.
	UploadErrs []error
	Uploaded   []string

	DeleteErr  error
	LastDelete string

	QueryRet  *models.Answer
	QueryErr  error
	LastQuery models.Query

	HistoryRet []models.ConversationEntry
	HistoryErr error

	ProfileRet *models.Profile
	ProfileErr error

	UpdateRet  string
	UpdateErr  error
	LastUpdate [2]string

	DataUploadRet *models.DataUpload
	DataUploadErr error
	InsightsRet   string
	ChartsRet     []models.ChartSpec
	DataAnswer    string
	DataErr       error
	LastDataFile  string
	LastDataQ     string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Contract() client.Contract {
	if f.contract == "" {
		return client.ContractBearer
	}
	return f.contract
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	f.Calls = append(f.Calls, "Login")
	f.LastLogin = [2]string{username, password}
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, username, email, password string) error {
	f.Calls = append(f.Calls, "Signup")
	f.LastSignup = [3]string{username, email, password}
	return f.SignupErr
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.Calls = append(f.Calls, "ForgotPassword")
	return f.ForgotMsg, f.ForgotErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	f.Calls = append(f.Calls, "ResetPassword")
	f.LastReset = [2]string{token, newPassword}
	return f.ResetErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, s models.Session, oldPassword, newPassword string) error {
	f.Calls = append(f.Calls, "ChangePassword")
	f.LastChange = [2]string{oldPassword, newPassword}
	return f.ChangeErr
}

func (f *fakeClient) ListDocuments(ctx context.Context, s models.Session) ([]string, error) {
	f.Calls = append(f.Calls, "ListDocuments")
	return f.Docs, f.DocsErr
}

func (f *fakeClient) UploadDocument(ctx context.Context, s models.Session, path string) error {
	f.Calls = append(f.Calls, "UploadDocument")
	var err error
	if len(f.UploadErrs) > 0 {
		err, f.UploadErrs = f.UploadErrs[0], f.UploadErrs[1:]
	}
	if err == nil {
		f.Uploaded = append(f.Uploaded, path)
	}
	return err
}

func (f *fakeClient) DeleteDocument(ctx context.Context, s models.Session, doc string) error {
	f.Calls = append(f.Calls, "DeleteDocument")
	f.LastDelete = doc
	return f.DeleteErr
}

func (f *fakeClient) Query(ctx context.Context, s models.Session, q models.Query) (*models.Answer, error) {
	f.Calls = append(f.Calls, "Query")
	f.LastQuery = q
	return f.QueryRet, f.QueryErr
}

func (f *fakeClient) History(ctx context.Context, s models.Session) ([]models.ConversationEntry, error) {
	f.Calls = append(f.Calls, "History")
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeClient) Profile(ctx context.Context, s models.Session) (*models.Profile, error) {
	f.Calls = append(f.Calls, "Profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, s models.Session, newUsername, newEmail string) (string, error) {
	f.Calls = append(f.Calls, "UpdateProfile")
	f.LastUpdate = [2]string{newUsername, newEmail}
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) UploadData(ctx context.Context, s models.Session, path string) (*models.DataUpload, error) {
	f.Calls = append(f.Calls, "UploadData")
	return f.DataUploadRet, f.DataUploadErr
}

func (f *fakeClient) DataInsights(ctx context.Context, s models.Session, filename string) (string, error) {
	f.Calls = append(f.Calls, "DataInsights")
	f.LastDataFile = filename
	return f.InsightsRet, f.DataErr
}

func (f *fakeClient) DataCharts(ctx context.Context, s models.Session, filename string) ([]models.ChartSpec, error) {
	f.Calls = append(f.Calls, "DataCharts")
	f.LastDataFile = filename
	return f.ChartsRet, f.DataErr
}

func (f *fakeClient) DataQuery(ctx context.Context, s models.Session, filename, question string) (string, error) {
	f.Calls = append(f.Calls, "DataQuery")
	f.LastDataFile = filename
	f.LastDataQ = question
	return f.DataAnswer, f.DataErr
}
