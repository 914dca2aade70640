package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/config"
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/client/render"
	"github.com/dmitrijs2005/ragdesk/internal/client/services"
	"github.com/dmitrijs2005/ragdesk/internal/client/session"
	"github.com/dmitrijs2005/ragdesk/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fake services ----

type fakeAuth struct {
	store *session.Store
	calls []string

	loginToken string
	loginErr   error
	lastLogin  [2]string

	signupErr  error
	lastSignup [4]string

	forgotMsg string
	forgotErr error

	resetErr  error
	lastReset [3]string
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (models.Session, error) {
	f.calls = append(f.calls, "login")
	f.lastLogin = [2]string{username, password}
	if f.loginErr != nil {
		return models.Session{}, f.loginErr
	}
	sess := models.Session{Username: username, Token: f.loginToken}
	return sess, f.store.Save(ctx, sess)
}

func (f *fakeAuth) Signup(_ context.Context, username, email, password, confirmation string) error {
	f.calls = append(f.calls, "signup")
	f.lastSignup = [4]string{username, email, password, confirmation}
	return f.signupErr
}

func (f *fakeAuth) RequestReset(context.Context, string) (string, error) {
	f.calls = append(f.calls, "forgot")
	return f.forgotMsg, f.forgotErr
}

func (f *fakeAuth) ResetPassword(_ context.Context, link, newPassword, confirmation string) error {
	f.calls = append(f.calls, "reset")
	f.lastReset = [3]string{link, newPassword, confirmation}
	return f.resetErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	return f.store.Clear(ctx)
}

type fakeDash struct {
	store *session.Store
	calls []string

	docs    []string
	docsErr error

	uploadErrs []error

	deleteErr  error
	lastDelete string

	answer    *models.Answer
	askErr    error
	lastQuery models.Query

	history []models.ConversationEntry

	profile *models.Profile

	renameTo  string
	updateErr error
	lastUpd   [2]string

	changeErr  error
	lastChange [3]string

	theme models.Theme
}

func (f *fakeDash) Documents(context.Context, models.Session) ([]string, error) {
	f.calls = append(f.calls, "documents")
	return f.docs, f.docsErr
}

// Upload consumes uploadErrs in order and reports docs as the refreshed list.
func (f *fakeDash) Upload(_ context.Context, _ models.Session, paths []string, onFile func(string, error)) (services.UploadReport, error) {
	f.calls = append(f.calls, "upload")
	if len(paths) == 0 {
		return services.UploadReport{}, services.ErrNoFilesSelected
	}
	rep := services.UploadReport{Attempted: len(paths)}
	for i, p := range paths {
		var err error
		if i < len(f.uploadErrs) {
			err = f.uploadErrs[i]
		}
		if err == nil {
			rep.Succeeded++
		}
		onFile(p, err)
	}
	rep.Documents, rep.Refreshed = f.docs, f.docsErr == nil
	return rep, nil
}

func (f *fakeDash) Delete(_ context.Context, _ models.Session, doc string) ([]string, bool, error) {
	f.calls = append(f.calls, "delete")
	f.lastDelete = doc
	if f.docsErr != nil {
		return nil, false, f.deleteErr
	}
	return f.docs, true, f.deleteErr
}

func (f *fakeDash) Ask(_ context.Context, _ models.Session, q models.Query) (*models.Answer, error) {
	f.calls = append(f.calls, "ask")
	f.lastQuery = q
	return f.answer, f.askErr
}

func (f *fakeDash) History(context.Context, models.Session) ([]models.ConversationEntry, error) {
	f.calls = append(f.calls, "history")
	return f.history, nil
}

func (f *fakeDash) Profile(context.Context, models.Session) (*models.Profile, error) {
	f.calls = append(f.calls, "profile")
	return f.profile, nil
}

func (f *fakeDash) UpdateProfile(ctx context.Context, s models.Session, newUsername, newEmail string) (models.Session, bool, error) {
	f.calls = append(f.calls, "update")
	f.lastUpd = [2]string{newUsername, newEmail}
	if f.updateErr != nil {
		return s, false, f.updateErr
	}
	if f.renameTo == "" || f.renameTo == s.Username {
		return s, false, nil
	}
	s.Username = f.renameTo
	return s, true, f.store.Save(ctx, s)
}

func (f *fakeDash) ChangePassword(_ context.Context, _ models.Session, oldPassword, newPassword, confirmation string) error {
	f.calls = append(f.calls, "passwd")
	f.lastChange = [3]string{oldPassword, newPassword, confirmation}
	return f.changeErr
}

func (f *fakeDash) Theme(context.Context) (models.Theme, error) {
	if f.theme == "" {
		return models.ThemeDark, nil
	}
	return f.theme, nil
}

func (f *fakeDash) ToggleTheme(ctx context.Context) (models.Theme, error) {
	th, _ := f.Theme(ctx)
	f.theme = th.Toggle()
	return f.theme, nil
}

type fakeData struct {
	calls []string

	upload    *models.DataUpload
	uploadErr error

	insights    string
	insightsErr error

	charts    []models.ChartSpec
	chartsErr error

	answer string
	askErr error
}

func (f *fakeData) Upload(_ context.Context, _ models.Session, ds *models.DataSession, _ string) (*models.DataUpload, error) {
	f.calls = append(f.calls, "upload")
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	ds.CurrentFile = f.upload.Filename
	return f.upload, nil
}

func (f *fakeData) Insights(context.Context, models.Session, *models.DataSession) (string, error) {
	f.calls = append(f.calls, "insights")
	return f.insights, f.insightsErr
}

func (f *fakeData) Charts(context.Context, models.Session, *models.DataSession) ([]models.ChartSpec, error) {
	f.calls = append(f.calls, "charts")
	return f.charts, f.chartsErr
}

func (f *fakeData) Ask(context.Context, models.Session, *models.DataSession, string) (string, error) {
	f.calls = append(f.calls, "ask")
	return f.answer, f.askErr
}

// ---- harness ----

type harness struct {
	app    *App
	auth   *fakeAuth
	dash   *fakeDash
	data   *fakeData
	store  *session.Store
	out    *bytes.Buffer
	lines  []string
	sleeps []time.Duration
}

func (h *harness) printed() string { return strings.Join(h.lines, "\n") }

// newHarness builds an App on fakes and an in-memory session store and
// stubs every output and pause seam.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db)
	h := &harness{
		auth:  &fakeAuth{store: store, loginToken: "opaque-token"},
		dash:  &fakeDash{store: store},
		data:  &fakeData{},
		store: store,
		out:   &bytes.Buffer{},
	}
	h.app = &App{
		config:      &config.Config{ChartsDir: t.TempDir()},
		contract:    client.ContractBearer,
		db:          db,
		store:       store,
		authService: h.auth,
		dashService: h.dash,
		dataService: h.data,
		log:         logging.Discard(),
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         h.out,
		style:       render.NewStyle(models.ThemeDark, true),
		page:        PageAuth,
	}

	origPrintln, origSleep := printlnFn, sleepFn
	printlnFn = func(a ...any) (int, error) {
		h.lines = append(h.lines, fmt.Sprint(a...))
		return 0, nil
	}
	sleepFn = func(_ context.Context, d time.Duration) { h.sleeps = append(h.sleeps, d) }
	t.Cleanup(func() {
		printlnFn = origPrintln
		sleepFn = origSleep
	})
	return h
}

// signIn stores a session and opens the dashboard.
func (h *harness) signIn(t *testing.T, username string) {
	t.Helper()
	require.NoError(t, h.store.Save(context.Background(), models.Session{Username: username, Token: "opaque-token"}))
	h.app.navigate(context.Background(), PageDashboard)
	require.Equal(t, PageDashboard, h.app.page)
}

// stubText answers text prompts in order and records the defaults offered.
func stubText(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var defaults []string
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, def string, _ io.Writer) (string, error) {
		defaults = append(defaults, def)
		if len(answers) == 0 {
			return def, nil
		}
		a := answers[0]
		answers = answers[1:]
		if a == "" {
			return def, nil
		}
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
	return &defaults
}

// stubPasswords answers password prompts in order and records the labels.
func stubPasswords(t *testing.T, pws ...string) *[]string {
	t.Helper()
	var labels []string
	orig := getPassword
	getPassword = func(_ io.Writer, label string) ([]byte, error) {
		labels = append(labels, label)
		if len(pws) == 0 {
			return []byte{}, nil
		}
		p := pws[0]
		pws = pws[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() { getPassword = orig })
	return &labels
}
