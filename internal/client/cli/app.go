package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/config"
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/client/render"
	"github.com/dmitrijs2005/ragdesk/internal/client/services"
	"github.com/dmitrijs2005/ragdesk/internal/client/session"
	"github.com/dmitrijs2005/ragdesk/internal/common"
	"github.com/dmitrijs2005/ragdesk/internal/logging"
)

// Page is the screen the REPL currently shows.
type Page string

const (
	PageAuth      Page = "auth"
	PageDashboard Page = "dashboard"
)

// Pauses that let the user read a success message before the view changes.
const (
	loginRedirectDelay = time.Second
	signupSwitchDelay  = 2 * time.Second
	resetRedirectDelay = 2 * time.Second
	profileReloadDelay = 1500 * time.Millisecond
)

// sleepFn is a test seam for the pauses above. It returns early when ctx is
// cancelled.
var sleepFn = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

type App struct {
	config      *config.Config
	contract    client.Contract
	db          *sql.DB
	store       *session.Store
	authService services.AuthService
	dashService services.DashboardService
	dataService services.DataService
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	style       *render.Style

	page    Page
	session models.Session
	data    models.DataSession
	docs    []string
	history []models.ConversationEntry
	profile *models.Profile
	busy    string
}

// NewApp opens the session database and wires the API client and services
// for the configured contract.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	contract, err := client.ParseContract(c.Contract)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.SessionDB, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(common.APIURL, contract, log.With("component", "api"))
	store := session.NewStore(db)

	return &App{
		config:      c,
		contract:    contract,
		db:          db,
		store:       store,
		authService: services.NewAuthService(api, store),
		dashService: services.NewDashboardService(api, store, log.With("component", "dashboard")),
		dataService: services.NewDataService(api),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		style:       render.NewStyle(models.ThemeDark, c.NoColor),
		page:        PageAuth,
	}, nil
}

// Run opens the dashboard (or the auth page if there is no valid session)
// and serves commands until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.loadTheme(ctx)
	a.info("Welcome to ragdesk (type 'help' for commands)")
	a.navigate(ctx, PageDashboard)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	if a.page != PageDashboard {
		return ""
	}
	s := a.session.Username
	if a.data.Active() {
		s += ", data: " + a.data.CurrentFile
	}
	return fmt.Sprintf("(%s)", s)
}

// navigate switches page. Opening the dashboard runs the session guard first;
// without a valid session the auth page is shown instead.
func (a *App) navigate(ctx context.Context, to Page) {
	if to == PageDashboard {
		sess, err := a.store.Guard(ctx, a.contract.RequiresToken())
		if err == nil {
			a.page = PageDashboard
			a.session = sess
			a.data = models.DataSession{}
			a.initDashboard(ctx)
			return
		}
		if !errors.Is(err, session.ErrNoSession) {
			a.log.Error(ctx, "session guard failed", "error", err)
		}
	}

	a.page = PageAuth
	a.session = models.Session{}
	a.data = models.DataSession{}
	a.docs, a.history, a.profile = nil, nil, nil
	a.info("Please log in or sign up (type 'help' for commands)")
}

// initDashboard loads profile, documents and history. Failures are logged
// and leave the corresponding view empty.
func (a *App) initDashboard(ctx context.Context) {
	var err error
	if a.profile, err = a.dashService.Profile(ctx, a.session); err != nil {
		a.log.Warn(ctx, "profile load failed", "error", err)
	}
	if a.docs, err = a.dashService.Documents(ctx, a.session); err != nil {
		a.log.Warn(ctx, "document list load failed", "error", err)
	}
	if a.history, err = a.dashService.History(ctx, a.session); err != nil {
		a.log.Warn(ctx, "history load failed", "error", err)
	}

	a.info(fmt.Sprintf("Signed in as %s: %d document(s), %d conversation(s)",
		a.session.Username, len(a.docs), len(a.history)))
}

func (a *App) loadTheme(ctx context.Context) {
	th, err := a.dashService.Theme(ctx)
	if err != nil {
		a.log.Warn(ctx, "theme load failed", "error", err)
	}
	a.style = a.style.WithTheme(th)
}

// ToggleTheme flips between dark and light and keeps the choice.
func (a *App) ToggleTheme(ctx context.Context) error {
	th, err := a.dashService.ToggleTheme(ctx)
	if err != nil {
		a.fail("Error: " + err.Error())
		return nil
	}
	a.style = a.style.WithTheme(th)
	a.success(fmt.Sprintf("Theme: %s", th))
	return nil
}
