package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/client/session"
	"github.com/dmitrijs2005/ragdesk/internal/logging"
)

// HistoryLimit is how many of the most recent conversations are shown.
const HistoryLimit = 20

// UploadReport summarizes a multi-file upload. Documents is the list as
// reloaded after the last file; it is only meaningful when Refreshed is set.
type UploadReport struct {
	Attempted int
	Succeeded int
	Documents []string
	Refreshed bool
}

// DashboardService defines the operations of the dashboard page. Every call
// acts on behalf of the given session.
type DashboardService interface {
	Documents(ctx context.Context, s models.Session) ([]string, error)
	Upload(ctx context.Context, s models.Session, paths []string, onFile func(path string, err error)) (UploadReport, error)
	Delete(ctx context.Context, s models.Session, doc string) (docs []string, refreshed bool, err error)
	Ask(ctx context.Context, s models.Session, q models.Query) (*models.Answer, error)
	History(ctx context.Context, s models.Session) ([]models.ConversationEntry, error)
	Profile(ctx context.Context, s models.Session) (*models.Profile, error)
	UpdateProfile(ctx context.Context, s models.Session, newUsername, newEmail string) (models.Session, bool, error)
	ChangePassword(ctx context.Context, s models.Session, oldPassword, newPassword, confirmation string) error
	Theme(ctx context.Context) (models.Theme, error)
	ToggleTheme(ctx context.Context) (models.Theme, error)
}

type dashboardService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewDashboardService(c client.Client, store *session.Store, log logging.Logger) DashboardService {
	return &dashboardService{client: c, store: store, log: log}
}

func (d *dashboardService) Documents(ctx context.Context, s models.Session) ([]string, error) {
	return d.client.ListDocuments(ctx, s)
}

// refresh reloads the document list. On failure it logs and reports false so
// callers keep the list they already have.
func (d *dashboardService) refresh(ctx context.Context, s models.Session) ([]string, bool) {
	docs, err := d.client.ListDocuments(ctx, s)
	if err != nil {
		d.log.Warn(ctx, "document list refresh failed", "error", err)
		return nil, false
	}
	return docs, true
}

// Upload sends the files one after another. A failed file does not stop the
// loop; onFile (optional) is called after each attempt.
func (d *dashboardService) Upload(ctx context.Context, s models.Session, paths []string, onFile func(string, error)) (UploadReport, error) {
	if len(paths) == 0 {
		return UploadReport{}, ErrNoFilesSelected
	}

	rep := UploadReport{Attempted: len(paths)}
	for _, p := range paths {
		err := d.client.UploadDocument(ctx, s, p)
		if err == nil {
			rep.Succeeded++
		} else {
			d.log.Warn(ctx, "upload failed", "file", p, "error", err)
		}
		if onFile != nil {
			onFile(p, err)
		}
	}

	rep.Documents, rep.Refreshed = d.refresh(ctx, s)
	return rep, nil
}

// Delete removes doc and reloads the list whatever the outcome. refreshed
// reports whether docs holds the reloaded list.
func (d *dashboardService) Delete(ctx context.Context, s models.Session, doc string) ([]string, bool, error) {
	err := d.client.DeleteDocument(ctx, s, doc)
	if err != nil {
		d.log.Warn(ctx, "delete failed", "document", doc, "error", err)
	}
	docs, refreshed := d.refresh(ctx, s)
	return docs, refreshed, err
}

func (d *dashboardService) Ask(ctx context.Context, s models.Session, q models.Query) (*models.Answer, error) {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return nil, ErrEmptyQuestion
	}
	if q.Filter == "" {
		q.Filter = models.FilterAll
	}
	if q.Filter == models.FilterSelected && len(q.Selected) == 0 {
		return nil, ErrNoDocumentsSelected
	}

	ans, err := d.client.Query(ctx, s, q)
	if err != nil {
		return nil, err
	}
	if ans == nil || ans.Answer == "" {
		return nil, ErrNoAnswer
	}
	return ans, nil
}

// History returns at most HistoryLimit entries, newest first.
func (d *dashboardService) History(ctx context.Context, s models.Session) ([]models.ConversationEntry, error) {
	all, err := d.client.History(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(all) > HistoryLimit {
		all = all[len(all)-HistoryLimit:]
	}

	out := make([]models.ConversationEntry, len(all))
	for i, e := range all {
		out[len(all)-1-i] = e
	}
	return out, nil
}

func (d *dashboardService) Profile(ctx context.Context, s models.Session) (*models.Profile, error) {
	return d.client.Profile(ctx, s)
}

// UpdateProfile returns the session as it stands afterwards and whether the
// server confirmed a different username, in which case it is already stored.
func (d *dashboardService) UpdateProfile(ctx context.Context, s models.Session, newUsername, newEmail string) (models.Session, bool, error) {
	confirmed, err := d.client.UpdateProfile(ctx, s, newUsername, newEmail)
	if err != nil {
		return s, false, err
	}
	if confirmed == "" || confirmed == s.Username {
		return s, false, nil
	}

	s.Username = confirmed
	if err := d.store.Save(ctx, s); err != nil {
		return s, true, fmt.Errorf("save session: %w", err)
	}
	return s, true, nil
}

func (d *dashboardService) ChangePassword(ctx context.Context, s models.Session, oldPassword, newPassword, confirmation string) error {
	if newPassword != confirmation {
		return ErrPasswordMismatch
	}
	return d.client.ChangePassword(ctx, s, oldPassword, newPassword)
}

func (d *dashboardService) Theme(ctx context.Context) (models.Theme, error) {
	return d.store.Theme(ctx)
}

func (d *dashboardService) ToggleTheme(ctx context.Context) (models.Theme, error) {
	cur, err := d.store.Theme(ctx)
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	if err := d.store.SetTheme(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}
