package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/client/render"
	"github.com/dmitrijs2005/ragdesk/internal/client/services"
	"github.com/dmitrijs2005/ragdesk/internal/common"
	"github.com/schollz/progressbar/v3"
)

// confirmFn is a test seam for the delete confirmation.
var confirmFn = Confirm

// ListDocuments reloads and prints the document list.
func (a *App) ListDocuments(ctx context.Context) error {
	docs, err := a.dashService.Documents(ctx, a.session)
	if err != nil {
		a.fail(failureText(err, "Failed to load documents", prefixed("Error: ")))
		return nil
	}
	a.docs = docs
	a.println(render.Documents(a.docs, a.style))
	return nil
}

// Upload sends the files one by one with a progress bar, reports how many
// made it and shows the refreshed list.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		a.fail(services.ErrNoFilesSelected.Error())
		return nil
	}

	done := a.startBusy("Uploading...")
	defer done()

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(a.out),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	var failed []string
	rep, err := a.dashService.Upload(ctx, a.session, paths, func(p string, err error) {
		if err != nil {
			failed = append(failed, filepath.Base(p))
		}
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		a.fail(failureText(err, "Upload failed", prefixed("Error: ")))
		return nil
	}

	if rep.Succeeded > 0 {
		a.success(fmt.Sprintf("Uploaded %d file(s)", rep.Succeeded))
	} else {
		a.fail("Upload failed")
	}
	if len(failed) > 0 && rep.Succeeded > 0 {
		a.info("Not uploaded: " + strings.Join(failed, ", "))
	}

	a.showRefreshed(rep.Documents, rep.Refreshed)
	return nil
}

// showRefreshed prints the reloaded document list. When the reload failed
// the previous list is kept so numbered references still resolve.
func (a *App) showRefreshed(docs []string, refreshed bool) {
	if !refreshed {
		a.fail("Failed to load documents")
		return
	}
	a.docs = docs
	a.println(render.Documents(a.docs, a.style))
}

// Delete removes a document given by name or list number after a
// confirmation. The list is reloaded whatever the outcome.
func (a *App) Delete(ctx context.Context, ref string) error {
	doc := a.resolveDocument(ref)
	a.println(doc)
	if !confirmFn("Delete this document?") {
		return nil
	}

	done := a.startBusy("Deleting...")
	defer done()

	docs, refreshed, err := a.dashService.Delete(ctx, a.session, doc)
	if err != nil {
		a.fail(failureText(err, "Delete failed", prefixed("Error: ")))
	} else {
		a.success("Deleted " + doc)
	}
	a.showRefreshed(docs, refreshed)
	return nil
}

// resolveDocument maps a 1-based list number to the document name. Anything
// else is taken as a name.
func (a *App) resolveDocument(ref string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(a.docs) {
		return a.docs[n-1]
	}
	return ref
}

// Ask answers question from the uploaded documents. An empty question does
// nothing.
func (a *App) Ask(ctx context.Context, question string, topK int, filter string, selected []string) error {
	q := models.Query{
		Question: question,
		TopK:     topK,
		Filter:   models.DocumentFilter(filter),
	}
	for _, ref := range selected {
		q.Selected = append(q.Selected, a.resolveDocument(ref))
	}
	switch q.Filter {
	case models.FilterAll, models.FilterSelected:
	default:
		return fmt.Errorf("invalid filter %q: use all or selected", filter)
	}
	if strings.TrimSpace(question) == "" {
		return nil
	}

	done := a.startBusy("Thinking...")
	defer done()

	ans, err := a.dashService.Ask(ctx, a.session, q)
	switch {
	case errors.Is(err, services.ErrEmptyQuestion):
		return nil
	case errors.Is(err, services.ErrNoAnswer):
		a.fail("No answer returned")
		return nil
	case err != nil:
		a.fail(failureText(err, "No answer returned", prefixed("Error: ")))
		return nil
	}

	a.println(render.Answer(ans, a.style))
	a.reloadHistory(ctx)
	return nil
}

func (a *App) reloadHistory(ctx context.Context) {
	h, err := a.dashService.History(ctx, a.session)
	if err != nil {
		a.log.Warn(ctx, "history reload failed", "error", err)
		return
	}
	a.history = h
}

// History lists recent conversations, or expands entry ref when given.
func (a *App) History(ctx context.Context, ref string) error {
	if ref == "" {
		h, err := a.dashService.History(ctx, a.session)
		if err != nil {
			a.fail(failureText(err, "Failed to load history", prefixed("Error: ")))
			return nil
		}
		a.history = h
		a.println(render.History(a.history, a.style))
		return nil
	}

	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(a.history) {
		return fmt.Errorf("no conversation %q (see 'history')", ref)
	}
	a.println(render.HistoryEntry(a.history[n-1], a.style))
	return nil
}

// ShowProfile reloads and prints the profile card.
func (a *App) ShowProfile(ctx context.Context) error {
	p, err := a.dashService.Profile(ctx, a.session)
	if err != nil {
		a.fail(failureText(err, "Failed to load profile", prefixed("Error: ")))
		return nil
	}
	a.profile = p
	a.println(render.Profile(p, a.style))
	return nil
}

// UpdateProfileInteractive prompts for username and email, offering the
// current values as defaults.
func (a *App) UpdateProfileInteractive(ctx context.Context) error {
	var cur models.Profile
	if a.profile != nil {
		cur = *a.profile
	} else {
		cur.Username = a.session.Username
	}

	username, err := getSimpleText(a.reader, "New username", cur.Username, a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email", cur.Email, a.out)
	if err != nil {
		return err
	}
	return a.UpdateProfile(ctx, username, email, true, true)
}

// UpdateProfile sends the new username and email. Fields not set keep their
// current value. When the server confirms a new username the dashboard
// reloads under it.
func (a *App) UpdateProfile(ctx context.Context, username, email string, setUsername, setEmail bool) error {
	if !setUsername {
		username = a.session.Username
	}
	if !setEmail && a.profile != nil {
		email = a.profile.Email
	}

	done := a.startBusy("Updating profile...")
	defer done()

	sess, renamed, err := a.dashService.UpdateProfile(ctx, a.session, username, email)
	if err != nil {
		a.fail(failureText(err, "Update failed", prefixed("Error: ")))
		return nil
	}
	a.session = sess
	a.success("Profile updated!")

	if renamed {
		sleepFn(ctx, profileReloadDelay)
		a.navigate(ctx, PageDashboard)
		return nil
	}
	if p, err := a.dashService.Profile(ctx, a.session); err == nil {
		a.profile = p
	}
	return nil
}

// ChangePassword prompts for the current password and the new one twice.
func (a *App) ChangePassword(ctx context.Context) error {
	old, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(old)

	password, confirm, err := a.readPasswordPair("New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	defer common.WipeByteArray(confirm)

	done := a.startBusy("Changing password...")
	defer done()

	err = a.dashService.ChangePassword(ctx, a.session, string(old), string(password), string(confirm))
	if err != nil {
		a.fail(failureText(err, "Password change failed", prefixed("Error: ")))
		return nil
	}
	a.success("Password changed!")
	return nil
}
