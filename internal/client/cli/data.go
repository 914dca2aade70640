package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ragdesk/internal/client/render"
	"github.com/dmitrijs2005/ragdesk/internal/client/services"
)

// DataStatus shows which file data commands act on.
func (a *App) DataStatus(context.Context) error {
	if !a.data.Active() {
		a.info(services.ErrNoDataFile.Error())
		return nil
	}
	a.info("Active file: " + a.data.CurrentFile)
	return nil
}

// UploadData uploads a tabular file, shows its preview and follows up with
// insights and charts for it.
func (a *App) UploadData(ctx context.Context, path string) error {
	if path == "" {
		var err error
		if path, err = getSimpleText(a.reader, "File path", "", a.out); err != nil {
			return err
		}
	}

	done := a.startBusy("Analyzing...")
	up, err := a.dataService.Upload(ctx, a.session, &a.data, path)
	done()
	if err != nil {
		a.fail(failureText(err, "Upload failed", prefixed("Upload failed: ")))
		return nil
	}

	a.success("File analyzed successfully!")
	if err := render.PreviewTable(a.out, up.Preview); err != nil {
		a.log.Warn(ctx, "preview render failed", "error", err)
	}

	if err := a.DataInsights(ctx); err != nil {
		return err
	}
	return a.DataCharts(ctx)
}

// DataInsights prints the generated insights verbatim.
func (a *App) DataInsights(ctx context.Context) error {
	done := a.startBusy("Loading insights...")
	defer done()

	text, err := a.dataService.Insights(ctx, a.session, &a.data)
	if err != nil {
		a.fail(failureText(err, "Failed to load insights", prefixed("Error: ")))
		return nil
	}
	a.println(a.style.Bold("Insights:"))
	a.println(text)
	return nil
}

// DataCharts writes the charts of the active file into one HTML page.
func (a *App) DataCharts(ctx context.Context) error {
	done := a.startBusy("Loading charts...")
	defer done()

	charts, err := a.dataService.Charts(ctx, a.session, &a.data)
	if err != nil {
		a.fail(failureText(err, "Failed to load charts", prefixed("Error: ")))
		return nil
	}
	if len(charts) == 0 {
		a.info("No charts available")
		return nil
	}

	path, err := render.WriteChartsPage(a.config.ChartsDir, a.data.CurrentFile, charts)
	if err != nil {
		a.log.Error(ctx, "charts page write failed", "dir", a.config.ChartsDir, "error", err)
		a.fail("Error: " + err.Error())
		return nil
	}
	a.success(fmt.Sprintf("%d chart(s) written to %s", len(charts), path))
	return nil
}

// AskData asks a question about the active file. An empty question does
// nothing.
func (a *App) AskData(ctx context.Context, question string) error {
	if strings.TrimSpace(question) == "" {
		return nil
	}
	done := a.startBusy("Thinking...")
	defer done()

	answer, err := a.dataService.Ask(ctx, a.session, &a.data, question)
	switch {
	case errors.Is(err, services.ErrEmptyQuestion):
		return nil
	case err != nil:
		a.fail(failureText(err, "Query failed", prefixed("Query failed: ")))
		return nil
	}
	a.println(answer)
	return nil
}
