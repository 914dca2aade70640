package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/filex"
)

// PlotlyScript is the charting library the charts page loads.
const PlotlyScript = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var chartsTmpl = template.Must(template.New("charts").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.Script}}"></script>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Charts}}<div id="{{.ID}}" style="margin-bottom:20px"></div>
<script>Plotly.newPlot({{.ID}}, {{.Data}}, {{.Layout}});</script>
{{end}}</body>
</html>
`))

type chartView struct {
	ID     string
	Data   any
	Layout any
}

// ChartsPage writes an HTML page with one container per chart, chart-<idx>,
// in the order given. A chart whose plot definition does not parse is an
// error; nothing is skipped silently.
func ChartsPage(w io.Writer, title string, charts []models.ChartSpec) error {
	views := make([]chartView, 0, len(charts))
	for i, c := range charts {
		p, err := c.Plot()
		if err != nil {
			return fmt.Errorf("chart %d (%s): %w", i, c.Title, err)
		}
		views = append(views, chartView{
			ID:     fmt.Sprintf("chart-%d", i),
			Data:   rawOrNull(p.Data),
			Layout: rawOrNull(p.Layout),
		})
	}

	return chartsTmpl.Execute(w, struct {
		Title  string
		Script string
		Charts []chartView
	}{title, PlotlyScript, views})
}

// rawOrNull embeds the plot JSON in the script as is, except that "</" is
// escaped so a string value cannot close the script element.
func rawOrNull(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return template.JS(strings.ReplaceAll(string(b), "</", `<\/`))
}

// WriteChartsPage renders the charts of filename into
// <dir>/<filename>.html and returns the file's path.
func WriteChartsPage(dir, filename string, charts []models.ChartSpec) (string, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(abs, filex.SafeName(filename)+".html")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := ChartsPage(f, filename, charts); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
