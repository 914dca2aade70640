package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
)

// DataService defines the data-analysis operations. The active file lives in
// the caller's DataSession; Upload replaces it.
type DataService interface {
	Upload(ctx context.Context, s models.Session, ds *models.DataSession, path string) (*models.DataUpload, error)
	Insights(ctx context.Context, s models.Session, ds *models.DataSession) (string, error)
	Charts(ctx context.Context, s models.Session, ds *models.DataSession) ([]models.ChartSpec, error)
	Ask(ctx context.Context, s models.Session, ds *models.DataSession, question string) (string, error)
}

type dataService struct {
	client client.Client
}

func NewDataService(c client.Client) DataService {
	return &dataService{client: c}
}

// Upload points ds at the server's canonical filename on success. A failed
// upload leaves ds unchanged.
func (d *dataService) Upload(ctx context.Context, s models.Session, ds *models.DataSession, path string) (*models.DataUpload, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFileSelected
	}
	up, err := d.client.UploadData(ctx, s, path)
	if err != nil {
		return nil, err
	}
	ds.CurrentFile = up.Filename
	return up, nil
}

func (d *dataService) Insights(ctx context.Context, s models.Session, ds *models.DataSession) (string, error) {
	if !ds.Active() {
		return "", ErrNoDataFile
	}
	return d.client.DataInsights(ctx, s, ds.CurrentFile)
}

func (d *dataService) Charts(ctx context.Context, s models.Session, ds *models.DataSession) ([]models.ChartSpec, error) {
	if !ds.Active() {
		return nil, ErrNoDataFile
	}
	return d.client.DataCharts(ctx, s, ds.CurrentFile)
}

func (d *dataService) Ask(ctx context.Context, s models.Session, ds *models.DataSession, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if !ds.Active() {
		return "", ErrNoDataFile
	}
	return d.client.DataQuery(ctx, s, ds.CurrentFile, question)
}
