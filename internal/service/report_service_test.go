package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/civicworks/hazard-portal/internal/models"
	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
)

type mockReportRepo struct {
	created    *models.HazardReport
	createID   int64
	createErr  error
	reports    []models.HazardReport
	listErr    error
	resolvedID int64
	afterImage string
	resolveErr error
}

func (m *mockReportRepo) Create(ctx context.Context, report *models.HazardReport) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.created = report
	report.ID = m.createID
	return m.createID, nil
}

func (m *mockReportRepo) List(ctx context.Context) ([]models.HazardReport, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.reports, nil
}

func (m *mockReportRepo) Resolve(ctx context.Context, id int64, afterImage string, resolvedAt time.Time) error {
	if m.resolveErr != nil {
		return m.resolveErr
	}
	m.resolvedID = id
	m.afterImage = afterImage
	return nil
}

type mockImageStore struct {
	saved   map[string][]byte
	saveErr error
}

func (m *mockImageStore) Save(filename string, data []byte) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[filename] = data
	return filename, nil
}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
}

func newReportService(repo *mockReportRepo, before, after *mockImageStore) *ReportService {
	return NewReportService(repo, before, after, validator.New(), zap.NewNop(), []string{"png", "jpg", "jpeg", "gif", "webp"})
}

func TestReportCreateSuccess(t *testing.T) {
	repo := &mockReportRepo{createID: 12}
	before := &mockImageStore{}
	svc := newReportService(repo, before, &mockImageStore{})

	id, err := svc.Create(context.Background(), CreateReportRequest{
		BeforeImage: pngDataURI(),
		Description: "Pothole",
		Latitude:    40.7,
		Longitude:   -74.0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	require.NotNil(t, repo.created)
	assert.Equal(t, models.ReportStatusPending, repo.created.Status)
	assert.True(t, strings.HasPrefix(repo.created.BeforeImage, "hazard_"))
	assert.True(t, strings.HasSuffix(repo.created.BeforeImage, ".png"))

	require.Len(t, before.saved, 1)
	for _, data := range before.saved {
		assert.Equal(t, []byte("fake-png-bytes"), data)
	}
}

func TestReportCreateMissingFields(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockImageStore{}, &mockImageStore{})

	cases := []struct {
		name    string
		req     CreateReportRequest
		message string
	}{
		{"no image", CreateReportRequest{Description: "x", Latitude: 1, Longitude: 1}, "Missing required field: before_image"},
		{"no description", CreateReportRequest{BeforeImage: pngDataURI(), Latitude: 1, Longitude: 1}, "Missing required field: description"},
		{"no latitude", CreateReportRequest{BeforeImage: pngDataURI(), Description: "x", Longitude: 1}, "Missing required field: latitude"},
		{"no longitude", CreateReportRequest{BeforeImage: pngDataURI(), Description: "x", Latitude: 1}, "Missing required field: longitude"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			appErr := appErrors.FromError(err)
			assert.Equal(t, 400, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

func TestReportCreateRejectsNonDataURI(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockImageStore{}, &mockImageStore{})

	_, err := svc.Create(context.Background(), CreateReportRequest{
		BeforeImage: "not-a-data-uri",
		Description: "x",
		Latitude:    1,
		Longitude:   1,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid image format", appErr.Message)
}

func TestReportCreateRejectsDisallowedExtension(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockImageStore{}, &mockImageStore{})

	uri := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte("<svg/>"))
	_, err := svc.Create(context.Background(), CreateReportRequest{
		BeforeImage: uri,
		Description: "x",
		Latitude:    1,
		Longitude:   1,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid image format", appErr.Message)
}

func TestReportCreateRepoFailure(t *testing.T) {
	repo := &mockReportRepo{createErr: errors.New("disk full")}
	svc := newReportService(repo, &mockImageStore{}, &mockImageStore{})

	_, err := svc.Create(context.Background(), CreateReportRequest{
		BeforeImage: pngDataURI(),
		Description: "x",
		Latitude:    1,
		Longitude:   1,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 500, appErr.Status)
}

func TestReportResolveSuccess(t *testing.T) {
	repo := &mockReportRepo{}
	after := &mockImageStore{}
	svc := newReportService(repo, &mockImageStore{}, after)

	err := svc.Resolve(context.Background(), 5, ResolveReportRequest{AfterImage: pngDataURI()})
	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.resolvedID)
	assert.True(t, strings.HasPrefix(repo.afterImage, "resolved_"))
	assert.Len(t, after.saved, 1)
}

func TestReportResolveInvalidImage(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockImageStore{}, &mockImageStore{})

	err := svc.Resolve(context.Background(), 5, ResolveReportRequest{AfterImage: "plain text"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid after image", appErr.Message)
}

func TestReportExportCSV(t *testing.T) {
	resolved := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := &mockReportRepo{reports: []models.HazardReport{
		{ID: 1, Description: "Broken light", Latitude: 51.6, Longitude: -0.1, Status: models.ReportStatusResolved, DateReported: resolved.Add(-24 * time.Hour), DateResolved: &resolved},
	}}
	svc := newReportService(repo, &mockImageStore{}, &mockImageStore{})

	result, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "hazard_reports_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Data)
	assert.Contains(t, body, "ID,Status,Description")
	assert.Contains(t, body, "Broken light")
	assert.Contains(t, body, "Resolved")
}

func TestReportExportPDF(t *testing.T) {
	repo := &mockReportRepo{reports: []models.HazardReport{
		{ID: 1, Description: "Pothole", Status: models.ReportStatusPending, DateReported: time.Now()},
	}}
	svc := newReportService(repo, &mockImageStore{}, &mockImageStore{})

	result, err := svc.Export(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.NotEmpty(t, result.Data)
}

func TestReportExportUnknownFormat(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockImageStore{}, &mockImageStore{})

	_, err := svc.Export(context.Background(), "xlsx")
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
}
