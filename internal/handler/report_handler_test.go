package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/civicworks/hazard-portal/internal/models"
	"github.com/civicworks/hazard-portal/internal/service"
)

type reportRepoStub struct {
	createID int64
	created  *models.HazardReport
	reports  []models.HazardReport
	resolved []int64
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.HazardReport) (int64, error) {
	s.created = report
	report.ID = s.createID
	return s.createID, nil
}

func (s *reportRepoStub) List(ctx context.Context) ([]models.HazardReport, error) {
	return s.reports, nil
}

func (s *reportRepoStub) Resolve(ctx context.Context, id int64, afterImage string, resolvedAt time.Time) error {
	s.resolved = append(s.resolved, id)
	return nil
}

type imageStoreStub struct {
	files map[string][]byte
}

func (s *imageStoreStub) Save(filename string, data []byte) (string, error) {
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[filename] = data
	return filename, nil
}

func newReportTestHandler(repo *reportRepoStub) *ReportHandler {
	svc := service.NewReportService(repo, &imageStoreStub{}, &imageStoreStub{}, validator.New(), zap.NewNop(), nil)
	return NewReportHandler(svc)
}

func testDataURI() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
}

func TestCreateReportEndpoint(t *testing.T) {
	repo := &reportRepoStub{createID: 31}
	handler := newReportTestHandler(repo)

	w, c := postJSON(t, "/api/report", gin.H{
		"before_image": testDataURI(),
		"description":  "Pothole on Main St",
		"latitude":     40.7128,
		"longitude":    -74.006,
	})
	handler.Create(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(31), body["report_id"])
	assert.Equal(t, "Hazard reported successfully", body["message"])
}

func TestCreateReportEndpointMissingField(t *testing.T) {
	handler := newReportTestHandler(&reportRepoStub{})

	w, c := postJSON(t, "/api/report", gin.H{
		"before_image": testDataURI(),
		"latitude":     40.7128,
		"longitude":    -74.006,
	})
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Missing required field: description", body["error"])
}

func TestCreateReportEndpointBadImage(t *testing.T) {
	handler := newReportTestHandler(&reportRepoStub{})

	w, c := postJSON(t, "/api/report", gin.H{
		"before_image": "nonsense",
		"description":  "x",
		"latitude":     1.0,
		"longitude":    1.0,
	})
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid image format", body["error"])
}

func TestResolveReportEndpoint(t *testing.T) {
	repo := &reportRepoStub{}
	handler := newReportTestHandler(repo)

	w, c := postJSON(t, "/admin/resolve/5", gin.H{"after_image": testDataURI()})
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	handler.Resolve(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Hazard marked as resolved", body["message"])
	assert.Equal(t, []int64{5}, repo.resolved)
}

func TestResolveReportEndpointInvalidImage(t *testing.T) {
	handler := newReportTestHandler(&reportRepoStub{})

	w, c := postJSON(t, "/admin/resolve/5", gin.H{"after_image": "plain text"})
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	handler.Resolve(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid after image", body["error"])
}

func TestResolveReportEndpointBadID(t *testing.T) {
	handler := newReportTestHandler(&reportRepoStub{})

	w, c := postJSON(t, "/admin/resolve/abc", gin.H{"after_image": testDataURI()})
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Resolve(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "invalid report id", body["error"])
}

func TestExportReportEndpointCSV(t *testing.T) {
	repo := &reportRepoStub{reports: []models.HazardReport{
		{ID: 1, Description: "Pothole", Status: models.ReportStatusPending, DateReported: time.Now()},
	}}
	handler := newReportTestHandler(repo)

	w, c := postJSON(t, "/api/admin/reports/export?format=csv", nil)
	c.Request.Method = http.MethodGet
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "hazard_reports_")
	assert.Contains(t, w.Body.String(), "Pothole")
}
