package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/civicworks/hazard-portal/internal/auth"
	"github.com/civicworks/hazard-portal/internal/models"
	"github.com/civicworks/hazard-portal/internal/service"
)

func newAdminRFIDTestHandler(pins *pinRepoStub, scans *scanRepoStub) *AdminRFIDHandler {
	svc := service.NewRFIDService(pins, scans, nil, time.Minute, nil, zap.NewNop())
	sessions := auth.NewSessionManager("test-secret", 3600)
	return NewAdminRFIDHandler(svc, sessions)
}

func TestAddPinEndpoint(t *testing.T) {
	pins := &pinRepoStub{createID: 8}
	handler := newAdminRFIDTestHandler(pins, &scanRepoStub{})

	w, c := postJSON(t, "/api/admin/pins", gin.H{"pin": "2468", "teacher_name": "Ms. Rivera"})
	handler.AddPin(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(8), body["pin_id"])
	assert.Equal(t, "PIN added successfully", body["message"])
}

func TestAddPinEndpointDuplicate(t *testing.T) {
	pins := &pinRepoStub{existing: map[string]bool{"1234": true}}
	handler := newAdminRFIDTestHandler(pins, &scanRepoStub{})

	w, c := postJSON(t, "/api/admin/pins", gin.H{"pin": "1234", "teacher_name": "X"})
	handler.AddPin(c)

	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "PIN already exists", body["error"])
}

func TestAddPinEndpointBadFormat(t *testing.T) {
	handler := newAdminRFIDTestHandler(&pinRepoStub{}, &scanRepoStub{})

	w, c := postJSON(t, "/api/admin/pins", gin.H{"pin": "12345", "teacher_name": "X"})
	handler.AddPin(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "PIN must be 4 digits", body["error"])
}

func TestDeletePinEndpointIdempotent(t *testing.T) {
	handler := newAdminRFIDTestHandler(&pinRepoStub{}, &scanRepoStub{})

	w, c := postJSON(t, "/api/admin/pins/404", nil)
	c.Request.Method = http.MethodDelete
	c.Params = gin.Params{{Key: "id", Value: "404"}}
	handler.DeletePin(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "PIN deleted successfully", body["message"])
}

func TestTogglePinEndpoint(t *testing.T) {
	pins := &pinRepoStub{byID: map[int64]*models.TeacherPin{
		3: {ID: 3, Pin: "1234", IsActive: true},
	}}
	handler := newAdminRFIDTestHandler(pins, &scanRepoStub{})

	w, c := postJSON(t, "/api/admin/pins/3/toggle", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	handler.TogglePin(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["is_active"])
	assert.Equal(t, "PIN status updated", body["message"])
}

func TestTogglePinEndpointNotFound(t *testing.T) {
	handler := newAdminRFIDTestHandler(&pinRepoStub{}, &scanRepoStub{})

	w, c := postJSON(t, "/api/admin/pins/99/toggle", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	handler.TogglePin(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "PIN not found", body["error"])
}

func TestLogsEndpoint(t *testing.T) {
	now := time.Now()
	scans := &scanRepoStub{
		logs: []models.RFIDLog{
			{ID: 2, UserType: models.UserTypeTeacher, CardID: models.CardIDPinAuth, ScanTimestamp: now, IsVerified: true},
			{ID: 1, UserType: models.UserTypeStudent, CardID: "CARD-001", ScanTimestamp: now.Add(-time.Minute), IsVerified: true},
		},
		total: 2,
	}
	handler := newAdminRFIDTestHandler(&pinRepoStub{}, scans)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/api/admin/rfid-logs?limit=50&offset=0", nil)
	require.NoError(t, err)
	c.Request = req
	handler.Logs(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, float64(50), body["limit"])
	logs, ok := body["logs"].([]interface{})
	require.True(t, ok)
	assert.Len(t, logs, 2)
}

func TestListPinsEndpoint(t *testing.T) {
	pins := &pinRepoStub{pins: []models.TeacherPin{
		{ID: 1, Pin: "1234", TeacherName: "Teacher 1234", IsActive: true},
	}}
	handler := newAdminRFIDTestHandler(pins, &scanRepoStub{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/api/admin/pins", nil)
	require.NoError(t, err)
	c.Request = req
	handler.ListPins(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	list, ok := body["pins"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}
