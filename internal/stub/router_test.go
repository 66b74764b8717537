package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lagerstyring-client/internal/model"
)

func TestDeviceSearchMatchesCaseInsensitively(t *testing.T) {
	router := NewRouter(DefaultFixtures())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/devices?query=DRILL", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var devices []model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &devices))
	require.Len(t, devices, 1)
	assert.Equal(t, "Cordless drill", devices[0].Description)
}

func TestUnknownStatusReturns404(t *testing.T) {
	router := NewRouter(DefaultFixtures())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/status/999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"status not found"}`, w.Body.String())
}

func TestLoginRejectionIsReportedInBand(t *testing.T) {
	router := NewRouter(DefaultFixtures())

	body, _ := json.Marshal(model.LoginRequest{Email: "student@example.edu", Password: "wrong"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 401, resp.StatusCode)
	assert.Empty(t, resp.Token)
}

func TestSubmittedActivityGetsAnID(t *testing.T) {
	fixtures := DefaultFixtures()
	router := NewRouter(fixtures)

	body, _ := json.Marshal(model.Activity{UserID: 42, DeviceID: 1, ActivityType: model.ActivityTypeBorrow})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/activities", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var ack model.Activity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.NotZero(t, ack.ID)

	listed := fixtures.ActivitiesByUser(42)
	require.Len(t, listed, 1)
	assert.Equal(t, ack.ID, listed[0].ID)
}
