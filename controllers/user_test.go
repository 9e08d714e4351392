package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"birthday-reminder/config"
	"birthday-reminder/models"
	"birthday-reminder/routes"
	"birthday-reminder/services"
)

type stubNotifier struct {
	calls int
}

func (s *stubNotifier) Send(ctx context.Context, to, body string) (string, time.Time, error) {
	s.calls++
	return "sent", time.Now(), nil
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *stubNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	config.DB = db

	notifier := &stubNotifier{}
	cfg := config.Config{TriggerHour: 9, MaxSendRetries: 1, RetryBackoff: time.Millisecond}
	delivery := services.NewDeliveryService(db, notifier, cfg, config.Logger)

	return routes.SetupRouter(delivery), notifier
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@example.com",
		"birth_date": "1997-02-05",
		"location":   "Asia/Jakarta",
	}
}

func TestAddUser_Defaults(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/user", validPayload())
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Success", resp.Status)
	require.Equal(t, "Success add user", resp.Message)

	var user models.User
	require.NoError(t, config.DB.First(&user, "email = ?", "jane@example.com").Error)
	require.Equal(t, models.StatusUnsent, user.StatusMessage)
	require.Nil(t, user.SentTime)
	require.Equal(t, models.DefaultMessage, user.Message)
}

func TestAddUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		message string
	}{
		{
			name:    "missing first_name",
			mutate:  func(p map[string]interface{}) { delete(p, "first_name") },
			message: `"first_name" is required`,
		},
		{
			name:    "first_name too long",
			mutate:  func(p map[string]interface{}) { p["first_name"] = strings.Repeat("a", 51) },
			message: `"first_name" must be at most 50 characters`,
		},
		{
			name:    "invalid email",
			mutate:  func(p map[string]interface{}) { p["email"] = "not-an-email" },
			message: `"email" must be a valid email`,
		},
		{
			name:    "invalid birth_date",
			mutate:  func(p map[string]interface{}) { p["birth_date"] = "05/02/1997" },
			message: `"birth_date" must be a valid date`,
		},
		{
			name:    "unknown timezone",
			mutate:  func(p map[string]interface{}) { p["location"] = "Mars/Olympus" },
			message: `"location" must be a valid timezone`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestRouter(t)

			payload := validPayload()
			tt.mutate(payload)

			w, resp := doJSON(t, r, http.MethodPost, "/api/v1/user", payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, "Failed", resp.Status)
			require.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestAddUser_Duplicate(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/user", validPayload())
	require.Equal(t, http.StatusOK, w.Code)

	// same email
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/user", validPayload())
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email or first name and last name already exist", resp.Message)

	// different email, same name pair
	payload := validPayload()
	payload["email"] = "jane.other@example.com"
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/user", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email or first name and last name already exist", resp.Message)
}

func TestGetUsers(t *testing.T) {
	r, _ := setupTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/v1/user", validPayload())

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Success get all user", resp.Message)

	var users []models.User
	require.NoError(t, json.Unmarshal(resp.Data, &users))
	require.Len(t, users, 1)
	require.Equal(t, "jane@example.com", users[0].Email)
}

func TestUpdateUser(t *testing.T) {
	r, _ := setupTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/v1/user", validPayload())

	var user models.User
	require.NoError(t, config.DB.First(&user, "email = ?", "jane@example.com").Error)

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/user/"+user.ID.String(), map[string]interface{}{
		"location": "Europe/London",
		"message":  "Happy birthday {first_name}!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Success update user", resp.Message)

	var got models.User
	require.NoError(t, config.DB.First(&got, "id = ?", user.ID).Error)
	require.Equal(t, "Europe/London", got.Location)
	require.Equal(t, "Happy birthday {first_name}!", got.Message)
	require.Equal(t, "jane@example.com", got.Email)
}

func TestUpdateUser_NotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/v1/user", validPayload())

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/user/6a7b0f44-9c4c-4f5a-8f63-000000000000", map[string]interface{}{
		"message": "hi",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User doesn't exist", resp.Message)

	// nothing mutated
	var got models.User
	require.NoError(t, config.DB.First(&got, "email = ?", "jane@example.com").Error)
	require.Equal(t, models.DefaultMessage, got.Message)
}

func TestDeleteUser(t *testing.T) {
	r, _ := setupTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/v1/user", validPayload())

	var user models.User
	require.NoError(t, config.DB.First(&user, "email = ?", "jane@example.com").Error)

	w, resp := doJSON(t, r, http.MethodDelete, "/api/v1/user/"+user.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Success delete user", resp.Message)

	var count int64
	require.NoError(t, config.DB.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteUser_NotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, resp := doJSON(t, r, http.MethodDelete, "/api/v1/user/6a7b0f44-9c4c-4f5a-8f63-000000000000", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User doesn't exist", resp.Message)
}

func TestGetZones(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/zones", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Success get all zone", resp.Message)

	var zones []string
	require.NoError(t, json.Unmarshal(resp.Data, &zones))
	require.Contains(t, zones, "Asia/Jakarta")
	require.Contains(t, zones, "UTC")
}

func TestSendBulkEmail_NoUnsentUsers(t *testing.T) {
	r, notifier := setupTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/send-bulk-email", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Success send all email", resp.Message)
	require.Zero(t, notifier.calls)
}
