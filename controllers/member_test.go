package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.ReminderLog{}, &models.Settings{}))
	config.DB = db
}

func memberRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/members", CreateMember)
	r.GET("/api/members", GetMembers)
	r.GET("/api/members/check-mobile", CheckMobile)
	r.PUT("/api/members/:id", UpdateMember)
	r.POST("/api/members/:id/freeze", ToggleFreeze)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createInput() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Asha",
		"mobile":      "+91 98123 45678",
		"renewalDate": "2024-01-01",
		"period":      "1 month",
		"fees":        3000,
		"category":    "General",
	}
}

func TestCreateMemberStoresNormalizedMobile(t *testing.T) {
	setupTestDB(t)
	r := memberRouter()

	w := postJSON(r, "/api/members", createInput())
	require.Equal(t, http.StatusCreated, w.Code)

	var m models.Member
	require.NoError(t, config.DB.First(&m).Error)
	assert.Equal(t, "919812345678", m.Mobile)
	assert.Equal(t, m.RenewalDate, m.OriginalDate)
	assert.Equal(t, "2024-02-01", m.DueDate)
}

func TestCreateMemberDuplicateRejectedWithoutConfirmation(t *testing.T) {
	setupTestDB(t)
	r := memberRouter()

	require.Equal(t, http.StatusCreated, postJSON(r, "/api/members", createInput()).Code)

	// Same digits, different formatting: still a duplicate.
	dup := createInput()
	dup["name"] = "Asha Again"
	dup["mobile"] = "919812345678"
	w := postJSON(r, "/api/members", dup)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error    string        `json:"error"`
		Existing models.Member `json:"existing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Asha", resp.Existing.Name)

	var count int64
	config.DB.Model(&models.Member{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateMemberDuplicateAllowedWithConfirmation(t *testing.T) {
	setupTestDB(t)
	r := memberRouter()

	require.Equal(t, http.StatusCreated, postJSON(r, "/api/members", createInput()).Code)

	dup := createInput()
	dup["name"] = "Asha Again"
	dup["confirmDuplicate"] = true
	w := postJSON(r, "/api/members", dup)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	config.DB.Model(&models.Member{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCheckMobile(t *testing.T) {
	setupTestDB(t)
	r := memberRouter()
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/members", createInput()).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/members/check-mobile?mobile=98123+45678", nil))
	require.Equal(t, http.StatusOK, w.Code)
	// "98123 45678" normalizes to a different string than the stored
	// "919812345678": not a duplicate.
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["isDuplicate"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/members/check-mobile?mobile=%2B91+98123+45678", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["isDuplicate"])
}

func TestUpdateMemberRecomputesDueDate(t *testing.T) {
	setupTestDB(t)
	r := memberRouter()
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/members", createInput()).Code)

	var m models.Member
	require.NoError(t, config.DB.First(&m).Error)

	body, _ := json.Marshal(map[string]interface{}{"period": "3 month"})
	req := httptest.NewRequest(http.MethodPut, "/api/members/"+m.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&m, "id = ?", m.ID).Error)
	assert.Equal(t, "3 month", m.Period)
	assert.Equal(t, "2024-04-01", m.DueDate)
}

func TestToggleFreeze(t *testing.T) {
	setupTestDB(t)
	r := memberRouter()
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/members", createInput()).Code)

	var m models.Member
	require.NoError(t, config.DB.First(&m).Error)
	assert.False(t, m.Freeze)

	w := postJSON(r, fmt.Sprintf("/api/members/%s/freeze", m.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&m, "id = ?", m.ID).Error)
	assert.True(t, m.Freeze)
}

func TestGetMembersFilterAndSort(t *testing.T) {
	setupTestDB(t)
	r := memberRouter()

	for i, in := range []map[string]interface{}{
		{"name": "Asha", "mobile": "9810000001", "renewalDate": "2024-01-01", "period": "1 month", "fees": 3000},
		{"name": "Binu", "mobile": "9810000002", "renewalDate": "2024-02-01", "period": "1 month", "fees": 1500},
	} {
		w := postJSON(r, "/api/members", in)
		require.Equal(t, http.StatusCreated, w.Code, "member %d", i)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/members?search=binu", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var views []models.MemberView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Binu", views[0].Name)
	// Status in the response is always the derived one.
	assert.Contains(t, utils.AllStatuses, views[0].ViewStatus)
}
