package ingest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/apikeys"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// createAPIKey issues a key for the user and returns the plaintext.
func createAPIKey(t *testing.T, db *gorm.DB, user models.User) string {
	t.Helper()
	key, err := apikeys.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	apiKey := models.APIKey{
		UserID:    user.ID,
		KeyHash:   apikeys.HashKey(key),
		KeyPrefix: key[:apikeys.KeyPrefixLength],
		Name:      "test",
		IsActive:  true,
	}
	if err := db.Create(&apiKey).Error; err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}
	return key
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api"))
	return r
}

func postJSON(router *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestImportWeight(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	resp := postJSON(router, "/api/health-import", map[string]interface{}{
		"api_key": key,
		"type":    "weight",
		"date":    "2026-01-06",
		"value":   215.5,
	}, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["success"] != true {
		t.Error("Expected success true")
	}
	if response["table"] != "weight_logs" {
		t.Errorf("Expected table weight_logs, got %v", response["table"])
	}
	if response["date"] != "2026-01-06" {
		t.Errorf("Expected date 2026-01-06, got %v", response["date"])
	}

	var stored models.WeightLog
	if err := db.Where("user_id = ? AND date = ?", user.ID, "2026-01-06").First(&stored).Error; err != nil {
		t.Fatalf("Weight row should exist: %v", err)
	}
	if stored.Weight != 215.5 {
		t.Errorf("Expected weight 215.5, got %v", stored.Weight)
	}
	if stored.Source != models.SourceAppleHealth {
		t.Errorf("Expected source apple_health, got %s", stored.Source)
	}
}

func TestImportInvalidKey(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	createAPIKey(t, db, user)

	resp := postJSON(router, "/api/health-import", map[string]interface{}{
		"api_key": "totally-not-a-valid-key-totally-not-a-valid-key",
		"type":    "weight",
		"date":    "2026-01-06",
		"value":   215.5,
	}, nil)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}

	// Zero writes on auth failure
	var count int64
	db.Model(&models.WeightLog{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 weight rows after auth failure, got %d", count)
	}
}

func TestImportHeaderKeyWinsOverBody(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user1 := createTestUser(t, db, "user1@example.com")
	user2 := createTestUser(t, db, "user2@example.com")
	key1 := createAPIKey(t, db, user1)
	key2 := createAPIKey(t, db, user2)

	resp := postJSON(router, "/api/health-import", map[string]interface{}{
		"api_key": key2,
		"type":    "weight",
		"date":    "2026-01-06",
		"value":   215.5,
	}, map[string]string{"Authorization": "Bearer " + key1})

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// The header credential's owner gets the row
	var count int64
	db.Model(&models.WeightLog{}).Where("user_id = ?", user1.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected header key's owner to receive the row, got %d rows", count)
	}
	db.Model(&models.WeightLog{}).Where("user_id = ?", user2.ID).Count(&count)
	if count != 0 {
		t.Errorf("Body key's owner should have no rows, got %d", count)
	}
}

func TestImportOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	resp := postJSON(router, "/api/health-import", map[string]interface{}{
		"api_key": key,
		"type":    "weight",
		"date":    "2026-01-06",
		"value":   1200.0,
	}, nil)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.WeightLog{}).Count(&count)
	if count != 0 {
		t.Errorf("Out-of-range value must not be written, got %d rows", count)
	}
}

func TestImportUpsertIdempotent(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	body := map[string]interface{}{
		"api_key": key,
		"type":    "steps",
		"date":    "2026-01-06",
		"value":   8500.0,
	}
	postJSON(router, "/api/health-import", body, nil)
	postJSON(router, "/api/health-import", body, nil)

	var count int64
	db.Model(&models.StepsLog{}).Where("user_id = ? AND date = ?", user.ID, "2026-01-06").Count(&count)
	if count != 1 {
		t.Errorf("Repeated import must not duplicate rows, got %d", count)
	}

	// A second value replaces the first
	body["value"] = 9000.0
	postJSON(router, "/api/health-import", body, nil)

	var stored models.StepsLog
	db.Where("user_id = ? AND date = ?", user.ID, "2026-01-06").First(&stored)
	if stored.Steps != 9000 {
		t.Errorf("Expected last write to win, got %d steps", stored.Steps)
	}
}

func TestImportWorkoutActivityMapping(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	// Running maps straight to cardio
	resp := postJSON(router, "/api/health-import", map[string]interface{}{
		"api_key":          key,
		"type":             "workout",
		"date":             "2026-01-05",
		"activity":         "Running",
		"duration_minutes": 30,
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var workout models.Workout
	if err := db.Where("user_id = ? AND date = ?", user.ID, "2026-01-05").First(&workout).Error; err != nil {
		t.Fatalf("Workout should exist: %v", err)
	}
	if workout.WorkoutType != models.WorkoutCardio {
		t.Errorf("Running should map to cardio, got %s", workout.WorkoutType)
	}

	// Generic strength training follows the Monday schedule
	postJSON(router, "/api/health-import", map[string]interface{}{
		"api_key":  key,
		"type":     "workout",
		"date":     "2026-01-12", // a Monday
		"activity": "Traditional Strength Training",
	}, nil)

	workout = models.Workout{}
	db.Where("user_id = ? AND date = ?", user.ID, "2026-01-12").First(&workout)
	if workout.WorkoutType != models.WorkoutChestTriceps {
		t.Errorf("Strength on Monday should map to chest_triceps, got %s", workout.WorkoutType)
	}
}

func TestImportGetMethodNotAllowed(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/health-import", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", resp.Code)
	}
}

func TestBatchPartialFailure(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	resp := postJSON(router, "/api/health-import/batch", BatchRequest{
		APIKey: key,
		Records: []HealthRecord{
			{Type: "weight", Date: "2026-01-06", Value: floatPtr(215.5)},
			{Type: "weight", Date: "2026-01-07", Value: floatPtr(9999)}, // out of range
			{Type: "steps", Date: "2026-01-06", Value: floatPtr(8500)},
		},
	}, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response struct {
		Success  bool         `json:"success"`
		Imported int          `json:"imported"`
		Failed   int          `json:"failed"`
		Errors   []BatchError `json:"errors"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.Success {
		t.Error("A failed record should make overall success false")
	}
	if response.Imported != 2 {
		t.Errorf("Expected imported 2, got %d", response.Imported)
	}
	if response.Failed != 1 {
		t.Errorf("Expected failed 1, got %d", response.Failed)
	}
	if len(response.Errors) != 1 || response.Errors[0].Date != "2026-01-07" {
		t.Errorf("Expected the out-of-range record in errors, got %+v", response.Errors)
	}

	// Records 1 and 3 landed despite record 2 failing
	var weightCount, stepsCount int64
	db.Model(&models.WeightLog{}).Where("user_id = ?", user.ID).Count(&weightCount)
	db.Model(&models.StepsLog{}).Where("user_id = ?", user.ID).Count(&stepsCount)
	if weightCount != 1 || stepsCount != 1 {
		t.Errorf("Expected 1 weight and 1 steps row, got %d and %d", weightCount, stepsCount)
	}
}

func TestBatchSizeLimits(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	resp := postJSON(router, "/api/health-import/batch", BatchRequest{APIKey: key}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Empty batch: expected status 400, got %d", resp.Code)
	}

	records := make([]HealthRecord, MaxBatchRecords+1)
	for i := range records {
		records[i] = HealthRecord{Type: "steps", Date: "2026-01-06", Value: floatPtr(100)}
	}
	resp = postJSON(router, "/api/health-import/batch", BatchRequest{APIKey: key, Records: records}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Oversized batch: expected status 400, got %d", resp.Code)
	}
}

func TestSyncSavesPresentMetrics(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	resp := postJSON(router, "/api/shortcuts/sync", SyncRequest{
		APIKey: key,
		Date:   "2026-01-06",
		Weight: floatPtr(215.5),
		Steps:  intPtr(8500),
	}, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response struct {
		Success bool     `json:"success"`
		Date    string   `json:"date"`
		Saved   []string `json:"saved"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if !response.Success {
		t.Error("Expected success true")
	}
	if response.Date != "2026-01-06" {
		t.Errorf("Expected date 2026-01-06, got %s", response.Date)
	}
	if len(response.Saved) != 2 || response.Saved[0] != "weight" || response.Saved[1] != "steps" {
		t.Errorf("Expected saved [weight steps], got %v", response.Saved)
	}

	// Exactly one row per metric
	var weightCount, stepsCount, sleepCount int64
	db.Model(&models.WeightLog{}).Where("user_id = ? AND date = ?", user.ID, "2026-01-06").Count(&weightCount)
	db.Model(&models.StepsLog{}).Where("user_id = ? AND date = ?", user.ID, "2026-01-06").Count(&stepsCount)
	db.Model(&models.SleepLog{}).Count(&sleepCount)
	if weightCount != 1 || stepsCount != 1 {
		t.Errorf("Expected 1 weight and 1 steps row, got %d and %d", weightCount, stepsCount)
	}
	if sleepCount != 0 {
		t.Errorf("Absent metrics must not be written, got %d sleep rows", sleepCount)
	}
}

func TestSyncSleepFieldName(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	// The shortcut posts the sleep metric under the key "sleep"
	resp := postJSON(router, "/api/shortcuts/sync", map[string]interface{}{
		"api_key": key,
		"date":    "2026-01-06",
		"sleep":   7.5,
	}, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response struct {
		Saved []string `json:"saved"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)
	if len(response.Saved) != 1 || response.Saved[0] != "sleep" {
		t.Fatalf("Expected saved [sleep], got %v", response.Saved)
	}

	var log models.SleepLog
	if err := db.Where("user_id = ? AND date = ?", user.ID, "2026-01-06").First(&log).Error; err != nil {
		t.Fatalf("Sleep row should exist: %v", err)
	}
	if log.Hours != 7.5 {
		t.Errorf("Expected 7.5 hours, got %v", log.Hours)
	}
}

func TestSyncRequiresAMetric(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	resp := postJSON(router, "/api/shortcuts/sync", SyncRequest{APIKey: key, Date: "2026-01-06"}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSyncOutOfRangeRejectsBeforeWrite(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	// Weight is fine, steps are impossible; nothing may be written
	resp := postJSON(router, "/api/shortcuts/sync", SyncRequest{
		APIKey: key,
		Date:   "2026-01-06",
		Weight: floatPtr(215.5),
		Steps:  intPtr(999999),
	}, nil)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.WeightLog{}).Count(&count)
	if count != 0 {
		t.Errorf("Validation failure must reject before any write, got %d weight rows", count)
	}
}

func TestSyncRevokedKey(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	db.Model(&models.APIKey{}).Where("user_id = ?", user.ID).Update("is_active", false)

	resp := postJSON(router, "/api/shortcuts/sync", SyncRequest{
		APIKey: key,
		Weight: floatPtr(215.5),
	}, nil)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for revoked key, got %d", resp.Code)
	}
}

func TestSyncWorkoutMapping(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	key := createAPIKey(t, db, user)

	resp := postJSON(router, "/api/shortcuts/sync", SyncRequest{
		APIKey:          key,
		Date:            "2026-01-07", // a Wednesday
		WorkoutType:     "Functional Strength Training",
		WorkoutDuration: intPtr(45),
		WorkoutCalories: intPtr(350),
	}, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var workout models.Workout
	if err := db.Where("user_id = ? AND date = ?", user.ID, "2026-01-07").First(&workout).Error; err != nil {
		t.Fatalf("Workout should exist: %v", err)
	}
	if workout.WorkoutType != models.WorkoutShouldersBiceps {
		t.Errorf("Strength on Wednesday should map to shoulders_biceps, got %s", workout.WorkoutType)
	}
	if workout.DurationMinutes == nil || *workout.DurationMinutes != 45 {
		t.Error("Workout duration should be stored")
	}
	if workout.Source != models.SourceAPI {
		t.Errorf("Expected source api, got %s", workout.Source)
	}
}

func TestSyncGetReturnsUsage(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/shortcuts/sync", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["method"] != "POST" {
		t.Error("Usage info should tell the caller to POST")
	}
}
