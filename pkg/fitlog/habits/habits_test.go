package habits

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/dates"
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

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	api.Use(auth.AuthMiddleware())
	handler.RegisterRoutes(api)

	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Email)
	return "Bearer " + token
}

func boolPtr(b bool) *bool { return &b }

func postHabits(t *testing.T, router *gin.Engine, user models.User, body UpsertHabitRequest) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/habits", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUpsertHabits(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	resp := postHabits(t, router, user, UpsertHabitRequest{
		Date:       "2026-01-06",
		Meditation: boolPtr(true),
		Creatine:   boolPtr(true),
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var log models.HabitLog
	if err := db.Where("user_id = ? AND date = ?", user.ID, "2026-01-06").First(&log).Error; err != nil {
		t.Fatalf("Habit log should exist: %v", err)
	}
	if !log.Meditation || !log.Creatine {
		t.Error("Meditation and creatine should be set")
	}
	if log.Journal {
		t.Error("Journal was not sent and should stay false")
	}
}

func TestUpsertHabitsPartialUpdateKeepsValues(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	postHabits(t, router, user, UpsertHabitRequest{Date: "2026-01-06", Meditation: boolPtr(true)})
	// Later the same day, only journal is checked off
	postHabits(t, router, user, UpsertHabitRequest{Date: "2026-01-06", Journal: boolPtr(true)})

	var logs []models.HabitLog
	db.Where("user_id = ? AND date = ?", user.ID, "2026-01-06").Find(&logs)
	if len(logs) != 1 {
		t.Fatalf("Expected 1 habit row, got %d", len(logs))
	}
	if !logs[0].Meditation {
		t.Error("Earlier meditation check should survive the second write")
	}
	if !logs[0].Journal {
		t.Error("Journal should now be set")
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	db := setupTestDB(t)
	handler := NewHandler(db)
	user := createTestUser(t, db, "test@example.com")

	today := dates.Now()
	for i := 0; i < 3; i++ {
		date := dates.FormatISO(today.AddDate(0, 0, -i))
		db.Create(&models.HabitLog{UserID: user.ID, Date: date, Meditation: true})
	}
	// A gap four days back, then another done day
	db.Create(&models.HabitLog{
		UserID:  user.ID,
		Date:    dates.FormatISO(today.AddDate(0, 0, -5)),
		Journal: true,
	})

	if streak := handler.Streak(user.ID, today); streak != 3 {
		t.Errorf("Expected streak 3, got %d", streak)
	}
}

func TestStreakUnloggedTodayDoesNotBreak(t *testing.T) {
	db := setupTestDB(t)
	handler := NewHandler(db)
	user := createTestUser(t, db, "test@example.com")

	today := dates.Now()
	for i := 1; i <= 4; i++ {
		date := dates.FormatISO(today.AddDate(0, 0, -i))
		db.Create(&models.HabitLog{UserID: user.ID, Date: date, Journal: true})
	}

	if streak := handler.Streak(user.ID, today); streak != 4 {
		t.Errorf("Unlogged today should not break the streak, expected 4, got %d", streak)
	}
}

func TestStreakCreatineAloneDoesNotCount(t *testing.T) {
	db := setupTestDB(t)
	handler := NewHandler(db)
	user := createTestUser(t, db, "test@example.com")

	today := dates.Now()
	db.Create(&models.HabitLog{UserID: user.ID, Date: dates.FormatISO(today), Creatine: true})

	if streak := handler.Streak(user.ID, today); streak != 0 {
		t.Errorf("Creatine alone should not count toward the streak, got %d", streak)
	}
}

func TestListHabitsIncludesStreak(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	db.Create(&models.HabitLog{UserID: user.ID, Date: dates.Today(), Meditation: true})

	req, _ := http.NewRequest("GET", "/api/habits?days=7", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response struct {
		Habits []models.HabitLog `json:"habits"`
		Streak int               `json:"streak"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if len(response.Habits) != 1 {
		t.Errorf("Expected 1 habit log, got %d", len(response.Habits))
	}
	if response.Streak != 1 {
		t.Errorf("Expected streak 1, got %d", response.Streak)
	}
}
