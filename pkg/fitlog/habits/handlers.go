package habits

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/dates"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxStreakLookback bounds the streak scan.
const maxStreakLookback = 365

// Handler handles habit checklist requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new habits handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UpsertHabitRequest represents the daily habit checklist. Absent
// fields leave the stored value untouched on an update.
type UpsertHabitRequest struct {
	Date       string   `json:"date"`
	Meditation *bool    `json:"meditation"`
	Journal    *bool    `json:"journal"`
	Creatine   *bool    `json:"creatine"`
	SleepHours *float64 `json:"sleep_hours" binding:"omitempty,min=0,max=24"`
	Steps      *int     `json:"steps" binding:"omitempty,min=0,max=200000"`
}

// Upsert records the habit checklist for a day
// @Summary Log daily habits
// @Description Record the habit checklist for a date. Present fields overwrite, absent fields keep their stored value.
// @Tags habits
// @Accept json
// @Produce json
// @Param request body UpsertHabitRequest true "Habit checklist"
// @Success 200 {object} models.HabitLog
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /habits [post]
func (h *Handler) Upsert(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req UpsertHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := req.Date
	if date == "" {
		date = dates.Today()
	} else if !dates.IsISODate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return
	}

	var log models.HabitLog
	err := h.db.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	exists := err == nil
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habit log"})
			return
		}
		log = models.HabitLog{UserID: userID, Date: date}
	}

	if req.Meditation != nil {
		log.Meditation = *req.Meditation
	}
	if req.Journal != nil {
		log.Journal = *req.Journal
	}
	if req.Creatine != nil {
		log.Creatine = *req.Creatine
	}
	if req.SleepHours != nil {
		log.SleepHours = req.SleepHours
	}
	if req.Steps != nil {
		log.Steps = req.Steps
	}

	// Update by primary key when the row exists; a keyed upsert against
	// (user_id, date) would trip over the already-loaded ID.
	if exists {
		err = h.db.Save(&log).Error
	} else {
		err = h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"meditation", "journal", "creatine", "sleep_hours", "steps", "updated_at"}),
		}).Create(&log).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save habit log"})
		return
	}

	c.JSON(http.StatusOK, log)
}

// List returns recent habit logs plus the current streak
// @Summary List habit logs
// @Description List the last N days of habit logs with the current meditation/journal streak
// @Tags habits
// @Produce json
// @Param days query int false "Days of history (default 7)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /habits [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	days := 7
	if d := c.Query("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 && parsed <= maxStreakLookback {
			days = parsed
		}
	}

	today := dates.Now()
	from := dates.FormatISO(today.AddDate(0, 0, -(days - 1)))

	var logs []models.HabitLog
	if err := h.db.Where("user_id = ? AND date >= ?", userID, from).
		Order("date DESC").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": logs,
		"streak": h.Streak(userID, today),
	})
}

// Streak counts consecutive days ending at today where meditation or
// journal was done. Today itself doesn't break the streak while still
// unlogged; it just doesn't count yet.
func (h *Handler) Streak(userID uint, today time.Time) int {
	from := dates.FormatISO(today.AddDate(0, 0, -maxStreakLookback))

	var logs []models.HabitLog
	if err := h.db.Where("user_id = ? AND date >= ?", userID, from).
		Order("date DESC").Find(&logs).Error; err != nil {
		return 0
	}

	done := make(map[string]bool, len(logs))
	for _, log := range logs {
		if log.Meditation || log.Journal {
			done[log.Date] = true
		}
	}

	streak := 0
	day := today
	for i := 0; i <= maxStreakLookback; i++ {
		date := dates.FormatISO(day)
		if done[date] {
			streak++
		} else if i > 0 {
			// A missed past day ends the streak; an unlogged today doesn't
			break
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// RegisterRoutes registers habit routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/habits", h.Upsert)
	rg.GET("/habits", h.List)
}
