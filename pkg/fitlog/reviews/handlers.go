package reviews

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/dates"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Handler handles weekly review requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new reviews handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UpsertReviewRequest represents the Sunday check-in form. The week
// defaults to the current one when week_start_date is omitted.
type UpsertReviewRequest struct {
	WeekStartDate   string `json:"week_start_date"`
	WentWell        string `json:"went_well"`
	NeedsAdjustment string `json:"needs_adjustment"`
	WorkoutsTarget  *int   `json:"workouts_target" binding:"omitempty,min=0,max=14"`
}

// Upsert records the weekly review, computing that week's stats from
// the stored logs at write time.
// @Summary Record a weekly review
// @Description Save the Sunday check-in for a week, snapshotting the week's weight average, workout count, and habit completion
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body UpsertReviewRequest true "Review form"
// @Success 200 {object} models.WeeklyReview
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reviews [post]
func (h *Handler) Upsert(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req UpsertReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStart := req.WeekStartDate
	if weekStart == "" {
		weekStart = dates.FormatISO(dates.WeekStart(dates.Now()))
	} else {
		parsed, err := dates.ParseISO(weekStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_start_date must be YYYY-MM-DD"})
			return
		}
		// Snap to the Sunday that starts that week
		weekStart = dates.FormatISO(dates.WeekStart(parsed))
	}
	start, _ := dates.ParseISO(weekStart)
	weekEnd := dates.FormatISO(dates.WeekEnd(start))

	review := models.WeeklyReview{
		UserID:          userID,
		WeekStartDate:   weekStart,
		WentWell:        req.WentWell,
		NeedsAdjustment: req.NeedsAdjustment,
		WorkoutsTarget:  5,
	}
	if req.WorkoutsTarget != nil {
		review.WorkoutsTarget = *req.WorkoutsTarget
	}

	// Snapshot the week's numbers
	var avg *float64
	h.db.Model(&models.WeightLog{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, weekStart, weekEnd).
		Select("AVG(weight)").Scan(&avg)
	review.WeightAvg = avg

	var workoutCount int64
	h.db.Model(&models.Workout{}).
		Where("user_id = ? AND date >= ? AND date <= ? AND completed = ?", userID, weekStart, weekEnd, true).
		Count(&workoutCount)
	review.WorkoutsCompleted = int(workoutCount)

	var habitLogs []models.HabitLog
	h.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, weekStart, weekEnd).Find(&habitLogs)
	for _, log := range habitLogs {
		if log.Meditation || log.Journal {
			review.HabitsCompleted++
		}
	}
	review.HabitsTotal = 7

	if err := h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"weight_avg", "workouts_completed", "workouts_target",
			"habits_completed", "habits_total", "went_well", "needs_adjustment", "updated_at",
		}),
	}).Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// List returns past reviews, newest first
// @Summary List weekly reviews
// @Description List past weekly reviews, newest first
// @Tags reviews
// @Produce json
// @Param limit query int false "Max rows (default 12)"
// @Success 200 {array} models.WeeklyReview
// @Security BearerAuth
// @Router /reviews [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	limit := 12
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var reviews []models.WeeklyReview
	if err := h.db.Where("user_id = ?", userID).
		Order("week_start_date DESC").Limit(limit).Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// RegisterRoutes registers review routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Upsert)
	rg.GET("/reviews", h.List)
}
