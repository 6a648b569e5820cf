package workouts

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

// Handler handles workout requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new workouts handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ExerciseSetRequest is one set within a logged workout
type ExerciseSetRequest struct {
	ExerciseName string   `json:"exercise_name" binding:"required"`
	SetNumber    int      `json:"set_number" binding:"required,min=1,max=10"`
	Reps         *int     `json:"reps" binding:"omitempty,min=0,max=100"`
	Weight       *float64 `json:"weight" binding:"omitempty,min=0,max=1000"`
}

// CreateWorkoutRequest represents the request to log a workout
type CreateWorkoutRequest struct {
	Date            string               `json:"date" binding:"required"`
	WorkoutType     models.WorkoutType   `json:"workout_type" binding:"required"`
	Completed       *bool                `json:"completed"`
	DurationMinutes *int                 `json:"duration_minutes" binding:"omitempty,min=0,max=300"`
	CaloriesBurned  *int                 `json:"calories_burned" binding:"omitempty,min=0,max=5000"`
	Notes           string               `json:"notes"`
	Exercises       []ExerciseSetRequest `json:"exercises"`
}

// Create logs a workout, replacing any prior log for the same date and
// type along with its exercise sets.
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !dates.IsISODate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return
	}
	if !req.WorkoutType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workout type"})
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	workout := models.Workout{
		UserID:          userID,
		Date:            req.Date,
		WorkoutType:     req.WorkoutType,
		Completed:       completed,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Notes:           req.Notes,
		Source:          models.SourceManual,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "workout_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"completed", "duration_minutes", "calories_burned", "notes", "source", "updated_at",
			}),
		}).Create(&workout).Error; err != nil {
			return err
		}

		// Re-fetch to get the row ID when the upsert hit an existing row
		if err := tx.Where("user_id = ? AND date = ? AND workout_type = ?",
			userID, req.Date, req.WorkoutType).First(&workout).Error; err != nil {
			return err
		}

		// Replace exercise sets wholesale
		if err := tx.Where("workout_id = ?", workout.ID).Delete(&models.ExerciseSet{}).Error; err != nil {
			return err
		}
		for _, ex := range req.Exercises {
			set := models.ExerciseSet{
				WorkoutID:    workout.ID,
				ExerciseName: ex.ExerciseName,
				SetNumber:    ex.SetNumber,
				Reps:         ex.Reps,
				Weight:       ex.Weight,
			}
			if err := tx.Create(&set).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save workout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"workout":       workout,
		"exerciseCount": len(req.Exercises),
	})
}

// List returns the user's workouts, newest first
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Preload("ExerciseSets").Where("user_id = ?", userID).Order("date DESC")

	if wt := c.Query("type"); wt != "" {
		if !models.WorkoutType(wt).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workout type"})
			return
		}
		query = query.Where("workout_type = ?", wt)
	}

	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	query = query.Limit(limit)

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	query = query.Offset(offset)

	var workouts []models.Workout
	if err := query.Find(&workouts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workouts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

// Today returns the scheduled workout for the current date, its
// template, and whether anything has been logged yet.
func (h *Handler) Today(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	today := dates.Today()

	var logged int64
	h.db.Model(&models.Workout{}).Where("user_id = ? AND date = ?", userID, today).Count(&logged)

	scheduled, ok := ScheduledWorkout(dates.Now())
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"date":      today,
			"rest_day":  true,
			"logged":    logged > 0,
			"exercises": []Exercise{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         today,
		"rest_day":     false,
		"workout_type": scheduled,
		"exercises":    TemplateFor(scheduled),
		"logged":       logged > 0,
	})
}

// RegisterRoutes registers workout routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/workouts", h.Create)
	rg.GET("/workouts", h.List)
	rg.GET("/workouts/today", h.Today)
}
