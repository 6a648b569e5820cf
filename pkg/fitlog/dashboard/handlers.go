package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/dates"
	"github.com/mpetersen/fitlog/pkg/fitlog/habits"
	"github.com/mpetersen/fitlog/pkg/fitlog/milestones"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"github.com/mpetersen/fitlog/pkg/fitlog/workouts"
	"gorm.io/gorm"
)

// OnTrackTolerance is how far above the month's target weight still
// counts as on track, in lbs.
const OnTrackTolerance = 2.0

// Handler handles dashboard aggregation requests
type Handler struct {
	db     *gorm.DB
	habits *habits.Handler
}

// NewHandler creates a new dashboard handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, habits: habits.NewHandler(db)}
}

func (h *Handler) latestWeight(userID uint, until string) *models.WeightLog {
	var log models.WeightLog
	err := h.db.Where("user_id = ? AND date <= ?", userID, until).
		Order("date DESC").First(&log).Error
	if err != nil {
		return nil
	}
	return &log
}

func (h *Handler) weightAvg(userID uint, from, to string) *float64 {
	var avg *float64
	h.db.Model(&models.WeightLog{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Select("AVG(weight)").Scan(&avg)
	return avg
}

func (h *Handler) workoutCount(userID uint, from, to string) int64 {
	var count int64
	h.db.Model(&models.Workout{}).
		Where("user_id = ? AND date >= ? AND date <= ? AND completed = ?", userID, from, to, true).
		Count(&count)
	return count
}

// monthTarget looks up the user's milestone for the month, falling
// back to the static trajectory when the year isn't seeded.
func (h *Handler) monthTarget(userID uint, year, month int) *float64 {
	var milestone models.Milestone
	err := h.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&milestone).Error
	if err == nil && milestone.TargetWeight != nil {
		return milestone.TargetWeight
	}
	if target, ok := milestones.MonthlyWeightTargets[month]; ok {
		return &target
	}
	return nil
}

// Today returns the day-at-a-glance summary
// @Summary Today's dashboard
// @Description Current weight and trend, today's metrics, the scheduled workout, and the habit streak
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/today [get]
func (h *Handler) Today(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	now := dates.Now()
	today := dates.FormatISO(now)
	yesterday := dates.FormatISO(now.AddDate(0, 0, -1))
	weekAgo := dates.FormatISO(now.AddDate(0, 0, -6))

	weight := gin.H{"current": nil, "change_vs_yesterday": nil, "avg_7day": nil, "on_track": nil}
	if latest := h.latestWeight(userID, today); latest != nil {
		weight["current"] = latest.Weight

		var prior models.WeightLog
		if err := h.db.Where("user_id = ? AND date <= ?", userID, yesterday).
			Order("date DESC").First(&prior).Error; err == nil {
			weight["change_vs_yesterday"] = latest.Weight - prior.Weight
		}
		if avg := h.weightAvg(userID, weekAgo, today); avg != nil {
			weight["avg_7day"] = *avg
		}
		if target := h.monthTarget(userID, now.Year(), int(now.Month())); target != nil {
			weight["month_target"] = *target
			weight["on_track"] = latest.Weight <= *target+OnTrackTolerance
		}
	}

	var steps models.StepsLog
	var stepsToday interface{}
	if err := h.db.Where("user_id = ? AND date = ?", userID, today).First(&steps).Error; err == nil {
		stepsToday = steps.Steps
	}
	var sleep models.SleepLog
	var sleepToday interface{}
	if err := h.db.Where("user_id = ? AND date = ?", userID, today).First(&sleep).Error; err == nil {
		sleepToday = sleep.Hours
	}
	var nutrition models.NutritionLog
	var caloriesToday interface{}
	if err := h.db.Where("user_id = ? AND date = ?", userID, today).First(&nutrition).Error; err == nil && nutrition.Calories != nil {
		caloriesToday = *nutrition.Calories
	}

	workout := gin.H{"rest_day": true, "logged": false}
	if scheduled, ok := workouts.ScheduledWorkout(now); ok {
		workout["rest_day"] = false
		workout["scheduled"] = scheduled
	}
	var loggedCount int64
	h.db.Model(&models.Workout{}).Where("user_id = ? AND date = ?", userID, today).Count(&loggedCount)
	workout["logged"] = loggedCount > 0

	var habitLog models.HabitLog
	habitToday := gin.H{"meditation": false, "journal": false, "creatine": false}
	if err := h.db.Where("user_id = ? AND date = ?", userID, today).First(&habitLog).Error; err == nil {
		habitToday = gin.H{
			"meditation": habitLog.Meditation,
			"journal":    habitLog.Journal,
			"creatine":   habitLog.Creatine,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     today,
		"weight":   weight,
		"steps":    stepsToday,
		"sleep":    sleepToday,
		"calories": caloriesToday,
		"workout":  workout,
		"habits":   habitToday,
		"streak":   h.habits.Streak(userID, now),
	})
}

// Week returns the current week's summary
// @Summary This week's dashboard
// @Description Weight average, workout count against target, and habit days for the current Sunday-to-Saturday week
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/week [get]
func (h *Handler) Week(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	now := dates.Now()
	from := dates.FormatISO(dates.WeekStart(now))
	to := dates.FormatISO(dates.WeekEnd(now))

	var habitDays int
	var habitLogs []models.HabitLog
	h.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).Find(&habitLogs)
	for _, log := range habitLogs {
		if log.Meditation || log.Journal {
			habitDays++
		}
	}

	var workoutList []models.Workout
	h.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").Find(&workoutList)

	c.JSON(http.StatusOK, gin.H{
		"week_start":         from,
		"week_end":           to,
		"weight_avg":         h.weightAvg(userID, from, to),
		"workouts_completed": h.workoutCount(userID, from, to),
		"workouts_target":    5,
		"workouts":           workoutList,
		"habit_days":         habitDays,
	})
}

// Month returns the current month's summary
// @Summary This month's dashboard
// @Description Weight trend against the month's milestone target and workout totals by type
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/month [get]
func (h *Handler) Month(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	now := dates.Now()
	from := dates.FormatISO(dates.MonthStart(now))
	to := dates.FormatISO(dates.MonthEnd(now))
	today := dates.FormatISO(now)

	resp := gin.H{
		"month":              int(now.Month()),
		"year":               now.Year(),
		"weight_avg":         h.weightAvg(userID, from, to),
		"workouts_completed": h.workoutCount(userID, from, to),
	}

	byType := map[string]int64{}
	for _, wt := range models.WorkoutTypes() {
		var count int64
		h.db.Model(&models.Workout{}).
			Where("user_id = ? AND date >= ? AND date <= ? AND workout_type = ? AND completed = ?",
				userID, from, to, wt, true).
			Count(&count)
		if count > 0 {
			byType[string(wt)] = count
		}
	}
	resp["workouts_by_type"] = byType

	if target := h.monthTarget(userID, now.Year(), int(now.Month())); target != nil {
		resp["target_weight"] = *target
		if latest := h.latestWeight(userID, today); latest != nil {
			resp["current_weight"] = latest.Weight
			resp["on_track"] = latest.Weight <= *target+OnTrackTolerance
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Quarter returns the current quarter's summary
// @Summary This quarter's dashboard
// @Description Weight change over the quarter and aggregate workout counts
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/quarter [get]
func (h *Handler) Quarter(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	now := dates.Now()
	from := dates.FormatISO(dates.QuarterStart(now))
	to := dates.FormatISO(dates.QuarterEnd(now))

	resp := gin.H{
		"quarter":            dates.Quarter(now),
		"year":               now.Year(),
		"weight_avg":         h.weightAvg(userID, from, to),
		"workouts_completed": h.workoutCount(userID, from, to),
	}

	// Weight change across the quarter: first and latest reading in range
	var first, last models.WeightLog
	firstErr := h.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").First(&first).Error
	lastErr := h.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").First(&last).Error
	if firstErr == nil && lastErr == nil {
		resp["start_weight"] = first.Weight
		resp["end_weight"] = last.Weight
		resp["weight_change"] = last.Weight - first.Weight
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/today", h.Today)
	rg.GET("/dashboard/week", h.Week)
	rg.GET("/dashboard/month", h.Month)
	rg.GET("/dashboard/quarter", h.Quarter)
}
