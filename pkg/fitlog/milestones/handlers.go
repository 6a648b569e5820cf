package milestones

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/dates"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"github.com/mpetersen/fitlog/pkg/fitlog/workouts"
	"gorm.io/gorm"
)

// MonthlyWeightTargets is the plan year's weight trajectory in lbs,
// ending at the December goal. Static configuration, read-only.
var MonthlyWeightTargets = map[int]float64{
	1:  218,
	2:  216,
	3:  214,
	4:  212,
	5:  210,
	6:  208,
	7:  206,
	8:  204,
	9:  202,
	10: 200,
	11: 197,
	12: 195,
}

// Handler handles milestone requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new milestones handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func yearParam(c *gin.Context) int {
	year := dates.Now().Year()
	if y := c.Query("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil && parsed >= 2000 && parsed <= 2100 {
			year = parsed
		}
	}
	return year
}

// List returns the user's milestones for a year
// @Summary List milestones
// @Description List the monthly milestones for a year (default: current year)
// @Tags milestones
// @Produce json
// @Param year query int false "Plan year"
// @Success 200 {array} models.Milestone
// @Security BearerAuth
// @Router /milestones [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	year := yearParam(c)

	var milestones []models.Milestone
	if err := h.db.Where("user_id = ? AND year = ?", userID, year).
		Order("month ASC").Find(&milestones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch milestones"})
		return
	}

	c.JSON(http.StatusOK, milestones)
}

// SeedRequest represents a request to seed a plan year
type SeedRequest struct {
	Year int `json:"year"`
}

// Seed creates the 12 monthly milestones for a plan year from the
// static weight trajectory and the lift progression.
// @Summary Seed a plan year
// @Description Create 12 monthly milestones with weight and lift targets. Fails if the year is already seeded.
// @Tags milestones
// @Accept json
// @Produce json
// @Param request body SeedRequest false "Plan year (default: current year)"
// @Success 201 {array} models.Milestone
// @Failure 409 {object} map[string]string "Year already seeded"
// @Security BearerAuth
// @Router /milestones/seed [post]
func (h *Handler) Seed(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Year = 0
	}
	if req.Year == 0 {
		req.Year = dates.Now().Year()
	}
	if req.Year < 2000 || req.Year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	var existing int64
	h.db.Model(&models.Milestone{}).Where("user_id = ? AND year = ?", userID, req.Year).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Milestones already seeded for this year"})
		return
	}

	milestones := make([]models.Milestone, 0, 12)
	for month := 1; month <= 12; month++ {
		weight := MonthlyWeightTargets[month]
		milestones = append(milestones, models.Milestone{
			UserID:        userID,
			Year:          req.Year,
			Month:         month,
			TargetWeight:  &weight,
			TargetLifts:   workouts.MonthlyLiftTargets(month),
			AchievedLifts: models.LiftAchievements{},
		})
	}

	if err := h.db.Create(&milestones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed milestones"})
		return
	}

	c.JSON(http.StatusCreated, milestones)
}

// UpdateMilestoneRequest represents a partial milestone update
type UpdateMilestoneRequest struct {
	TargetWeight   *float64                `json:"target_weight"`
	TargetLifts    models.LiftTargets      `json:"target_lifts"`
	AchievedWeight *bool                   `json:"achieved_weight"`
	AchievedLifts  models.LiftAchievements `json:"achieved_lifts"`
}

// Update patches one milestone
// @Summary Update a milestone
// @Description Patch a milestone's targets or achievements
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path int true "Milestone ID"
// @Param request body UpdateMilestoneRequest true "Fields to update"
// @Success 200 {object} models.Milestone
// @Failure 404 {object} map[string]string "Milestone not found"
// @Security BearerAuth
// @Router /milestones/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	milestoneID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid milestone ID"})
		return
	}

	var milestone models.Milestone
	if err := h.db.Where("id = ? AND user_id = ?", milestoneID, userID).First(&milestone).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		return
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TargetWeight != nil {
		milestone.TargetWeight = req.TargetWeight
	}
	if req.TargetLifts != nil {
		milestone.TargetLifts = req.TargetLifts
	}
	if req.AchievedWeight != nil {
		milestone.AchievedWeight = *req.AchievedWeight
	}
	if req.AchievedLifts != nil {
		milestone.AchievedLifts = req.AchievedLifts
	}

	if err := h.db.Save(&milestone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update milestone"})
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// RegisterRoutes registers milestone routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/milestones", h.List)
	rg.POST("/milestones/seed", h.Seed)
	rg.PATCH("/milestones/:id", h.Update)
}
