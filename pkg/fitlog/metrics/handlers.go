package metrics

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

// Handler handles manual metric logging and history requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new metrics handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// upsert replaces the row for (user_id, date), bumping source and
// updated_at alongside the value columns.
func (h *Handler) upsert(value interface{}, valueColumns []string) error {
	return h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(append(valueColumns, "source", "updated_at")),
	}).Create(value).Error
}

// dateRange applies from/to/limit query params to a metric query.
// Dates are ISO strings, so string comparison is date comparison.
func dateRange(c *gin.Context, query *gorm.DB) (*gorm.DB, bool) {
	if from := c.Query("from"); from != "" {
		if !dates.IsISODate(from) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return nil, false
		}
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		if !dates.IsISODate(to) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return nil, false
		}
		query = query.Where("date <= ?", to)
	}

	limit := 90
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 365 {
			limit = parsed
		}
	}
	return query.Order("date DESC").Limit(limit), true
}

// CreateWeightRequest represents a manual weight entry
type CreateWeightRequest struct {
	Date   string  `json:"date" binding:"required"`
	Weight float64 `json:"weight" binding:"required,min=50,max=500"`
}

// CreateWeight logs a weight reading
// @Summary Log weight
// @Description Record a weight reading for a date, replacing any earlier reading for that date
// @Tags metrics
// @Accept json
// @Produce json
// @Param request body CreateWeightRequest true "Weight entry"
// @Success 200 {object} models.WeightLog
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /weight [post]
func (h *Handler) CreateWeight(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !dates.IsISODate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return
	}

	log := models.WeightLog{UserID: userID, Date: req.Date, Weight: req.Weight, Source: models.SourceManual}
	if err := h.upsert(&log, []string{"weight"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save weight"})
		return
	}

	c.JSON(http.StatusOK, log)
}

// ListWeight returns weight history
// @Summary List weight history
// @Description List weight readings, newest first, optionally bounded by from/to dates
// @Tags metrics
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Max rows (default 90)"
// @Success 200 {array} models.WeightLog
// @Security BearerAuth
// @Router /weight [get]
func (h *Handler) ListWeight(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query, ok := dateRange(c, h.db.Where("user_id = ?", userID))
	if !ok {
		return
	}

	var logs []models.WeightLog
	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weight logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateStepsRequest represents a manual steps entry
type CreateStepsRequest struct {
	Date  string `json:"date" binding:"required"`
	Steps *int   `json:"steps" binding:"required,min=0,max=200000"`
}

// CreateSteps logs a daily step count
func (h *Handler) CreateSteps(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !dates.IsISODate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return
	}

	log := models.StepsLog{UserID: userID, Date: req.Date, Steps: *req.Steps, Source: models.SourceManual}
	if err := h.upsert(&log, []string{"steps"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save steps"})
		return
	}

	c.JSON(http.StatusOK, log)
}

// ListSteps returns step history
func (h *Handler) ListSteps(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query, ok := dateRange(c, h.db.Where("user_id = ?", userID))
	if !ok {
		return
	}

	var logs []models.StepsLog
	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch steps logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateSleepRequest represents a manual sleep entry
type CreateSleepRequest struct {
	Date  string   `json:"date" binding:"required"`
	Hours *float64 `json:"hours" binding:"required,min=0,max=24"`
}

// CreateSleep logs a night's sleep
func (h *Handler) CreateSleep(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !dates.IsISODate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return
	}

	log := models.SleepLog{UserID: userID, Date: req.Date, Hours: *req.Hours, Source: models.SourceManual}
	if err := h.upsert(&log, []string{"hours"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save sleep"})
		return
	}

	c.JSON(http.StatusOK, log)
}

// ListSleep returns sleep history
func (h *Handler) ListSleep(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query, ok := dateRange(c, h.db.Where("user_id = ?", userID))
	if !ok {
		return
	}

	var logs []models.SleepLog
	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sleep logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateNutritionRequest represents a manual nutrition entry. All
// macros are optional but at least one must be present.
type CreateNutritionRequest struct {
	Date     string   `json:"date" binding:"required"`
	Calories *int     `json:"calories" binding:"omitempty,min=0,max=20000"`
	Protein  *float64 `json:"protein" binding:"omitempty,min=0,max=1000"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,min=0,max=2000"`
	Fat      *float64 `json:"fat" binding:"omitempty,min=0,max=1000"`
}

// CreateNutrition logs daily macros
func (h *Handler) CreateNutrition(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !dates.IsISODate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return
	}
	if req.Calories == nil && req.Protein == nil && req.Carbs == nil && req.Fat == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one of calories, protein, carbs, fat is required"})
		return
	}

	log := models.NutritionLog{
		UserID:   userID,
		Date:     req.Date,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Source:   models.SourceManual,
	}
	if err := h.upsert(&log, []string{"calories", "protein", "carbs", "fat"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save nutrition"})
		return
	}

	c.JSON(http.StatusOK, log)
}

// ListNutrition returns nutrition history
func (h *Handler) ListNutrition(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query, ok := dateRange(c, h.db.Where("user_id = ?", userID))
	if !ok {
		return
	}

	var logs []models.NutritionLog
	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch nutrition logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// RegisterRoutes registers metric routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/weight", h.CreateWeight)
	rg.GET("/weight", h.ListWeight)
	rg.POST("/steps", h.CreateSteps)
	rg.GET("/steps", h.ListSteps)
	rg.POST("/sleep", h.CreateSleep)
	rg.GET("/sleep", h.ListSleep)
	rg.POST("/nutrition", h.CreateNutrition)
	rg.GET("/nutrition", h.ListNutrition)
}
