package ingest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/apikeys"
	"github.com/mpetersen/fitlog/pkg/fitlog/dates"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"github.com/mpetersen/fitlog/pkg/fitlog/workouts"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxBatchRecords caps a single batch call.
const MaxBatchRecords = 100

// Handler handles ingestion requests from phone automations. These
// endpoints authenticate with API keys, not JWT sessions.
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new ingestion handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// resolveUser authenticates the request via the Authorization header
// or, failing that, the api_key body field. Writes the 401 itself so
// callers just bail on !ok. Nothing is written before this passes.
func (h *Handler) resolveUser(c *gin.Context, bodyKey string) (uint, bool) {
	key := apikeys.BearerToken(c.GetHeader("Authorization"))
	if key == "" {
		key = bodyKey
	}

	userID, err := apikeys.VerifyKey(h.db, key)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
		return 0, false
	}
	return userID, true
}

// ImportRequest is a single typed record plus the optional body
// credential.
type ImportRequest struct {
	HealthRecord
	APIKey string `json:"api_key"`
}

// Import handles one typed health record
// @Summary Import a health record
// @Description Accept one typed record (weight, steps, sleep, nutrition, workout) from Health Auto Export. Authenticates by API key.
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Typed health record"
// @Success 200 {object} map[string]interface{} "Record saved"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Router /health-import [post]
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	userID, ok := h.resolveUser(c, req.APIKey)
	if !ok {
		return
	}

	date, err := req.normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := store(h.db, userID, req.HealthRecord, date)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Str("type", req.Type).Str("date", date).
			Msg("health-import storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%s saved", req.Type),
		"table":   table,
		"date":    date,
	})
}

// ImportMethodNotAllowed answers GET probes against the import URL.
func (h *Handler) ImportMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed. POST health records to this endpoint."})
}

// BatchRequest is up to MaxBatchRecords typed records in one call.
type BatchRequest struct {
	APIKey  string         `json:"api_key"`
	Records []HealthRecord `json:"records"`
}

// BatchError reports one failed record in a batch.
type BatchError struct {
	Type  string `json:"type"`
	Date  string `json:"date"`
	Error string `json:"error"`
}

// ImportBatch handles a mixed batch of typed records. Each record is
// attempted independently: one bad record never blocks the rest.
// @Summary Import a batch of health records
// @Description Accept up to 100 typed records in one call. Records are validated and written independently; failures are reported per record.
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Batch of typed health records"
// @Success 200 {object} map[string]interface{} "Per-record import results"
// @Failure 400 {object} map[string]string "Empty or oversized batch"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Router /health-import/batch [post]
func (h *Handler) ImportBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	userID, ok := h.resolveUser(c, req.APIKey)
	if !ok {
		return
	}

	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Batch must contain at least one record"})
		return
	}
	if len(req.Records) > MaxBatchRecords {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Batch exceeds %d records", MaxBatchRecords)})
		return
	}

	imported := 0
	errors := []BatchError{}

	for _, rec := range req.Records {
		date, err := rec.normalize()
		if err == nil {
			err = rec.validate()
		}
		if err == nil {
			_, err = store(h.db, userID, rec, date)
			if err != nil {
				log.Error().Err(err).Uint("user_id", userID).Str("type", rec.Type).Str("date", date).
					Msg("batch record storage failure")
			}
		}
		if err != nil {
			errors = append(errors, BatchError{Type: rec.Type, Date: rec.Date, Error: err.Error()})
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  len(errors) == 0,
		"imported": imported,
		"failed":   len(errors),
		"errors":   errors,
	})
}

// SyncRequest is the flat combined payload sent by the iOS Shortcuts
// automation. Every metric is optional; at least one must be present.
type SyncRequest struct {
	APIKey          string   `json:"api_key"`
	Date            string   `json:"date"`
	Weight          *float64 `json:"weight"`
	Steps           *int     `json:"steps"`
	SleepHours      *float64 `json:"sleep"`
	Calories        *int     `json:"calories"`
	Protein         *float64 `json:"protein"`
	Carbs           *float64 `json:"carbs"`
	Fat             *float64 `json:"fat"`
	WorkoutType     string   `json:"workout_type"`
	WorkoutDuration *int     `json:"workout_duration"`
	WorkoutCalories *int     `json:"workout_calories"`
}

func (r *SyncRequest) hasMetric() bool {
	return r.Weight != nil || r.Steps != nil || r.SleepHours != nil ||
		r.Calories != nil || r.Protein != nil || r.Carbs != nil || r.Fat != nil ||
		r.WorkoutType != ""
}

// validate checks every present metric against the sync plausibility
// bounds. The shortcut sends whole-day aggregates, so steps and
// calories get looser caps than single typed records.
func (r *SyncRequest) validate() []string {
	var problems []string
	if r.Weight != nil && (*r.Weight < MinWeight || *r.Weight > MaxWeight) {
		problems = append(problems, fmt.Sprintf("weight %.1f out of range (%v-%v lbs)", *r.Weight, MinWeight, MaxWeight))
	}
	if r.Steps != nil && (*r.Steps < 0 || *r.Steps > 200000) {
		problems = append(problems, fmt.Sprintf("steps %d out of range (0-200000)", *r.Steps))
	}
	if r.SleepHours != nil && (*r.SleepHours < 0 || *r.SleepHours > MaxSleepHours) {
		problems = append(problems, fmt.Sprintf("sleep %.1f out of range (0-%v)", *r.SleepHours, MaxSleepHours))
	}
	if r.Calories != nil && (*r.Calories < 0 || *r.Calories > 20000) {
		problems = append(problems, fmt.Sprintf("calories %d out of range (0-20000)", *r.Calories))
	}
	if r.Protein != nil && (*r.Protein < 0 || *r.Protein > MaxProtein) {
		problems = append(problems, fmt.Sprintf("protein %.1f out of range (0-%v g)", *r.Protein, MaxProtein))
	}
	if r.Carbs != nil && (*r.Carbs < 0 || *r.Carbs > MaxCarbs) {
		problems = append(problems, fmt.Sprintf("carbs %.1f out of range (0-%v g)", *r.Carbs, MaxCarbs))
	}
	if r.Fat != nil && (*r.Fat < 0 || *r.Fat > MaxFat) {
		problems = append(problems, fmt.Sprintf("fat %.1f out of range (0-%v g)", *r.Fat, MaxFat))
	}
	if r.WorkoutDuration != nil && (*r.WorkoutDuration < 0 || *r.WorkoutDuration > MaxWorkoutMinutes) {
		problems = append(problems, fmt.Sprintf("workout_duration %d out of range (0-%d minutes)", *r.WorkoutDuration, MaxWorkoutMinutes))
	}
	if r.WorkoutCalories != nil && (*r.WorkoutCalories < 0 || *r.WorkoutCalories > MaxWorkoutCalories) {
		problems = append(problems, fmt.Sprintf("workout_calories %d out of range (0-%d)", *r.WorkoutCalories, MaxWorkoutCalories))
	}
	return problems
}

// Sync handles the combined daily payload from the Shortcuts app
// @Summary Sync daily metrics
// @Description Accept a flat payload of optional daily metrics from an iOS Shortcut. Each present metric is saved independently.
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body SyncRequest true "Daily metrics payload"
// @Success 200 {object} map[string]interface{} "Per-metric save results"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Router /shortcuts/sync [post]
func (h *Handler) Sync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	userID, ok := h.resolveUser(c, req.APIKey)
	if !ok {
		return
	}

	if !req.hasMetric() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one metric is required"})
		return
	}

	date := req.Date
	if date == "" {
		date = dates.Today()
	} else if !dates.IsISODate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date)})
		return
	}

	if problems := req.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": problems})
		return
	}

	saved := []string{}
	var errors []string

	save := func(metric string, err error) {
		if err != nil {
			log.Error().Err(err).Uint("user_id", userID).Str("metric", metric).Str("date", date).
				Msg("shortcuts sync storage failure")
			errors = append(errors, fmt.Sprintf("%s: save failed", metric))
			return
		}
		saved = append(saved, metric)
	}

	if req.Weight != nil {
		save("weight", upsertWeight(h.db, userID, date, *req.Weight, models.SourceAPI))
	}
	if req.Steps != nil {
		save("steps", upsertSteps(h.db, userID, date, *req.Steps, models.SourceAPI))
	}
	if req.SleepHours != nil {
		save("sleep", upsertSleep(h.db, userID, date, *req.SleepHours, models.SourceAPI))
	}
	if req.Calories != nil || req.Protein != nil || req.Carbs != nil || req.Fat != nil {
		save("nutrition", upsertNutrition(h.db, userID, date, req.Calories, req.Protein, req.Carbs, req.Fat, models.SourceAPI))
	}
	if req.WorkoutType != "" {
		parsed, err := dates.ParseISO(date)
		if err == nil {
			workoutType := workouts.MapActivity(req.WorkoutType, parsed)
			err = upsertWorkout(h.db, userID, date, workoutType, req.WorkoutDuration, req.WorkoutCalories, models.SourceAPI)
		}
		save("workout", err)
	}

	resp := gin.H{
		"success": len(errors) == 0,
		"date":    date,
		"saved":   saved,
		"message": fmt.Sprintf("Synced %d metric(s) for %s", len(saved), date),
	}
	if len(errors) > 0 {
		resp["errors"] = errors
	}
	c.JSON(http.StatusOK, resp)
}

// SyncUsage answers GET probes with a short usage description, handy
// when setting up the shortcut from a phone browser.
func (h *Handler) SyncUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"endpoint": "/api/shortcuts/sync",
		"method":   "POST",
		"auth":     "Authorization: Bearer <api-key> header, or api_key field in the body",
		"fields":   []string{"date", "weight", "steps", "sleep", "calories", "protein", "carbs", "fat", "workout_type", "workout_duration", "workout_calories"},
		"example":  gin.H{"api_key": "<key>", "weight": 215.5, "steps": 8500},
	})
}

// RegisterRoutes registers the ingestion routes. These sit outside the
// JWT middleware; each handler authenticates by API key itself.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/health-import", h.Import)
	rg.GET("/health-import", h.ImportMethodNotAllowed)
	rg.POST("/health-import/batch", h.ImportBatch)
	rg.POST("/shortcuts/sync", h.Sync)
	rg.GET("/shortcuts/sync", h.SyncUsage)
}
