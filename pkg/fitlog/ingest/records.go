package ingest

import (
	"fmt"

	"github.com/mpetersen/fitlog/pkg/fitlog/dates"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"github.com/mpetersen/fitlog/pkg/fitlog/workouts"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Plausibility bounds for typed health-import records. Values outside
// these are physiologically impossible and rejected before any write.
const (
	MinWeight     = 50.0
	MaxWeight     = 500.0
	MaxSteps      = 100000
	MaxSleepHours = 24.0
	MaxCalories   = 10000
	MaxProtein    = 1000.0
	MaxCarbs      = 2000.0
	MaxFat        = 1000.0

	MaxWorkoutMinutes  = 600
	MaxWorkoutCalories = 10000
)

// HealthRecord is one typed record from the Health Auto Export app.
// The fields that matter depend on Type: weight/steps/sleep use Value,
// nutrition uses the macro fields, workout uses Activity and the
// duration/calories pair.
type HealthRecord struct {
	Type            string   `json:"type"`
	Date            string   `json:"date"`
	Value           *float64 `json:"value"`
	Calories        *int     `json:"calories"`
	Protein         *float64 `json:"protein"`
	Carbs           *float64 `json:"carbs"`
	Fat             *float64 `json:"fat"`
	Activity        string   `json:"activity"`
	DurationMinutes *int     `json:"duration_minutes"`
	CaloriesBurned  *int     `json:"calories_burned"`
}

// normalize fills in the date default and checks format. Returns the
// date the record will be stored under.
func (r *HealthRecord) normalize() (string, error) {
	if r.Date == "" {
		return dates.Today(), nil
	}
	if !dates.IsISODate(r.Date) {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", r.Date)
	}
	return r.Date, nil
}

// validate checks the record's values against the plausibility bounds.
// It never touches storage.
func (r *HealthRecord) validate() error {
	switch r.Type {
	case "weight":
		if r.Value == nil {
			return fmt.Errorf("weight record requires value")
		}
		if *r.Value < MinWeight || *r.Value > MaxWeight {
			return fmt.Errorf("weight %.1f out of range (%v-%v lbs)", *r.Value, MinWeight, MaxWeight)
		}
	case "steps":
		if r.Value == nil {
			return fmt.Errorf("steps record requires value")
		}
		if *r.Value < 0 || *r.Value > MaxSteps {
			return fmt.Errorf("steps %.0f out of range (0-%d)", *r.Value, MaxSteps)
		}
	case "sleep":
		if r.Value == nil {
			return fmt.Errorf("sleep record requires value")
		}
		if *r.Value < 0 || *r.Value > MaxSleepHours {
			return fmt.Errorf("sleep %.1f out of range (0-%v hours)", *r.Value, MaxSleepHours)
		}
	case "nutrition":
		if r.Calories == nil && r.Protein == nil && r.Carbs == nil && r.Fat == nil {
			return fmt.Errorf("nutrition record requires at least one of calories, protein, carbs, fat")
		}
		if r.Calories != nil && (*r.Calories < 0 || *r.Calories > MaxCalories) {
			return fmt.Errorf("calories %d out of range (0-%d)", *r.Calories, MaxCalories)
		}
		if r.Protein != nil && (*r.Protein < 0 || *r.Protein > MaxProtein) {
			return fmt.Errorf("protein %.1f out of range (0-%v g)", *r.Protein, MaxProtein)
		}
		if r.Carbs != nil && (*r.Carbs < 0 || *r.Carbs > MaxCarbs) {
			return fmt.Errorf("carbs %.1f out of range (0-%v g)", *r.Carbs, MaxCarbs)
		}
		if r.Fat != nil && (*r.Fat < 0 || *r.Fat > MaxFat) {
			return fmt.Errorf("fat %.1f out of range (0-%v g)", *r.Fat, MaxFat)
		}
	case "workout":
		if r.Activity == "" {
			return fmt.Errorf("workout record requires activity")
		}
		if r.DurationMinutes != nil && (*r.DurationMinutes < 0 || *r.DurationMinutes > MaxWorkoutMinutes) {
			return fmt.Errorf("duration %d out of range (0-%d minutes)", *r.DurationMinutes, MaxWorkoutMinutes)
		}
		if r.CaloriesBurned != nil && (*r.CaloriesBurned < 0 || *r.CaloriesBurned > MaxWorkoutCalories) {
			return fmt.Errorf("calories burned %d out of range (0-%d)", *r.CaloriesBurned, MaxWorkoutCalories)
		}
	case "":
		return fmt.Errorf("record type is required")
	default:
		return fmt.Errorf("unknown record type %q", r.Type)
	}
	return nil
}

// store upserts a validated record for the owner. Returns the table
// the record landed in.
func store(db *gorm.DB, userID uint, rec HealthRecord, date string) (string, error) {
	switch rec.Type {
	case "weight":
		return "weight_logs", upsertWeight(db, userID, date, *rec.Value, models.SourceAppleHealth)
	case "steps":
		return "steps_logs", upsertSteps(db, userID, date, int(*rec.Value), models.SourceAppleHealth)
	case "sleep":
		return "sleep_logs", upsertSleep(db, userID, date, *rec.Value, models.SourceAppleHealth)
	case "nutrition":
		return "nutrition_logs", upsertNutrition(db, userID, date, rec.Calories, rec.Protein, rec.Carbs, rec.Fat, models.SourceAppleHealth)
	case "workout":
		parsed, err := dates.ParseISO(date)
		if err != nil {
			return "workouts", err
		}
		workoutType := workouts.MapActivity(rec.Activity, parsed)
		return "workouts", upsertWorkout(db, userID, date, workoutType, rec.DurationMinutes, rec.CaloriesBurned, models.SourceAppleHealth)
	}
	return "", fmt.Errorf("unknown record type %q", rec.Type)
}

func onConflictUserDate(db *gorm.DB, columns []string) *gorm.DB {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "source", "updated_at")),
	})
}

func upsertWeight(db *gorm.DB, userID uint, date string, weight float64, source models.Source) error {
	log := models.WeightLog{UserID: userID, Date: date, Weight: weight, Source: source}
	return onConflictUserDate(db, []string{"weight"}).Create(&log).Error
}

func upsertSteps(db *gorm.DB, userID uint, date string, steps int, source models.Source) error {
	log := models.StepsLog{UserID: userID, Date: date, Steps: steps, Source: source}
	return onConflictUserDate(db, []string{"steps"}).Create(&log).Error
}

func upsertSleep(db *gorm.DB, userID uint, date string, hours float64, source models.Source) error {
	log := models.SleepLog{UserID: userID, Date: date, Hours: hours, Source: source}
	return onConflictUserDate(db, []string{"hours"}).Create(&log).Error
}

func upsertNutrition(db *gorm.DB, userID uint, date string, calories *int, protein, carbs, fat *float64, source models.Source) error {
	log := models.NutritionLog{
		UserID:   userID,
		Date:     date,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Source:   source,
	}
	return onConflictUserDate(db, []string{"calories", "protein", "carbs", "fat"}).Create(&log).Error
}

func upsertWorkout(db *gorm.DB, userID uint, date string, workoutType models.WorkoutType, duration, calories *int, source models.Source) error {
	workout := models.Workout{
		UserID:          userID,
		Date:            date,
		WorkoutType:     workoutType,
		Completed:       true,
		DurationMinutes: duration,
		CaloriesBurned:  calories,
		Source:          source,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "workout_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "duration_minutes", "calories_burned", "source", "updated_at"}),
	}).Create(&workout).Error
}
