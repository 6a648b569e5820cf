package models

import "time"

// WorkoutType is the fixed workout taxonomy from the training plan.
type WorkoutType string

const (
	WorkoutChestTriceps    WorkoutType = "chest_triceps"
	WorkoutShouldersBiceps WorkoutType = "shoulders_biceps"
	WorkoutVolume          WorkoutType = "volume"
	WorkoutCardio          WorkoutType = "cardio"
	WorkoutActiveRest      WorkoutType = "active_rest"
)

// WorkoutTypes lists every valid workout type.
func WorkoutTypes() []WorkoutType {
	return []WorkoutType{
		WorkoutChestTriceps,
		WorkoutShouldersBiceps,
		WorkoutVolume,
		WorkoutCardio,
		WorkoutActiveRest,
	}
}

// IsValid reports whether t is a member of the workout taxonomy.
func (t WorkoutType) IsValid() bool {
	switch t {
	case WorkoutChestTriceps, WorkoutShouldersBiceps, WorkoutVolume, WorkoutCardio, WorkoutActiveRest:
		return true
	}
	return false
}

// Workout is one logged session. At most one workout per user per day
// per type; logging the same session again replaces it.
type Workout struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	UserID          uint        `gorm:"not null;uniqueIndex:idx_workout_user_date_type" json:"user_id"`
	Date            string      `gorm:"type:varchar(10);not null;uniqueIndex:idx_workout_user_date_type" json:"date"`
	WorkoutType     WorkoutType `gorm:"type:varchar(20);not null;uniqueIndex:idx_workout_user_date_type" json:"workout_type"`
	Completed       bool        `gorm:"default:true" json:"completed"`
	DurationMinutes *int        `json:"duration_minutes"`
	CaloriesBurned  *int        `json:"calories_burned"`
	Notes           string      `json:"notes"`
	Source          Source      `gorm:"type:varchar(20);default:'manual'" json:"source"`

	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ExerciseSets []ExerciseSet `gorm:"foreignKey:WorkoutID" json:"exercise_sets,omitempty"`
}

// ExerciseSet is a single set within a workout.
type ExerciseSet struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	WorkoutID    uint      `gorm:"not null;index" json:"workout_id"`
	ExerciseName string    `gorm:"not null" json:"exercise_name"`
	SetNumber    int       `gorm:"not null" json:"set_number"`
	Reps         *int      `json:"reps"`
	Weight       *float64  `json:"weight"` // lbs

	Workout Workout `gorm:"foreignKey:WorkoutID" json:"workout,omitempty"`
}
