package models

import "time"

// WeeklyReview is the Sunday check-in. One row per user per week,
// keyed by the Sunday that starts the week.
type WeeklyReview struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_review_user_week" json:"user_id"`
	WeekStartDate     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_review_user_week" json:"week_start_date"`
	WeightAvg         *float64  `json:"weight_avg"`
	WorkoutsCompleted int       `gorm:"default:0" json:"workouts_completed"`
	WorkoutsTarget    int       `gorm:"default:5" json:"workouts_target"`
	HabitsCompleted   int       `gorm:"default:0" json:"habits_completed"`
	HabitsTotal       int       `gorm:"default:0" json:"habits_total"`
	WentWell          string    `json:"went_well"`
	NeedsAdjustment   string    `json:"needs_adjustment"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
