package models

import "time"

// HabitLog tracks the daily habit checklist. One row per user per day.
type HabitLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_habit_user_date" json:"user_id"`
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_habit_user_date" json:"date"`
	Meditation bool      `gorm:"default:false" json:"meditation"`
	Journal    bool      `gorm:"default:false" json:"journal"`
	Creatine   bool      `gorm:"default:false" json:"creatine"`
	SleepHours *float64  `json:"sleep_hours"`
	Steps      *int      `json:"steps"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
