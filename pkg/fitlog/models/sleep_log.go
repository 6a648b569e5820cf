package models

import "time"

// SleepLog holds one nightly sleep duration per user per day.
type SleepLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_sleep_user_date" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_sleep_user_date" json:"date"`
	Hours     float64   `gorm:"not null" json:"hours"`
	Source    Source    `gorm:"type:varchar(20);default:'manual'" json:"source"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
