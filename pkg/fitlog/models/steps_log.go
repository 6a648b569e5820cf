package models

import "time"

// StepsLog holds one daily step count per user per day.
type StepsLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_steps_user_date" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_steps_user_date" json:"date"`
	Steps     int       `gorm:"not null" json:"steps"`
	Source    Source    `gorm:"type:varchar(20);default:'manual'" json:"source"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
