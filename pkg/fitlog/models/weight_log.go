package models

import "time"

// WeightLog holds one weight reading per user per day. A second write
// for the same (user, date) replaces the first.
type WeightLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_weight_user_date" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_weight_user_date" json:"date"` // YYYY-MM-DD
	Weight    float64   `gorm:"not null" json:"weight"`                                                 // lbs
	Source    Source    `gorm:"type:varchar(20);default:'manual'" json:"source"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
