package models

import "time"

// NutritionLog holds one set of daily macros per user per day. All
// values are optional; a log with only calories is fine.
type NutritionLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_nutrition_user_date" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_nutrition_user_date" json:"date"`
	Calories  *int      `json:"calories"`
	Protein   *float64  `json:"protein"` // grams
	Carbs     *float64  `json:"carbs"`   // grams
	Fat       *float64  `json:"fat"`     // grams
	Source    Source    `gorm:"type:varchar(20);default:'manual'" json:"source"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
