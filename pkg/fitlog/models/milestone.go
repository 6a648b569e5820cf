package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// LiftTargets maps exercise id to a target weight in lbs, stored as a
// JSON column.
type LiftTargets map[string]int

// Value implements driver.Valuer.
func (t LiftTargets) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(t)
	return string(b), err
}

// Scan implements sql.Scanner.
func (t *LiftTargets) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// LiftAchievements maps exercise id to whether its target was hit,
// stored as a JSON column.
type LiftAchievements map[string]bool

// Value implements driver.Valuer.
func (a LiftAchievements) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

// Scan implements sql.Scanner.
func (a *LiftAchievements) Scan(value interface{}) error {
	return scanJSON(value, a)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return errors.New("unsupported column type for JSON scan")
}

// Milestone holds one month's targets and achievements in the yearly
// plan. One row per user per (year, month).
type Milestone struct {
	ID             uint             `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	UserID         uint             `gorm:"not null;uniqueIndex:idx_milestone_user_year_month" json:"user_id"`
	Year           int              `gorm:"not null;uniqueIndex:idx_milestone_user_year_month" json:"year"`
	Month          int              `gorm:"not null;uniqueIndex:idx_milestone_user_year_month" json:"month"` // 1-12
	TargetWeight   *float64         `json:"target_weight"`
	TargetLifts    LiftTargets      `gorm:"type:text" json:"target_lifts"`
	AchievedWeight bool             `gorm:"default:false" json:"achieved_weight"`
	AchievedLifts  LiftAchievements `gorm:"type:text" json:"achieved_lifts"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
