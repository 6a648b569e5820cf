package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey represents a bearer credential for the ingestion endpoints.
// Only the SHA-256 hash of the secret is stored; the plaintext is
// returned to the user once at creation time and is unrecoverable
// afterwards. Revoking a key deactivates it rather than deleting it.
type APIKey struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	KeyHash    string         `gorm:"uniqueIndex;not null" json:"-"`
	KeyPrefix  string         `gorm:"not null" json:"key_prefix"` // First few chars for identification
	Name       string         `json:"name"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	LastUsedAt *time.Time     `json:"last_used_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
