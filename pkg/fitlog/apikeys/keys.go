package apikeys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"gorm.io/gorm"
)

const (
	// KeyLength is the length of the generated API key in bytes (32 bytes = 64 hex chars)
	KeyLength = 32
	// KeyPrefixLength is the number of characters to store as prefix for identification
	KeyPrefixLength = 8
	// MinKeyLength is the shortest credential worth hashing; anything
	// shorter can never match a stored key.
	MinKeyLength = 32
)

// ErrKeyNotFound is returned when a presented key matches no active
// record. Callers cannot distinguish an unknown key from a revoked one.
var ErrKeyNotFound = errors.New("api key not found")

// GenerateKey produces a new random API key: 32 bytes from a
// cryptographically secure source, hex-encoded to 64 lowercase chars.
func GenerateKey() (string, error) {
	bytes := make([]byte, KeyLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// HashKey creates a SHA-256 hash of the API key. No salt: the key
// itself carries full entropy, unlike a user-chosen password.
func HashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// VerifyKey checks a presented key against stored hashes and returns
// the owning user ID. Empty or too-short input is rejected before any
// hash computation. Only active keys match.
func VerifyKey(db *gorm.DB, key string) (uint, error) {
	key = strings.TrimSpace(key)
	if len(key) < MinKeyLength {
		return 0, ErrKeyNotFound
	}

	var apiKey models.APIKey
	if err := db.Where("key_hash = ? AND is_active = ?", HashKey(key), true).First(&apiKey).Error; err != nil {
		return 0, ErrKeyNotFound
	}

	// Update last used (fire and forget)
	go UpdateLastUsed(db, apiKey.ID)

	return apiKey.UserID, nil
}

// UpdateLastUsed updates the last_used_at timestamp for an API key
func UpdateLastUsed(db *gorm.DB, apiKeyID uint) {
	now := time.Now()
	db.Model(&models.APIKey{}).Where("id = ?", apiKeyID).Update("last_used_at", now)
}

// BearerToken extracts the credential from an Authorization header
// value of the form "Bearer <key>". Returns "" if the header is absent
// or malformed.
func BearerToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
