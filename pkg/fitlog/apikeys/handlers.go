package apikeys

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"gorm.io/gorm"
)

// DefaultKeyName is used when the caller doesn't label the key. Most
// keys are created for the Health Auto Export phone app.
const DefaultKeyName = "Health Auto Export"

// Handler handles API key management requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new API keys handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// APIKeyResponse represents an API key in responses. The secret and
// its hash are never included.
type APIKeyResponse struct {
	ID         uint       `json:"id"`
	KeyPrefix  string     `json:"key_prefix"`
	Name       string     `json:"name"`
	IsActive   bool       `json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateAPIKeyRequest represents a request to create an API key
type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// CreateAPIKeyResponse includes the full key (only shown once)
type CreateAPIKeyResponse struct {
	ID        uint      `json:"id"`
	Key       string    `json:"key"`
	KeyPrefix string    `json:"key_prefix"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
}

// Create creates a new API key for the authenticated user
// @Summary Create an API key
// @Description Generate a new ingestion API key. The plaintext key is returned once and never again.
// @Tags api-keys
// @Accept json
// @Produce json
// @Param request body CreateAPIKeyRequest false "Optional key label"
// @Success 201 {object} CreateAPIKeyResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /api-keys [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Name is optional, so binding might fail with empty body
		req.Name = ""
	}
	if req.Name == "" {
		req.Name = DefaultKeyName
	}

	// Generate the key
	key, err := GenerateKey()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate API key"})
		return
	}

	// Create the API key record
	apiKey := models.APIKey{
		UserID:    userID,
		KeyHash:   HashKey(key),
		KeyPrefix: key[:KeyPrefixLength],
		Name:      req.Name,
		IsActive:  true,
	}

	if err := h.db.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create API key"})
		return
	}

	// Return the full key - this is the only time it's visible
	c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		ID:        apiKey.ID,
		Key:       key,
		KeyPrefix: apiKey.KeyPrefix,
		Name:      apiKey.Name,
		CreatedAt: apiKey.CreatedAt,
		Message:   "Save this key - it will not be shown again.",
	})
}

// List returns all API keys for the authenticated user
// @Summary List API keys
// @Description List the authenticated user's API keys (metadata only, never the secret)
// @Tags api-keys
// @Produce json
// @Success 200 {array} APIKeyResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /api-keys [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var apiKeys []models.APIKey
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apiKeys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch API keys"})
		return
	}

	responses := make([]APIKeyResponse, len(apiKeys))
	for i, key := range apiKeys {
		responses[i] = APIKeyResponse{
			ID:         key.ID,
			KeyPrefix:  key.KeyPrefix,
			Name:       key.Name,
			IsActive:   key.IsActive,
			LastUsedAt: key.LastUsedAt,
			CreatedAt:  key.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, responses)
}

// Revoke deactivates an API key. The record stays around so the key's
// history is visible, but verification will never match it again.
// @Summary Revoke an API key
// @Description Deactivate an API key. Revoked keys stop verifying immediately and cannot be reactivated.
// @Tags api-keys
// @Produce json
// @Param id path int true "API key ID"
// @Success 200 {object} map[string]string "API key revoked"
// @Failure 404 {object} map[string]string "API key not found"
// @Security BearerAuth
// @Router /api-keys/{id}/revoke [post]
func (h *Handler) Revoke(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	keyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	var apiKey models.APIKey
	if err := h.db.Where("id = ? AND user_id = ?", keyID, userID).First(&apiKey).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
		return
	}

	if err := h.db.Model(&apiKey).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke API key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key revoked"})
}

// RegisterRoutes registers API key routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/api-keys", h.Create)
	rg.GET("/api-keys", h.List)
	rg.POST("/api-keys/:id/revoke", h.Revoke)
	// DELETE is an alias for revoke; keys are deactivated, never erased
	rg.DELETE("/api-keys/:id", h.Revoke)
}
