package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frencon/backend/internal/middleware"
	"github.com/frencon/backend/internal/models"
)

type MerchHandler struct {
	db *gorm.DB
}

func NewMerchHandler(db *gorm.DB) *MerchHandler {
	return &MerchHandler{db: db}
}

func (h *MerchHandler) List(c *gin.Context) {
	var ideas []models.MerchIdea
	if err := h.db.Order("created_at desc").Find(&ideas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch merch ideas"})
		return
	}
	c.JSON(http.StatusOK, ideas)
}

// Create adds a merch suggestion (PROTECTED). SuggestedBy is the session
// user's display name, for rendering.
func (h *MerchHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input models.CreateMerchIdeaRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item is required"})
		return
	}

	idea := models.MerchIdea{
		ID:          uuid.NewString(),
		Item:        input.Item,
		Description: input.Description,
		SuggestedBy: user.DisplayName,
	}
	if err := h.db.Create(&idea).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create merch idea"})
		return
	}

	c.JSON(http.StatusCreated, idea)
}
