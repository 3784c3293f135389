package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frencon/backend/internal/middleware"
	"github.com/frencon/backend/internal/models"
)

type VideoHandler struct {
	db *gorm.DB
}

func NewVideoHandler(db *gorm.DB) *VideoHandler {
	return &VideoHandler{db: db}
}

func (h *VideoHandler) List(c *gin.Context) {
	var videos []models.Video
	if err := h.db.Order("published_at desc").Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}
	c.JSON(http.StatusOK, videos)
}

// Create adds a video (PROTECTED).
func (h *VideoHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input models.CreateVideoRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and a valid URL are required"})
		return
	}

	video := models.Video{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		Thumbnail:   input.Thumbnail,
		CreatedBy:   user.ID,
		PublishedAt: time.Now().UTC(),
	}
	if err := h.db.Create(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}

	c.JSON(http.StatusCreated, video)
}
