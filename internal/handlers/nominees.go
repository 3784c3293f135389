package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frencon/backend/internal/middleware"
	"github.com/frencon/backend/internal/models"
	"github.com/frencon/backend/internal/store"
)

type NomineeHandler struct {
	nominees *store.NomineeStore
}

func NewNomineeHandler(nominees *store.NomineeStore) *NomineeHandler {
	return &NomineeHandler{nominees: nominees}
}

// gameTypeParam parses the :gameType route segment, responding 400 on an
// unknown type.
func gameTypeParam(c *gin.Context) (models.GameType, bool) {
	t := models.GameType(c.Param("gameType"))
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown game type"})
		return "", false
	}
	return t, true
}

// List returns all nominees of one type.
func (h *NomineeHandler) List(c *gin.Context) {
	gameType, ok := gameTypeParam(c)
	if !ok {
		return
	}

	nominees, err := h.nominees.List(c.Request.Context(), gameType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch nominees"})
		return
	}
	c.JSON(http.StatusOK, nominees)
}

// Create adds a nominee (PROTECTED). The request body varies by type; the
// owner is always the session user.
func (h *NomineeHandler) Create(c *gin.Context) {
	gameType, ok := gameTypeParam(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ctx := c.Request.Context()
	var created any
	var err error

	switch gameType {
	case models.GameTypeBoardGame:
		var input models.CreateBoardGameRequest
		if bindErr := c.ShouldBindJSON(&input); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
			return
		}
		created, err = h.nominees.CreateBoardGame(ctx, input, user.ID)
	case models.GameTypeTTRPG:
		var input models.CreateTTRPGRequest
		if bindErr := c.ShouldBindJSON(&input); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
			return
		}
		created, err = h.nominees.CreateTTRPG(ctx, input, user.ID)
	case models.GameTypeRoundtableIdea:
		var input models.CreateRoundtableIdeaRequest
		if bindErr := c.ShouldBindJSON(&input); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
			return
		}
		created, err = h.nominees.CreateRoundtableIdea(ctx, input, user.ID)
	}

	if err != nil {
		if errors.Is(err, store.ErrTitleRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create nominee"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Delete removes a nominee (PROTECTED - requires ownership). Votes for the
// nominee are left behind by design.
func (h *NomineeHandler) Delete(c *gin.Context) {
	gameType, ok := gameTypeParam(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	err := h.nominees.Delete(c.Request.Context(), gameType, c.Param("id"), user.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Nominee not found"})
	case errors.Is(err, store.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own nominees"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete nominee"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Nominee deleted"})
	}
}
