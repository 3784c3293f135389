package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frencon/backend/internal/middleware"
	"github.com/frencon/backend/internal/models"
	"github.com/frencon/backend/internal/store"
)

type VoteHandler struct {
	votes *store.VoteStore
}

func NewVoteHandler(votes *store.VoteStore) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Set upserts the session user's score for one nominee (PROTECTED). A user
// can only ever write their own column; the voter id comes from the
// session, never from the request body.
func (h *VoteHandler) Set(c *gin.Context) {
	gameType, ok := gameTypeParam(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input models.SetVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote is required"})
		return
	}

	err := h.votes.SetVote(c.Request.Context(), gameType, user.ID, c.Param("id"), *input.Score)
	if err != nil {
		if errors.Is(err, store.ErrInvalidScore) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vote must be 0, 1 or 2"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
}
