package handlers

import (
	"context"

	"gorm.io/gorm"

	"github.com/frencon/backend/internal/blog"
	"github.com/frencon/backend/internal/config"
	"github.com/frencon/backend/internal/models"
	"github.com/frencon/backend/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Nominee *NomineeHandler
	Vote    *VoteHandler
	Table   *TableHandler
	User    *UserHandler
	Merch   *MerchHandler
	Video   *VideoHandler
	Blog    *BlogHandler
	WS      *WSHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, nominees *store.NomineeStore, votes *store.VoteStore, posts *blog.Store, cfg *config.Config) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(db, cfg.JWTSecret),
		Nominee: NewNomineeHandler(nominees),
		Vote:    NewVoteHandler(votes),
		Table:   NewTableHandler(db, nominees, votes),
		User:    NewUserHandler(db),
		Merch:   NewMerchHandler(db),
		Video:   NewVideoHandler(db),
		Blog:    NewBlogHandler(posts),
		WS:      NewWSHandler(db, nominees, votes),
	}
}

// displayNames maps user ids to display names for voter column headers.
func displayNames(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	var users []models.User
	if err := db.WithContext(ctx).Select("id", "display_name").Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	return names, nil
}
