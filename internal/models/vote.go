package models

import "time"

// GameType tags which collection of nominees a vote belongs to.
type GameType string

const (
	GameTypeBoardGame      GameType = "boardGame"
	GameTypeTTRPG          GameType = "ttrpg"
	GameTypeRoundtableIdea GameType = "roundtableIdea"
)

func (t GameType) Valid() bool {
	switch t {
	case GameTypeBoardGame, GameTypeTTRPG, GameTypeRoundtableIdea:
		return true
	}
	return false
}

// Vote is one user's score for one nominee. The tuple
// (game_type, user_id, game_id) is the natural key: at most one vote per
// voter per nominee per type. Votes are upserted, never deleted; deleting a
// nominee leaves its votes orphaned.
type Vote struct {
	ID       uint     `gorm:"primaryKey" json:"-"`
	GameType GameType `gorm:"uniqueIndex:idx_vote_key;not null" json:"gameType"`
	UserID   string   `gorm:"uniqueIndex:idx_vote_key;not null" json:"userId"`
	GameID   string   `gorm:"uniqueIndex:idx_vote_key;not null" json:"gameId"`
	Score    int      `gorm:"not null" json:"vote"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ValidScore reports whether s is an allowed vote value:
// 0 = skip, 1 = interested, 2 = want-to-play.
func ValidScore(s int) bool {
	return s >= 0 && s <= 2
}

type SetVoteRequest struct {
	// Pointer so that a legitimate score of 0 survives "required" binding.
	Score *int `json:"vote" binding:"required"`
}
