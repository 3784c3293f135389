// Package store holds the persistence adapters for nominees and votes.
// Every successful write re-queries the full current set and publishes it,
// so observers always see complete snapshots rather than diffs.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frencon/backend/internal/live"
	"github.com/frencon/backend/internal/models"
)

var (
	ErrInvalidGameType = errors.New("unknown game type")
	ErrInvalidScore    = errors.New("vote must be 0, 1 or 2")
)

type VoteStore struct {
	db     *gorm.DB
	broker *live.Broker[[]models.Vote]
}

func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db, broker: live.NewBroker[[]models.Vote]()}
}

// SetVote upserts the caller's score for one nominee, keyed by
// (gameType, userID, gameID). Writing the same score twice is a no-op as
// far as aggregation is concerned; concurrent writes to the same key are
// last-write-wins.
func (s *VoteStore) SetVote(ctx context.Context, gameType models.GameType, userID, gameID string, score int) error {
	if !gameType.Valid() {
		return ErrInvalidGameType
	}
	if !models.ValidScore(score) {
		return ErrInvalidScore
	}

	vote := models.Vote{
		GameType: gameType,
		UserID:   userID,
		GameID:   gameID,
		Score:    score,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_type"}, {Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&vote).Error
	if err != nil {
		return fmt.Errorf("error writing vote: %w", err)
	}

	s.publish(gameType)
	return nil
}

// List returns every vote for one game type.
func (s *VoteStore) List(ctx context.Context, gameType models.GameType) ([]models.Vote, error) {
	var votes []models.Vote
	if err := s.db.WithContext(ctx).Where("game_type = ?", gameType).Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("error listing votes: %w", err)
	}
	return votes, nil
}

// Observe delivers the complete current vote set for gameType immediately
// and again after every change. The cancel function must be called on
// teardown.
func (s *VoteStore) Observe(ctx context.Context, gameType models.GameType) (<-chan []models.Vote, func(), error) {
	current, err := s.List(ctx, gameType)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := live.Observe(s.broker, string(gameType), current)
	return ch, cancel, nil
}

func (s *VoteStore) publish(gameType models.GameType) {
	votes, err := s.List(context.Background(), gameType)
	if err != nil {
		log.Printf("votes: snapshot query failed: %v", err)
		return
	}
	s.broker.Publish(string(gameType), votes)
}
