package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frencon/backend/internal/live"
	"github.com/frencon/backend/internal/models"
)

var (
	ErrNotFound      = errors.New("nominee not found")
	ErrNotOwner      = errors.New("only the owner can delete a nominee")
	ErrTitleRequired = errors.New("title is required")
)

// NomineeStore persists the three nominee variants. Creation assigns a
// server-side uuid and stamps the owner from the session; the owner is
// never updated afterwards (there is no edit operation at all).
type NomineeStore struct {
	db     *gorm.DB
	broker *live.Broker[[]models.Nominee]
}

func NewNomineeStore(db *gorm.DB) *NomineeStore {
	return &NomineeStore{db: db, broker: live.NewBroker[[]models.Nominee]()}
}

func (s *NomineeStore) CreateBoardGame(ctx context.Context, req models.CreateBoardGameRequest, owner string) (models.BoardGame, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.BoardGame{}, ErrTitleRequired
	}
	weight := req.Weight
	if weight == "" {
		weight = models.WeightMedium
	}

	game := models.BoardGame{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(req.Title),
		BoardGameGeekLink: req.BoardGameGeekLink,
		Weight:            weight,
		PlayerCount:       req.PlayerCount,
		Teacher:           req.Teacher,
		Owner:             owner,
	}
	if err := s.db.WithContext(ctx).Create(&game).Error; err != nil {
		return models.BoardGame{}, fmt.Errorf("error creating board game: %w", err)
	}

	s.publish(models.GameTypeBoardGame)
	return game, nil
}

func (s *NomineeStore) CreateTTRPG(ctx context.Context, req models.CreateTTRPGRequest, owner string) (models.TTRPG, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.TTRPG{}, ErrTitleRequired
	}

	ttrpg := models.TTRPG{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(req.Title),
		Vibe:     req.Vibe,
		Style:    req.Style,
		Category: req.Category,
		GMs:      req.GMs,
		Owner:    owner,
	}
	if err := s.db.WithContext(ctx).Create(&ttrpg).Error; err != nil {
		return models.TTRPG{}, fmt.Errorf("error creating ttrpg: %w", err)
	}

	s.publish(models.GameTypeTTRPG)
	return ttrpg, nil
}

func (s *NomineeStore) CreateRoundtableIdea(ctx context.Context, req models.CreateRoundtableIdeaRequest, owner string) (models.RoundtableIdea, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return models.RoundtableIdea{}, ErrTitleRequired
	}

	idea := models.RoundtableIdea{
		ID:    uuid.NewString(),
		Topic: strings.TrimSpace(req.Topic),
		Notes: req.Notes,
		Owner: owner,
	}
	if err := s.db.WithContext(ctx).Create(&idea).Error; err != nil {
		return models.RoundtableIdea{}, fmt.Errorf("error creating roundtable idea: %w", err)
	}

	s.publish(models.GameTypeRoundtableIdea)
	return idea, nil
}

// List returns every nominee of one type as the shared interface.
func (s *NomineeStore) List(ctx context.Context, gameType models.GameType) ([]models.Nominee, error) {
	switch gameType {
	case models.GameTypeBoardGame:
		var games []models.BoardGame
		if err := s.db.WithContext(ctx).Order("created_at").Find(&games).Error; err != nil {
			return nil, fmt.Errorf("error listing board games: %w", err)
		}
		nominees := make([]models.Nominee, 0, len(games))
		for _, g := range games {
			nominees = append(nominees, g)
		}
		return nominees, nil
	case models.GameTypeTTRPG:
		var ttrpgs []models.TTRPG
		if err := s.db.WithContext(ctx).Order("created_at").Find(&ttrpgs).Error; err != nil {
			return nil, fmt.Errorf("error listing ttrpgs: %w", err)
		}
		nominees := make([]models.Nominee, 0, len(ttrpgs))
		for _, t := range ttrpgs {
			nominees = append(nominees, t)
		}
		return nominees, nil
	case models.GameTypeRoundtableIdea:
		var ideas []models.RoundtableIdea
		if err := s.db.WithContext(ctx).Order("created_at").Find(&ideas).Error; err != nil {
			return nil, fmt.Errorf("error listing roundtable ideas: %w", err)
		}
		nominees := make([]models.Nominee, 0, len(ideas))
		for _, i := range ideas {
			nominees = append(nominees, i)
		}
		return nominees, nil
	}
	return nil, ErrInvalidGameType
}

// Delete removes a nominee permanently. Only the owner may delete; votes
// for the nominee are intentionally left behind (they stop joining into
// any row, which is the documented orphaning behavior).
func (s *NomineeStore) Delete(ctx context.Context, gameType models.GameType, id, requesterID string) error {
	var owner string
	var target any

	switch gameType {
	case models.GameTypeBoardGame:
		var game models.BoardGame
		if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
			return s.notFound(err)
		}
		owner, target = game.Owner, &game
	case models.GameTypeTTRPG:
		var ttrpg models.TTRPG
		if err := s.db.WithContext(ctx).First(&ttrpg, "id = ?", id).Error; err != nil {
			return s.notFound(err)
		}
		owner, target = ttrpg.Owner, &ttrpg
	case models.GameTypeRoundtableIdea:
		var idea models.RoundtableIdea
		if err := s.db.WithContext(ctx).First(&idea, "id = ?", id).Error; err != nil {
			return s.notFound(err)
		}
		owner, target = idea.Owner, &idea
	default:
		return ErrInvalidGameType
	}

	if owner != requesterID {
		return ErrNotOwner
	}

	if err := s.db.WithContext(ctx).Delete(target).Error; err != nil {
		return fmt.Errorf("error deleting nominee: %w", err)
	}

	s.publish(gameType)
	return nil
}

// Observe delivers the complete current nominee list for gameType
// immediately and again after every change.
func (s *NomineeStore) Observe(ctx context.Context, gameType models.GameType) (<-chan []models.Nominee, func(), error) {
	current, err := s.List(ctx, gameType)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := live.Observe(s.broker, string(gameType), current)
	return ch, cancel, nil
}

func (s *NomineeStore) notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("error loading nominee: %w", err)
}

func (s *NomineeStore) publish(gameType models.GameType) {
	nominees, err := s.List(context.Background(), gameType)
	if err != nil {
		log.Printf("nominees: snapshot query failed: %v", err)
		return
	}
	s.broker.Publish(string(gameType), nominees)
}
