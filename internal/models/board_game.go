package models

import "time"

type GameWeight string

const (
	WeightLight  GameWeight = "light"
	WeightMedium GameWeight = "medium"
	WeightHeavy  GameWeight = "heavy"
)

func (w GameWeight) Valid() bool {
	switch w {
	case WeightLight, WeightMedium, WeightHeavy:
		return true
	}
	return false
}

type BoardGame struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	Title             string     `gorm:"not null" json:"title"`
	BoardGameGeekLink string     `json:"boardGameGeekLink"`
	Weight            GameWeight `json:"weight"`
	PlayerCount       string     `json:"playerCount"`
	Teacher           string     `json:"teacher"` // who can teach it at the con
	Owner             string     `gorm:"not null" json:"owner"`

	CreatedAt time.Time `json:"createdAt"`
}

func (g BoardGame) NomineeID() string    { return g.ID }
func (g BoardGame) NomineeTitle() string { return g.Title }
func (g BoardGame) NomineeOwner() string { return g.Owner }

type CreateBoardGameRequest struct {
	Title             string     `json:"title" binding:"required"`
	BoardGameGeekLink string     `json:"boardGameGeekLink"`
	Weight            GameWeight `json:"weight" binding:"omitempty,oneof=light medium heavy"`
	PlayerCount       string     `json:"playerCount"`
	Teacher           string     `json:"teacher"`
}
