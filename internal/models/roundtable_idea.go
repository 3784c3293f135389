package models

import "time"

// RoundtableIdea is a discussion topic nomination. Topic doubles as the
// nominee title.
type RoundtableIdea struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Topic string `gorm:"not null" json:"topic"`
	Notes string `json:"notes"`
	Owner string `gorm:"not null" json:"owner"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r RoundtableIdea) NomineeID() string    { return r.ID }
func (r RoundtableIdea) NomineeTitle() string { return r.Topic }
func (r RoundtableIdea) NomineeOwner() string { return r.Owner }

type CreateRoundtableIdeaRequest struct {
	Topic string `json:"topic" binding:"required"`
	Notes string `json:"notes"`
}
