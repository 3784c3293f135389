package models

import "time"

type TTRPGStyle string

const (
	StyleTactical TTRPGStyle = "tactical"
	StyleStory    TTRPGStyle = "story"
	StyleHybrid   TTRPGStyle = "hybrid"
)

type TTRPGCategory string

const (
	CategoryCampaign TTRPGCategory = "campaign"
	CategoryOneshot  TTRPGCategory = "oneshot"
)

type TTRPG struct {
	ID       string        `gorm:"primaryKey" json:"id"`
	Title    string        `gorm:"not null" json:"title"`
	Vibe     string        `json:"vibe"`
	Style    TTRPGStyle    `json:"style"`
	Category TTRPGCategory `json:"category"`
	GMs      []string      `gorm:"serializer:json" json:"gms"`
	Owner    string        `gorm:"not null" json:"owner"`

	CreatedAt time.Time `json:"createdAt"`
}

func (t TTRPG) NomineeID() string    { return t.ID }
func (t TTRPG) NomineeTitle() string { return t.Title }
func (t TTRPG) NomineeOwner() string { return t.Owner }

type CreateTTRPGRequest struct {
	Title    string        `json:"title" binding:"required"`
	Vibe     string        `json:"vibe"`
	Style    TTRPGStyle    `json:"style" binding:"omitempty,oneof=tactical story hybrid"`
	Category TTRPGCategory `json:"category" binding:"omitempty,oneof=campaign oneshot"`
	GMs      []string      `json:"gms"`
}
