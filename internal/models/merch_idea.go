package models

import "time"

type MerchIdea struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Item        string `gorm:"not null" json:"item"`
	Description string `json:"description"`
	SuggestedBy string `gorm:"not null" json:"suggestedBy"`

	CreatedAt time.Time `json:"createdAt"`
}

type CreateMerchIdeaRequest struct {
	Item        string `json:"item" binding:"required"`
	Description string `json:"description"`
}
