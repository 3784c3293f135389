package models

import "time"

type Video struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	URL         string `gorm:"not null" json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`

	PublishedAt time.Time `json:"publishedAt"`
}

type CreateVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,url"`
	Thumbnail   string `json:"thumbnail"`
}
