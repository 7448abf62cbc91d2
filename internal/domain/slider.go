package domain

import (
	"time"
)

type Slide struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	ImageURL     string    `json:"image_url"`
	ButtonText   string    `json:"button_text,omitempty"`
	ButtonLink   string    `json:"button_link,omitempty"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateSlideDTO struct {
	Title      string `json:"title" binding:"required,max=200"`
	Subtitle   string `json:"subtitle" binding:"max=300"`
	ButtonText string `json:"button_text" binding:"max=50"`
	ButtonLink string `json:"button_link" binding:"max=300"`
}

type UpdateSlideDTO struct {
	Title        *string `json:"title" binding:"omitempty,max=200"`
	Subtitle     *string `json:"subtitle" binding:"omitempty,max=300"`
	ButtonText   *string `json:"button_text" binding:"omitempty,max=50"`
	ButtonLink   *string `json:"button_link" binding:"omitempty,max=300"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}
