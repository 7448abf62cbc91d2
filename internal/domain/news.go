package domain

import (
	"time"
)

type News struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Preview     string     `json:"preview"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"image_url,omitempty"`
	AuthorID    int64      `json:"author_id"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	AuthorName string `json:"author_name,omitempty"`
}

type CreateNewsDTO struct {
	Title       string `json:"title" binding:"required,min=5,max=200"`
	Preview     string `json:"preview" binding:"required,max=500"`
	Content     string `json:"content" binding:"required"`
	IsPublished bool   `json:"is_published"`
}

type UpdateNewsDTO struct {
	Title       *string `json:"title" binding:"omitempty,min=5,max=200"`
	Preview     *string `json:"preview" binding:"omitempty,max=500"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

type NewsFilter struct {
	OnlyPublished bool   `json:"only_published"`
	Search        string `json:"search"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
}
