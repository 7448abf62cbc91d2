package domain

import (
	"time"
)

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Floor       int       `json:"floor"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateDepartmentDTO struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description"`
	Floor       int    `json:"floor" binding:"required"`
	Phone       string `json:"phone"`
}

type UpdateDepartmentDTO struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string `json:"description"`
	Floor       *int    `json:"floor"`
	Phone       *string `json:"phone"`
}
