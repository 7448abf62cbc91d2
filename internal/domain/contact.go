package domain

import (
	"time"
)

type ContactType string

const (
	ContactTypePhone   ContactType = "phone"
	ContactTypeEmail   ContactType = "email"
	ContactTypeAddress ContactType = "address"
	ContactTypeHours   ContactType = "hours"
	ContactTypeSocial  ContactType = "social"
)

type Contact struct {
	ID           int64       `json:"id"`
	Type         ContactType `json:"type"`
	Label        string      `json:"label"`
	Value        string      `json:"value"`
	Icon         string      `json:"icon,omitempty"`
	IsActive     bool        `json:"is_active"`
	DisplayOrder int         `json:"display_order"`
	CreatedAt    time.Time   `json:"created_at"`
}

type CreateContactDTO struct {
	Type  ContactType `json:"type" binding:"required,oneof=phone email address hours social"`
	Label string      `json:"label" binding:"required,max=100"`
	Value string      `json:"value" binding:"required,max=300"`
	Icon  string      `json:"icon"`
}

type UpdateContactDTO struct {
	Type         *ContactType `json:"type" binding:"omitempty,oneof=phone email address hours social"`
	Label        *string      `json:"label" binding:"omitempty,max=100"`
	Value        *string      `json:"value" binding:"omitempty,max=300"`
	Icon         *string      `json:"icon"`
	IsActive     *bool        `json:"is_active"`
	DisplayOrder *int         `json:"display_order"`
}
