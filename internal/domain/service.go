package domain

import (
	"time"
)

type ServiceCategory string

const (
	ServiceCategoryConsultation ServiceCategory = "consultation"
	ServiceCategoryDiagnostics  ServiceCategory = "diagnostics"
	ServiceCategoryTreatment    ServiceCategory = "treatment"
	ServiceCategoryAnalysis     ServiceCategory = "analysis"
	ServiceCategoryProcedure    ServiceCategory = "procedure"
)

type Service struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Category         ServiceCategory `json:"category"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description,omitempty"`
	Price            float64         `json:"price"`
	IsFree           bool            `json:"is_free"`
	Duration         int             `json:"duration"`
	Icon             string          `json:"icon,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	IsActive         bool            `json:"is_active"`
	DisplayOrder     int             `json:"display_order"`
	CreatedAt        time.Time       `json:"created_at"`
}

type CreateServiceDTO struct {
	Name             string          `json:"name" binding:"required,min=2,max=200"`
	Category         ServiceCategory `json:"category" binding:"required,oneof=consultation diagnostics treatment analysis procedure"`
	Description      string          `json:"description" binding:"required"`
	ShortDescription string          `json:"short_description" binding:"max=300"`
	Price            float64         `json:"price" binding:"min=0"`
	IsFree           bool            `json:"is_free"`
	Duration         int             `json:"duration" binding:"omitempty,min=5,max=240"`
	Icon             string          `json:"icon"`
	DoctorIDs        []int64         `json:"doctor_ids"`
}

type UpdateServiceDTO struct {
	Name             *string          `json:"name" binding:"omitempty,min=2,max=200"`
	Category         *ServiceCategory `json:"category" binding:"omitempty,oneof=consultation diagnostics treatment analysis procedure"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description" binding:"omitempty,max=300"`
	Price            *float64         `json:"price"`
	IsFree           *bool            `json:"is_free"`
	Duration         *int             `json:"duration" binding:"omitempty,min=5,max=240"`
	Icon             *string          `json:"icon"`
	IsActive         *bool            `json:"is_active"`
	DisplayOrder     *int             `json:"display_order"`
}

type ServiceFilter struct {
	Category   *ServiceCategory `json:"category"`
	IsFree     *bool            `json:"is_free"`
	DoctorID   *int64           `json:"doctor_id"`
	OnlyActive bool             `json:"only_active"`
	Search     string           `json:"search"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}
