package domain

import (
	"fmt"
	"time"
)

type DoctorCategory string

const (
	DoctorCategoryNone    DoctorCategory = "none"
	DoctorCategorySecond  DoctorCategory = "second"
	DoctorCategoryFirst   DoctorCategory = "first"
	DoctorCategoryHighest DoctorCategory = "highest"
)

type Doctor struct {
	ID                   int64          `json:"id"`
	UserID               int64          `json:"user_id"`
	FirstName            string         `json:"first_name"`
	LastName             string         `json:"last_name"`
	MiddleName           string         `json:"middle_name,omitempty"`
	SpecializationID     int64          `json:"specialization_id"`
	DepartmentID         *int64         `json:"department_id,omitempty"`
	Category             DoctorCategory `json:"category"`
	ExperienceYears      int            `json:"experience_years"`
	Education            string         `json:"education"`
	Qualifications       string         `json:"qualifications,omitempty"`
	Phone                string         `json:"phone,omitempty"`
	Email                string         `json:"email,omitempty"`
	PhotoURL             string         `json:"photo_url,omitempty"`
	Bio                  string         `json:"bio,omitempty"`
	IsActive             bool           `json:"is_active"`
	ConsultationDuration int            `json:"consultation_duration"`
	ConsultationPrice    float64        `json:"consultation_price"`
	DisplayOrder         int            `json:"display_order"`
	CreatedAt            time.Time      `json:"created_at"`

	SpecializationName string  `json:"specialization_name,omitempty"`
	DepartmentName     string  `json:"department_name,omitempty"`
	Rating             float64 `json:"rating,omitempty"`
}

func (d *Doctor) FullName() string {
	if d.MiddleName != "" {
		return fmt.Sprintf("%s %s %s", d.LastName, d.FirstName, d.MiddleName)
	}
	return fmt.Sprintf("%s %s", d.LastName, d.FirstName)
}

func (d *Doctor) ShortName() string {
	if d.FirstName == "" {
		return d.LastName
	}
	if d.MiddleName != "" {
		return fmt.Sprintf("%s %c.%c.", d.LastName, []rune(d.FirstName)[0], []rune(d.MiddleName)[0])
	}
	return fmt.Sprintf("%s %c.", d.LastName, []rune(d.FirstName)[0])
}

type CreateDoctorDTO struct {
	FirstName            string         `json:"first_name" binding:"required"`
	LastName             string         `json:"last_name" binding:"required"`
	MiddleName           string         `json:"middle_name"`
	SpecializationID     int64          `json:"specialization_id" binding:"required"`
	DepartmentID         *int64         `json:"department_id"`
	Category             DoctorCategory `json:"category" binding:"omitempty,oneof=none second first highest"`
	ExperienceYears      int            `json:"experience_years" binding:"min=0"`
	Education            string         `json:"education" binding:"required"`
	Qualifications       string         `json:"qualifications"`
	Phone                string         `json:"phone"`
	Email                string         `json:"email" binding:"omitempty,email"`
	Bio                  string         `json:"bio"`
	ConsultationDuration int            `json:"consultation_duration" binding:"omitempty,min=10,max=120"`
	ConsultationPrice    float64        `json:"consultation_price" binding:"min=0"`
}

type UpdateDoctorDTO struct {
	FirstName            *string         `json:"first_name"`
	LastName             *string         `json:"last_name"`
	MiddleName           *string         `json:"middle_name"`
	SpecializationID     *int64          `json:"specialization_id"`
	DepartmentID         *int64          `json:"department_id"`
	Category             *DoctorCategory `json:"category" binding:"omitempty,oneof=none second first highest"`
	ExperienceYears      *int            `json:"experience_years"`
	Education            *string         `json:"education"`
	Qualifications       *string         `json:"qualifications"`
	Phone                *string         `json:"phone"`
	Email                *string         `json:"email" binding:"omitempty,email"`
	Bio                  *string         `json:"bio"`
	IsActive             *bool           `json:"is_active"`
	ConsultationDuration *int            `json:"consultation_duration" binding:"omitempty,min=10,max=120"`
	ConsultationPrice    *float64        `json:"consultation_price"`
	DisplayOrder         *int            `json:"display_order"`
}

type DoctorFilter struct {
	SpecializationID *int64 `json:"specialization_id"`
	DepartmentID     *int64 `json:"department_id"`
	OnlyActive       bool   `json:"only_active"`
	Search           string `json:"search"`
	Limit            int    `json:"limit"`
	Offset           int    `json:"offset"`
}
