package domain

import (
	"time"
)

type Review struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`

	PatientName string `json:"patient_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
}

type CreateReviewDTO struct {
	DoctorID int64  `json:"doctor_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required,min=10"`
}

type ReviewFilter struct {
	DoctorID      *int64 `json:"doctor_id"`
	OnlyPublished bool   `json:"only_published"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
}
