package domain

import (
	"time"
)

// BookingDraft хранит состояние пошагового мастера записи на приём.
// Черновик живёт ограниченное время и идентифицируется токеном,
// который клиент передаёт между шагами.
type BookingDraft struct {
	ID               int64     `json:"-"`
	Token            string    `json:"token"`
	PatientID        *int64    `json:"patient_id,omitempty"`
	SpecializationID *int64    `json:"specialization_id,omitempty"`
	DoctorID         *int64    `json:"doctor_id,omitempty"`
	ServiceID        *int64    `json:"service_id,omitempty"`
	Date             *string   `json:"date,omitempty"`
	Time             *string   `json:"time,omitempty"`
	Symptoms         string    `json:"symptoms,omitempty"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Step возвращает номер следующего незаполненного шага мастера.
// Первым шагом выбирается либо специализация, либо сразу услуга;
// услуга необязательна, без неё приём оформляется как консультация врача.
func (d *BookingDraft) Step() int {
	switch {
	case d.SpecializationID == nil && d.ServiceID == nil:
		return 1
	case d.DoctorID == nil:
		return 2
	case d.Date == nil || d.Time == nil:
		return 3
	}
	return 4
}

func (d *BookingDraft) Expired(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}

type BookingSpecializationDTO struct {
	SpecializationID int64 `json:"specialization_id" binding:"required"`
}

type BookingDoctorDTO struct {
	DoctorID int64 `json:"doctor_id" binding:"required"`
}

type BookingServiceDTO struct {
	ServiceID int64 `json:"service_id" binding:"required"`
}

type BookingSlotDTO struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type BookingConfirmDTO struct {
	Symptoms string `json:"symptoms"`
}
