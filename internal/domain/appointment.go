package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// ActiveStatuses это статусы, при которых запись занимает слот.
var ActiveStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
}

func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCancelled, AppointmentStatusCompleted, AppointmentStatusNoShow:
		return true
	}
	return false
}

// CanTransition проверяет допустимость смены статуса записи.
// Из терминальных статусов переходов нет.
func CanTransition(from, to AppointmentStatus) bool {
	switch from {
	case AppointmentStatusPending:
		return to == AppointmentStatusConfirmed || to == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return to == AppointmentStatusCompleted ||
			to == AppointmentStatusCancelled ||
			to == AppointmentStatusNoShow
	}
	return false
}

// PatientMayCancel говорит, может ли пациент сам отменить запись:
// только свою, только активную и только будущую.
func PatientMayCancel(a *Appointment, patientID int64, now time.Time) bool {
	if a.PatientID != patientID {
		return false
	}
	if !a.Status.IsActive() {
		return false
	}
	return a.AppointmentTime.After(now)
}

type Appointment struct {
	ID              int64             `json:"id"`
	Number          string            `json:"number"`
	PatientID       int64             `json:"patient_id"`
	DoctorID        int64             `json:"doctor_id"`
	ServiceID       *int64            `json:"service_id,omitempty"`
	ScheduleID      *int64            `json:"schedule_id,omitempty"`
	AppointmentTime time.Time         `json:"appointment_time"`
	Duration        int               `json:"duration"`
	Status          AppointmentStatus `json:"status"`
	Symptoms        string            `json:"symptoms,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreatedBy       int64             `json:"created_by"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	PatientName string `json:"patient_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	Room        string `json:"room,omitempty"`
}

type CreateAppointmentDTO struct {
	PatientID int64  `json:"patient_id"`
	DoctorID  int64  `json:"doctor_id" binding:"required"`
	ServiceID *int64 `json:"service_id"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Symptoms  string `json:"symptoms"`
}

type UpdateAppointmentDTO struct {
	Symptoms *string `json:"symptoms"`
	Notes    *string `json:"notes"`
}

type ChangeStatusDTO struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed no_show"`
}

type AppointmentFilter struct {
	PatientID *int64             `json:"patient_id"`
	DoctorID  *int64             `json:"doctor_id"`
	Status    *AppointmentStatus `json:"status"`
	DateFrom  *time.Time         `json:"date_from"`
	DateTo    *time.Time         `json:"date_to"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// DoctorStatistics агрегирует приёмы врача за период.
type DoctorStatistics struct {
	Total          int                       `json:"total"`
	ByStatus       map[AppointmentStatus]int `json:"by_status"`
	Morning        int                       `json:"morning"`
	Day            int                       `json:"day"`
	Evening        int                       `json:"evening"`
	PopularService []ServiceCount            `json:"popular_services"`
	AverageRating  float64                   `json:"average_rating"`
}

type ServiceCount struct {
	ServiceID   int64  `json:"service_id"`
	ServiceName string `json:"service_name"`
	Count       int    `json:"count"`
}
