package domain

import (
	"time"
)

// Schedule описывает рабочий день врача. Времена хранятся строками
// "HH:MM", дата нормализована к полуночи UTC.
type Schedule struct {
	ID           int64     `json:"id"`
	DoctorID     int64     `json:"doctor_id"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	SlotDuration int       `json:"slot_duration"`
	BreakStart   *string   `json:"break_start,omitempty"`
	BreakEnd     *string   `json:"break_end,omitempty"`
	IsAvailable  bool      `json:"is_available"`
	IsWorkingDay bool      `json:"is_working_day"`
	Room         string    `json:"room,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateScheduleDTO struct {
	DoctorID     int64   `json:"doctor_id" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      string  `json:"end_time" binding:"required"`
	SlotDuration int     `json:"slot_duration" binding:"omitempty,min=10,max=120"`
	BreakStart   *string `json:"break_start"`
	BreakEnd     *string `json:"break_end"`
	IsWorkingDay *bool   `json:"is_working_day"`
	Room         string  `json:"room"`
	Notes        string  `json:"notes"`
}

type UpdateScheduleDTO struct {
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	SlotDuration *int    `json:"slot_duration" binding:"omitempty,min=10,max=120"`
	BreakStart   *string `json:"break_start"`
	BreakEnd     *string `json:"break_end"`
	IsAvailable  *bool   `json:"is_available"`
	IsWorkingDay *bool   `json:"is_working_day"`
	Room         *string `json:"room"`
	Notes        *string `json:"notes"`
}

type ScheduleFilter struct {
	DoctorID *int64     `json:"doctor_id"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// DayAvailability отдаётся публичным API календаря записи.
type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
