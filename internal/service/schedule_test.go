package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/domain"
)

func testClinicConfig() config.ClinicConfig {
	return config.ClinicConfig{
		DefaultDayStart:     "09:00",
		DefaultDayEnd:       "18:00",
		DefaultSlotDuration: 30,
		AvailabilityDays:    14,
		BookingDraftTTL:     30 * time.Minute,
	}
}

func utcMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func TestEnsureSchedule_CreatesDefault(t *testing.T) {
	doctor := &domain.Doctor{ID: 1, UserID: 10, IsActive: true, ConsultationDuration: 20}
	schedules := newFakeScheduleRepo()
	svc := NewScheduleService(schedules, newFakeDoctorRepo(doctor), newFakeAppointmentRepo(), testClinicConfig(), zap.NewNop())

	date := utcMidnight(time.Now().AddDate(0, 0, 1))

	got, err := svc.EnsureSchedule(context.Background(), 1, date)
	if err != nil {
		t.Fatalf("EnsureSchedule() error = %v", err)
	}
	if got.ID == 0 {
		t.Error("EnsureSchedule() returned schedule without id")
	}
	if got.StartTime != "09:00" || got.EndTime != "18:00" {
		t.Errorf("EnsureSchedule() window = %s-%s, want 09:00-18:00", got.StartTime, got.EndTime)
	}
	if got.SlotDuration != 20 {
		t.Errorf("EnsureSchedule() slot = %d, want doctor's consultation duration 20", got.SlotDuration)
	}
	if !got.IsAvailable || !got.IsWorkingDay {
		t.Error("EnsureSchedule() default day must be available and working")
	}
}

func TestEnsureSchedule_ReturnsExisting(t *testing.T) {
	date := utcMidnight(time.Now().AddDate(0, 0, 1))
	existing := &domain.Schedule{
		DoctorID:     1,
		Date:         date,
		StartTime:    "10:00",
		EndTime:      "14:00",
		SlotDuration: 15,
		IsAvailable:  true,
		IsWorkingDay: true,
	}
	schedules := newFakeScheduleRepo(existing)
	doctor := &domain.Doctor{ID: 1, IsActive: true, ConsultationDuration: 30}
	svc := NewScheduleService(schedules, newFakeDoctorRepo(doctor), newFakeAppointmentRepo(), testClinicConfig(), zap.NewNop())

	got, err := svc.EnsureSchedule(context.Background(), 1, date)
	if err != nil {
		t.Fatalf("EnsureSchedule() error = %v", err)
	}
	if got.StartTime != "10:00" || got.SlotDuration != 15 {
		t.Errorf("EnsureSchedule() must return the configured day, got %s/%d", got.StartTime, got.SlotDuration)
	}
	if len(schedules.schedules) != 1 {
		t.Errorf("EnsureSchedule() created a duplicate, have %d schedules", len(schedules.schedules))
	}
}

func TestFreeSlots_NoScheduleIsEmptyList(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), newFakeDoctorRepo(), newFakeAppointmentRepo(), testClinicConfig(), zap.NewNop())

	slots, err := svc.FreeSlots(context.Background(), 1, "2026-09-01")
	if err != nil {
		t.Fatalf("FreeSlots() error = %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Errorf("FreeSlots() = %v, want empty list", slots)
	}
}

func TestFreeSlots_UnavailableDayIsEmptyList(t *testing.T) {
	date := utcMidnight(time.Now().AddDate(0, 0, 1))
	schedule := &domain.Schedule{
		DoctorID:     1,
		Date:         date,
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
		IsAvailable:  false,
		IsWorkingDay: true,
	}
	svc := NewScheduleService(newFakeScheduleRepo(schedule), newFakeDoctorRepo(), newFakeAppointmentRepo(), testClinicConfig(), zap.NewNop())

	slots, err := svc.FreeSlots(context.Background(), 1, date.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("FreeSlots() error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("FreeSlots() = %v, want empty list for unavailable day", slots)
	}
}

func TestFreeSlots_BadDate(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), newFakeDoctorRepo(), newFakeAppointmentRepo(), testClinicConfig(), zap.NewNop())

	if _, err := svc.FreeSlots(context.Background(), 1, "01.09.2026"); err == nil {
		t.Error("FreeSlots() expected error for malformed date")
	}
}

func TestAvailableDays_FillsHorizon(t *testing.T) {
	start := utcMidnight(time.Now().AddDate(0, 0, 1))
	second := start.AddDate(0, 0, 1)

	schedule := &domain.Schedule{
		DoctorID:     1,
		Date:         second,
		StartTime:    "09:00",
		EndTime:      "10:00",
		SlotDuration: 30,
		IsAvailable:  true,
		IsWorkingDay: true,
	}
	svc := NewScheduleService(newFakeScheduleRepo(schedule), newFakeDoctorRepo(), newFakeAppointmentRepo(), testClinicConfig(), zap.NewNop())

	days, err := svc.AvailableDays(context.Background(), 1, start, 3)
	if err != nil {
		t.Fatalf("AvailableDays() error = %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("AvailableDays() returned %d days, want 3", len(days))
	}

	for i, d := range days {
		wantDate := start.AddDate(0, 0, i).Format("2006-01-02")
		if d.Date != wantDate {
			t.Errorf("days[%d].Date = %s, want %s", i, d.Date, wantDate)
		}
		if d.Slots == nil {
			t.Errorf("days[%d].Slots is nil, want empty list", i)
		}
	}

	if len(days[0].Slots) != 0 {
		t.Errorf("day without schedule has slots: %v", days[0].Slots)
	}
	if len(days[1].Slots) != 2 {
		t.Errorf("configured day slots = %v, want [09:00 09:30]", days[1].Slots)
	}
}

func TestScheduleService_Create_Invalid(t *testing.T) {
	doctor := &domain.Doctor{ID: 1, IsActive: true, ConsultationDuration: 30}
	svc := NewScheduleService(newFakeScheduleRepo(), newFakeDoctorRepo(doctor), newFakeAppointmentRepo(), testClinicConfig(), zap.NewNop())

	_, err := svc.Create(context.Background(), 1, domain.CreateScheduleDTO{
		Date:      "2026-09-01",
		StartTime: "18:00",
		EndTime:   "09:00",
	})
	if !errors.Is(err, domain.ErrInvalidSchedule) {
		t.Errorf("Create() error = %v, want ErrInvalidSchedule", err)
	}
}
