package scheduling

import (
	"reflect"
	"testing"
	"time"

	"clinic/internal/domain"
)

func strPtr(s string) *string { return &s }

func testSchedule() domain.Schedule {
	return domain.Schedule{
		DoctorID:     1,
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "18:00",
		SlotDuration: 30,
		BreakStart:   strPtr("13:00"),
		BreakEnd:     strPtr("14:00"),
		IsAvailable:  true,
		IsWorkingDay: true,
	}
}

func appointmentAt(hour, minute int, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		DoctorID:        1,
		AppointmentTime: time.Date(2024, 3, 15, hour, minute, 0, 0, time.UTC),
		Status:          status,
	}
}

func TestFreeSlots_FullDayWithBreak(t *testing.T) {
	got := FreeSlots(testSchedule(), nil)
	want := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
		"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FreeSlots() = %v, want %v", got, want)
	}
}

func TestFreeSlots_SlotsStayInsideWindow(t *testing.T) {
	s := testSchedule()
	s.BreakStart, s.BreakEnd = nil, nil
	for _, slot := range FreeSlots(s, nil) {
		if slot < s.StartTime {
			t.Errorf("slot %s is before window start %s", slot, s.StartTime)
		}
		if slot >= s.EndTime {
			t.Errorf("slot %s is at or past window end %s", slot, s.EndTime)
		}
	}
}

func TestFreeSlots_NoSlotInsideBreak(t *testing.T) {
	for _, slot := range FreeSlots(testSchedule(), nil) {
		if slot >= "13:00" && slot < "14:00" {
			t.Errorf("slot %s falls inside the break", slot)
		}
	}
}

func TestFreeSlots_ActiveAppointmentBlocksSlot(t *testing.T) {
	appts := []domain.Appointment{appointmentAt(10, 0, domain.AppointmentStatusConfirmed)}
	got := FreeSlots(testSchedule(), appts)
	for _, slot := range got {
		if slot == "10:00" {
			t.Errorf("slot 10:00 must be excluded by a confirmed appointment")
		}
	}
	if !containsSlot(got, "09:30") || !containsSlot(got, "10:30") {
		t.Errorf("neighbouring slots must stay free, got %v", got)
	}
}

func TestFreeSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	appts := []domain.Appointment{appointmentAt(10, 0, domain.AppointmentStatusCancelled)}
	if !containsSlot(FreeSlots(testSchedule(), appts), "10:00") {
		t.Errorf("cancelled appointment must not block the slot")
	}
}

func TestFreeSlots_CompletedAndNoShowDoNotBlock(t *testing.T) {
	appts := []domain.Appointment{
		appointmentAt(10, 0, domain.AppointmentStatusCompleted),
		appointmentAt(11, 0, domain.AppointmentStatusNoShow),
	}
	got := FreeSlots(testSchedule(), appts)
	if !containsSlot(got, "10:00") || !containsSlot(got, "11:00") {
		t.Errorf("terminal appointments must not block slots, got %v", got)
	}
}

func TestFreeSlots_OffGridAppointmentBlocksCoveringSlot(t *testing.T) {
	appts := []domain.Appointment{appointmentAt(10, 15, domain.AppointmentStatusPending)}
	got := FreeSlots(testSchedule(), appts)
	if containsSlot(got, "10:00") {
		t.Errorf("appointment at 10:15 must block the 10:00 slot")
	}
	if !containsSlot(got, "10:30") {
		t.Errorf("the 10:30 slot must stay free, got %v", got)
	}
}

func TestFreeSlots_ZeroWidthWindow(t *testing.T) {
	s := testSchedule()
	s.StartTime, s.EndTime = "09:00", "09:00"
	if got := FreeSlots(s, nil); len(got) != 0 {
		t.Errorf("zero-width window must yield no slots, got %v", got)
	}
}

func TestFreeSlots_NonPositiveDuration(t *testing.T) {
	s := testSchedule()
	s.SlotDuration = 0
	if got := FreeSlots(s, nil); len(got) != 0 {
		t.Errorf("zero duration must yield no slots, got %v", got)
	}
	s.SlotDuration = -30
	if got := FreeSlots(s, nil); len(got) != 0 {
		t.Errorf("negative duration must yield no slots, got %v", got)
	}
}

func TestFreeSlots_BreakSpansWholeWindow(t *testing.T) {
	s := testSchedule()
	s.BreakStart, s.BreakEnd = strPtr("09:00"), strPtr("18:00")
	if got := FreeSlots(s, nil); len(got) != 0 {
		t.Errorf("a break covering the window must yield no slots, got %v", got)
	}
}

func TestFreeSlots_Idempotent(t *testing.T) {
	appts := []domain.Appointment{
		appointmentAt(9, 30, domain.AppointmentStatusPending),
		appointmentAt(15, 0, domain.AppointmentStatusConfirmed),
	}
	first := FreeSlots(testSchedule(), appts)
	second := FreeSlots(testSchedule(), appts)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls diverge: %v vs %v", first, second)
	}
}

func TestIsBookable_FreeSlot(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	proposed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	if !IsBookable(testSchedule(), nil, proposed, now) {
		t.Errorf("a free future slot must be bookable")
	}
}

func TestIsBookable_TakenSlot(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	proposed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	appts := []domain.Appointment{appointmentAt(10, 0, domain.AppointmentStatusPending)}
	if IsBookable(testSchedule(), appts, proposed, now) {
		t.Errorf("a taken slot must not be bookable")
	}
}

func TestIsBookable_PastTime(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	proposed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	if IsBookable(testSchedule(), nil, proposed, now) {
		t.Errorf("past time must never be bookable")
	}
}

func TestIsBookable_UnavailableSchedule(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	proposed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	s := testSchedule()
	s.IsAvailable = false
	if IsBookable(s, nil, proposed, now) {
		t.Errorf("unavailable schedule must not be bookable")
	}

	s = testSchedule()
	s.IsWorkingDay = false
	if IsBookable(s, nil, proposed, now) {
		t.Errorf("non-working day must not be bookable")
	}
}

func TestIsBookable_OffGridTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	proposed := time.Date(2024, 3, 15, 10, 10, 0, 0, time.UTC)
	if IsBookable(testSchedule(), nil, proposed, now) {
		t.Errorf("time off the slot grid must not be bookable")
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Schedule)
		wantErr bool
	}{
		{"valid", func(s *domain.Schedule) {}, false},
		{"valid without break", func(s *domain.Schedule) {
			s.BreakStart, s.BreakEnd = nil, nil
		}, false},
		{"start equals end", func(s *domain.Schedule) {
			s.EndTime = s.StartTime
		}, true},
		{"start after end", func(s *domain.Schedule) {
			s.StartTime, s.EndTime = "18:00", "09:00"
		}, true},
		{"inverted break", func(s *domain.Schedule) {
			s.BreakStart, s.BreakEnd = strPtr("14:00"), strPtr("13:00")
		}, true},
		{"break outside window", func(s *domain.Schedule) {
			s.BreakStart, s.BreakEnd = strPtr("08:00"), strPtr("10:00")
		}, true},
		{"half-open break", func(s *domain.Schedule) {
			s.BreakEnd = nil
		}, true},
		{"zero slot duration", func(s *domain.Schedule) {
			s.SlotDuration = 0
		}, true},
		{"garbage start time", func(s *domain.Schedule) {
			s.StartTime = "nine"
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchedule()
			tt.mutate(&s)
			err := ValidateSchedule(s)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchedule() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func containsSlot(slots []string, want string) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}
