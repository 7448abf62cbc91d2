package domain

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusPending, AppointmentStatusNoShow, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusNoShow, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, AppointmentStatusConfirmed, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPatientMayCancel(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	base := Appointment{PatientID: 7, Status: AppointmentStatusPending, AppointmentTime: future}

	if !PatientMayCancel(&base, 7, now) {
		t.Errorf("patient must be able to cancel own future pending appointment")
	}

	confirmed := base
	confirmed.Status = AppointmentStatusConfirmed
	if !PatientMayCancel(&confirmed, 7, now) {
		t.Errorf("patient must be able to cancel own future confirmed appointment")
	}

	foreign := base
	if PatientMayCancel(&foreign, 8, now) {
		t.Errorf("patient must not cancel someone else's appointment")
	}

	completed := base
	completed.Status = AppointmentStatusCompleted
	if PatientMayCancel(&completed, 7, now) {
		t.Errorf("terminal appointment must not be cancellable")
	}

	passed := base
	passed.AppointmentTime = past
	if PatientMayCancel(&passed, 7, now) {
		t.Errorf("past appointment must not be cancellable")
	}
}

func TestAppointmentStatus_IsActive(t *testing.T) {
	active := []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("%s must be active", s)
		}
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
	terminal := []AppointmentStatus{AppointmentStatusCancelled, AppointmentStatusCompleted, AppointmentStatusNoShow}
	for _, s := range terminal {
		if s.IsActive() {
			t.Errorf("%s must not be active", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}
