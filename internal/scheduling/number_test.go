package scheduling

import (
	"testing"
	"time"
)

func TestAppointmentNumber_Format(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := AppointmentNumber(date, 1); got != "APT-20240315-0001" {
		t.Errorf("AppointmentNumber() = %q, want APT-20240315-0001", got)
	}
	if got := AppointmentNumber(date, 2); got != "APT-20240315-0002" {
		t.Errorf("AppointmentNumber() = %q, want APT-20240315-0002", got)
	}
	if got := AppointmentNumber(date, 12345); got != "APT-20240315-12345" {
		t.Errorf("AppointmentNumber() = %q, want APT-20240315-12345", got)
	}
}

func TestNumberPrefix(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := NumberPrefix(date); got != "APT-20240315-" {
		t.Errorf("NumberPrefix() = %q, want APT-20240315-", got)
	}
}

func TestSequenceOf_RoundTrip(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, seq := range []int{1, 7, 42, 9999, 10001} {
		got, err := sequenceOf(AppointmentNumber(date, seq))
		if err != nil {
			t.Fatalf("sequenceOf() unexpected error: %v", err)
		}
		if got != seq {
			t.Errorf("sequenceOf() = %d, want %d", got, seq)
		}
	}
}

func TestSequenceOf_Invalid(t *testing.T) {
	for _, number := range []string{"", "APT-20240315-", "APT-20240315-abcd", "APT-20240315-0000", "nonsense"} {
		if _, err := sequenceOf(number); err == nil {
			t.Errorf("sequenceOf(%q) expected an error", number)
		}
	}
}
