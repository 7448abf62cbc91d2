package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic/internal/domain"
)

// racingAppointmentRepo прячет существующие записи от проверки слота,
// воспроизводя конкурентную вставку между проверкой и созданием.
type racingAppointmentRepo struct {
	*fakeAppointmentRepo
}

func (r *racingAppointmentRepo) ListForDay(ctx context.Context, doctorID int64, date time.Time, statuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	return nil, nil
}

func newTestAppointmentService(appts *fakeAppointmentRepo) (*AppointmentServiceImpl, *fakeScheduleRepo) {
	doctor := &domain.Doctor{ID: 2, UserID: 20, IsActive: true, ConsultationDuration: 30}
	patient := &domain.Patient{ID: 1, UserID: 11}

	schedules := newFakeScheduleRepo()
	doctors := newFakeDoctorRepo(doctor)
	patients := newFakePatientRepo(patient)

	scheduleSvc := NewScheduleService(schedules, doctors, appts, testClinicConfig(), zap.NewNop())
	svc := NewAppointmentService(appts, schedules, doctors, patients, &fakeReviewRepo{rating: 4.5}, scheduleSvc, zap.NewNop())
	return svc, schedules
}

func TestAppointmentService_Create(t *testing.T) {
	appts := newFakeAppointmentRepo()
	svc, schedules := newTestAppointmentService(appts)

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	got, err := svc.Create(context.Background(), 11, domain.CreateAppointmentDTO{
		PatientID: 1,
		DoctorID:  2,
		Date:      date,
		Time:      "10:00",
		Symptoms:  "головная боль",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got.Status != domain.AppointmentStatusPending {
		t.Errorf("Create() status = %s, want pending", got.Status)
	}
	if !strings.HasPrefix(got.Number, "APT-") {
		t.Errorf("Create() number = %q, want APT- prefix", got.Number)
	}
	if got.Duration != 30 {
		t.Errorf("Create() duration = %d, want 30", got.Duration)
	}
	if len(schedules.schedules) != 1 {
		t.Error("Create() must provision the doctor's default schedule for the day")
	}
}

func TestAppointmentService_Create_OccupiedSlot(t *testing.T) {
	appts := newFakeAppointmentRepo()
	svc, _ := newTestAppointmentService(appts)

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	dto := domain.CreateAppointmentDTO{PatientID: 1, DoctorID: 2, Date: date, Time: "10:00"}

	if _, err := svc.Create(context.Background(), 11, dto); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(context.Background(), 11, dto)
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Errorf("second Create() error = %v, want ErrSlotUnavailable", err)
	}
}

func TestAppointmentService_Create_ConcurrentDuplicate(t *testing.T) {
	inner := newFakeAppointmentRepo()
	appts := &racingAppointmentRepo{fakeAppointmentRepo: inner}

	doctor := &domain.Doctor{ID: 2, UserID: 20, IsActive: true, ConsultationDuration: 30}
	patient := &domain.Patient{ID: 1, UserID: 11}
	schedules := newFakeScheduleRepo()
	doctors := newFakeDoctorRepo(doctor)

	scheduleSvc := NewScheduleService(schedules, doctors, appts, testClinicConfig(), zap.NewNop())
	svc := NewAppointmentService(appts, schedules, doctors, newFakePatientRepo(patient), &fakeReviewRepo{}, scheduleSvc, zap.NewNop())

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	dto := domain.CreateAppointmentDTO{PatientID: 1, DoctorID: 2, Date: date, Time: "10:00"}

	if _, err := svc.Create(context.Background(), 11, dto); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	// Проверка слота не видит первую запись, дубль режет индекс.
	_, err := svc.Create(context.Background(), 11, dto)
	if !errors.Is(err, domain.ErrSlotTaken) {
		t.Errorf("Create() error = %v, want ErrSlotTaken from the unique index", err)
	}
}

func TestAppointmentService_Create_PastSlot(t *testing.T) {
	appts := newFakeAppointmentRepo()
	svc, _ := newTestAppointmentService(appts)

	date := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := svc.Create(context.Background(), 11, domain.CreateAppointmentDTO{
		PatientID: 1,
		DoctorID:  2,
		Date:      date,
		Time:      "10:00",
	})
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Errorf("Create() error = %v, want ErrSlotUnavailable for a past slot", err)
	}
}

func seedAppointment(t *testing.T, appts *fakeAppointmentRepo, patientID int64, status domain.AppointmentStatus, at time.Time) int64 {
	t.Helper()
	id, _, err := appts.Create(context.Background(), domain.Appointment{
		PatientID:       patientID,
		DoctorID:        2,
		AppointmentTime: at,
		Status:          status,
	})
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return id
}

func TestAppointmentService_ChangeStatus(t *testing.T) {
	appts := newFakeAppointmentRepo()
	svc, _ := newTestAppointmentService(appts)
	at := time.Now().Add(24 * time.Hour)

	id := seedAppointment(t, appts, 1, domain.AppointmentStatusPending, at)

	if err := svc.ChangeStatus(context.Background(), id, domain.AppointmentStatusConfirmed, domain.UserRoleDoctor); err != nil {
		t.Fatalf("ChangeStatus(pending->confirmed) error = %v", err)
	}

	err := svc.ChangeStatus(context.Background(), id, domain.AppointmentStatusPending, domain.UserRoleAdmin)
	if !errors.Is(err, domain.ErrInvalidStatusChange) {
		t.Errorf("ChangeStatus(confirmed->pending) error = %v, want ErrInvalidStatusChange", err)
	}

	err = svc.ChangeStatus(context.Background(), id, domain.AppointmentStatusCompleted, domain.UserRolePatient)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("patient completing a visit: error = %v, want ErrForbidden", err)
	}

	if err := svc.ChangeStatus(context.Background(), id, domain.AppointmentStatusCompleted, domain.UserRoleDoctor); err != nil {
		t.Errorf("ChangeStatus(confirmed->completed) error = %v", err)
	}
}

func TestAppointmentService_CancelByPatient(t *testing.T) {
	appts := newFakeAppointmentRepo()
	svc, _ := newTestAppointmentService(appts)
	at := time.Now().Add(24 * time.Hour)

	own := seedAppointment(t, appts, 1, domain.AppointmentStatusPending, at)
	if err := svc.CancelByPatient(context.Background(), own, 1); err != nil {
		t.Fatalf("CancelByPatient(own) error = %v", err)
	}
	got, _ := appts.GetByID(context.Background(), own)
	if got.Status != domain.AppointmentStatusCancelled {
		t.Errorf("status after cancel = %s, want cancelled", got.Status)
	}

	foreign := seedAppointment(t, appts, 7, domain.AppointmentStatusPending, at.Add(time.Hour))
	err := svc.CancelByPatient(context.Background(), foreign, 1)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("CancelByPatient(foreign) error = %v, want ErrForbidden", err)
	}

	past := seedAppointment(t, appts, 1, domain.AppointmentStatusConfirmed, time.Now().Add(-time.Hour))
	err = svc.CancelByPatient(context.Background(), past, 1)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("CancelByPatient(past) error = %v, want ErrForbidden", err)
	}
}

func TestAppointmentService_Statistics(t *testing.T) {
	appts := newFakeAppointmentRepo()
	svc, _ := newTestAppointmentService(appts)
	at := time.Now().Add(-2 * time.Hour)

	seedAppointment(t, appts, 1, domain.AppointmentStatusCompleted, at)
	seedAppointment(t, appts, 1, domain.AppointmentStatusCancelled, at.Add(time.Hour))

	stats, err := svc.Statistics(context.Background(), 2)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("Statistics().Total = %d, want 2", stats.Total)
	}
	if stats.ByStatus[domain.AppointmentStatusCompleted] != 1 {
		t.Errorf("completed count = %d, want 1", stats.ByStatus[domain.AppointmentStatusCompleted])
	}
	if stats.AverageRating != 4.5 {
		t.Errorf("Statistics().AverageRating = %v, want 4.5", stats.AverageRating)
	}
}
