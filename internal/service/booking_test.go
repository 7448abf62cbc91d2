package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic/internal/domain"
)

type bookingFixture struct {
	svc     *BookingServiceImpl
	drafts  *fakeDraftRepo
	doctors *fakeDoctorRepo
	appts   *fakeAppointmentRepo
	date    string
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	doctor := &domain.Doctor{ID: 2, UserID: 20, SpecializationID: 5, IsActive: true, ConsultationDuration: 30}
	patient := &domain.Patient{ID: 1, UserID: 11}
	medService := &domain.Service{ID: 3, IsActive: true}

	day := utcMidnight(time.Now().AddDate(0, 0, 1))
	schedule := &domain.Schedule{
		DoctorID:     2,
		Date:         day,
		StartTime:    "09:00",
		EndTime:      "18:00",
		SlotDuration: 30,
		IsAvailable:  true,
		IsWorkingDay: true,
	}

	drafts := newFakeDraftRepo()
	doctors := newFakeDoctorRepo(doctor)
	patients := newFakePatientRepo(patient)
	services := newFakeServiceRepo(medService)
	services.doctors[3] = []int64{2}
	schedules := newFakeScheduleRepo(schedule)
	appts := newFakeAppointmentRepo()

	scheduleSvc := NewScheduleService(schedules, doctors, appts, testClinicConfig(), zap.NewNop())
	apptSvc := NewAppointmentService(appts, schedules, doctors, patients, &fakeReviewRepo{}, scheduleSvc, zap.NewNop())
	svc := NewBookingService(drafts, doctors, services, patients, apptSvc, scheduleSvc, testClinicConfig(), zap.NewNop())

	return &bookingFixture{
		svc:     svc,
		drafts:  drafts,
		doctors: doctors,
		appts:   appts,
		date:    day.Format("2006-01-02"),
	}
}

func TestBooking_FullFlow(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if draft.Token == "" {
		t.Fatal("Start() returned draft without token")
	}
	if draft.Step() != 1 {
		t.Errorf("new draft step = %d, want 1", draft.Step())
	}

	if draft, err = f.svc.SetSpecialization(ctx, draft.Token, domain.BookingSpecializationDTO{SpecializationID: 5}); err != nil {
		t.Fatalf("SetSpecialization() error = %v", err)
	}
	if draft, err = f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 2}); err != nil {
		t.Fatalf("SetDoctor() error = %v", err)
	}
	if draft, err = f.svc.SetService(ctx, draft.Token, domain.BookingServiceDTO{ServiceID: 3}); err != nil {
		t.Fatalf("SetService() error = %v", err)
	}
	if draft, err = f.svc.SetSlot(ctx, draft.Token, domain.BookingSlotDTO{Date: f.date, Time: "09:30"}); err != nil {
		t.Fatalf("SetSlot() error = %v", err)
	}
	if draft.Step() != 4 {
		t.Fatalf("draft step after slot = %d, want 4", draft.Step())
	}

	appointment, err := f.svc.Confirm(ctx, draft.Token, 1, domain.BookingConfirmDTO{Symptoms: "кашель"})
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if appointment.DoctorID != 2 || appointment.PatientID != 1 {
		t.Errorf("appointment parties = doctor %d patient %d, want 2/1", appointment.DoctorID, appointment.PatientID)
	}
	if appointment.AppointmentTime.Format("15:04") != "09:30" {
		t.Errorf("appointment time = %s, want 09:30", appointment.AppointmentTime.Format("15:04"))
	}

	if _, err := f.svc.Get(ctx, draft.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("draft after confirm: error = %v, want ErrNotFound", err)
	}
}

func TestBooking_ServiceFirstFlow(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if draft, err = f.svc.SetService(ctx, draft.Token, domain.BookingServiceDTO{ServiceID: 3}); err != nil {
		t.Fatalf("SetService() as the first step: error = %v", err)
	}
	if draft.Step() != 2 {
		t.Errorf("draft step after service = %d, want 2", draft.Step())
	}

	if draft, err = f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 2}); err != nil {
		t.Fatalf("SetDoctor() error = %v", err)
	}
	if draft, err = f.svc.SetSlot(ctx, draft.Token, domain.BookingSlotDTO{Date: f.date, Time: "10:00"}); err != nil {
		t.Fatalf("SetSlot() error = %v", err)
	}

	appointment, err := f.svc.Confirm(ctx, draft.Token, 1, domain.BookingConfirmDTO{})
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if appointment.ServiceID == nil || *appointment.ServiceID != 3 {
		t.Errorf("appointment service = %v, want 3", appointment.ServiceID)
	}
}

func TestBooking_DoctorNotProvidingService(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.doctors.doctors[4] = &domain.Doctor{ID: 4, UserID: 40, SpecializationID: 5, IsActive: true, ConsultationDuration: 30}

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := f.svc.SetService(ctx, draft.Token, domain.BookingServiceDTO{ServiceID: 3}); err != nil {
		t.Fatalf("SetService() error = %v", err)
	}

	if _, err := f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 4}); err == nil {
		t.Error("SetDoctor() expected error for doctor not providing the chosen service")
	}
}

func TestBooking_ConfirmWithoutService(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := f.svc.SetSpecialization(ctx, draft.Token, domain.BookingSpecializationDTO{SpecializationID: 5}); err != nil {
		t.Fatalf("SetSpecialization() error = %v", err)
	}
	if _, err := f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 2}); err != nil {
		t.Fatalf("SetDoctor() error = %v", err)
	}
	if _, err := f.svc.SetSlot(ctx, draft.Token, domain.BookingSlotDTO{Date: f.date, Time: "11:00"}); err != nil {
		t.Fatalf("SetSlot() error = %v", err)
	}

	appointment, err := f.svc.Confirm(ctx, draft.Token, 1, domain.BookingConfirmDTO{})
	if err != nil {
		t.Fatalf("Confirm() without a service: error = %v", err)
	}
	if appointment.ServiceID != nil {
		t.Errorf("appointment service = %v, want nil consultation", *appointment.ServiceID)
	}
	if appointment.Duration != 30 {
		t.Errorf("appointment duration = %d, want the doctor's consultation length 30", appointment.Duration)
	}
}

func TestBooking_SpecializationChangeResetsSteps(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := f.svc.SetSpecialization(ctx, draft.Token, domain.BookingSpecializationDTO{SpecializationID: 5}); err != nil {
		t.Fatalf("SetSpecialization() error = %v", err)
	}
	if _, err := f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 2}); err != nil {
		t.Fatalf("SetDoctor() error = %v", err)
	}

	draft, err = f.svc.SetSpecialization(ctx, draft.Token, domain.BookingSpecializationDTO{SpecializationID: 5})
	if err != nil {
		t.Fatalf("repeated SetSpecialization() error = %v", err)
	}
	if draft.DoctorID != nil {
		t.Error("changing specialization must reset the chosen doctor")
	}
	if draft.Step() != 2 {
		t.Errorf("draft step after reset = %d, want 2", draft.Step())
	}
}

func TestBooking_DoctorOutsideSpecialization(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := f.svc.SetSpecialization(ctx, draft.Token, domain.BookingSpecializationDTO{SpecializationID: 6}); err != nil {
		t.Fatalf("SetSpecialization() error = %v", err)
	}

	if _, err := f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 2}); err == nil {
		t.Error("SetDoctor() expected error for doctor outside the chosen specialization")
	}
}

func TestBooking_StepOrderEnforced(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, err := f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 2}); !errors.Is(err, domain.ErrDraftIncomplete) {
		t.Errorf("SetDoctor() before specialization: error = %v, want ErrDraftIncomplete", err)
	}
	if _, err := f.svc.SetSlot(ctx, draft.Token, domain.BookingSlotDTO{Date: f.date, Time: "09:00"}); !errors.Is(err, domain.ErrDraftIncomplete) {
		t.Errorf("SetSlot() before doctor: error = %v, want ErrDraftIncomplete", err)
	}
	if _, err := f.svc.Confirm(ctx, draft.Token, 1, domain.BookingConfirmDTO{}); !errors.Is(err, domain.ErrDraftIncomplete) {
		t.Errorf("Confirm() of incomplete draft: error = %v, want ErrDraftIncomplete", err)
	}
}

func TestBooking_ConfirmByStranger(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, err := f.svc.Confirm(ctx, draft.Token, 99, domain.BookingConfirmDTO{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Confirm() by another patient: error = %v, want ErrForbidden", err)
	}
}

func TestBooking_ExpiredDraft(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	patientID := int64(1)
	expired := domain.BookingDraft{
		Token:     "expired-token",
		PatientID: &patientID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := f.drafts.Create(ctx, expired); err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	if _, err := f.svc.Get(ctx, "expired-token"); !errors.Is(err, domain.ErrDraftExpired) {
		t.Errorf("Get() of expired draft: error = %v, want ErrDraftExpired", err)
	}
	if _, ok := f.drafts.drafts["expired-token"]; ok {
		t.Error("expired draft must be removed on access")
	}
}

func TestBooking_TakenSlotRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	at, _ := time.Parse("2006-01-02 15:04", f.date+" 09:30")
	if _, _, err := f.appts.Create(ctx, domain.Appointment{
		PatientID:       7,
		DoctorID:        2,
		AppointmentTime: at,
		Status:          domain.AppointmentStatusConfirmed,
	}); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	draft, err := f.svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := f.svc.SetSpecialization(ctx, draft.Token, domain.BookingSpecializationDTO{SpecializationID: 5}); err != nil {
		t.Fatalf("SetSpecialization() error = %v", err)
	}
	if _, err := f.svc.SetDoctor(ctx, draft.Token, domain.BookingDoctorDTO{DoctorID: 2}); err != nil {
		t.Fatalf("SetDoctor() error = %v", err)
	}
	if _, err := f.svc.SetService(ctx, draft.Token, domain.BookingServiceDTO{ServiceID: 3}); err != nil {
		t.Fatalf("SetService() error = %v", err)
	}

	_, err = f.svc.SetSlot(ctx, draft.Token, domain.BookingSlotDTO{Date: f.date, Time: "09:30"})
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Errorf("SetSlot() on a taken slot: error = %v, want ErrSlotUnavailable", err)
	}
}
