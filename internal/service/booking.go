package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/domain"
	"clinic/internal/repository"
)

// BookingServiceImpl ведёт пошаговый мастер записи. Состояние шага живёт в
// черновике, который клиент передаёт по токену; подтверждение превращает
// черновик в запись и удаляет его.
type BookingServiceImpl struct {
	drafts       repository.BookingDraftRepository
	doctorRepo   repository.DoctorRepository
	serviceRepo  repository.ServiceRepository
	patientRepo  repository.PatientRepository
	appointments AppointmentService
	schedules    ScheduleService
	defaults     config.ClinicConfig
	logger       *zap.Logger
}

func NewBookingService(
	drafts repository.BookingDraftRepository,
	doctorRepo repository.DoctorRepository,
	serviceRepo repository.ServiceRepository,
	patientRepo repository.PatientRepository,
	appointments AppointmentService,
	schedules ScheduleService,
	defaults config.ClinicConfig,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		drafts:       drafts,
		doctorRepo:   doctorRepo,
		serviceRepo:  serviceRepo,
		patientRepo:  patientRepo,
		appointments: appointments,
		schedules:    schedules,
		defaults:     defaults,
		logger:       logger,
	}
}

func (s *BookingServiceImpl) Start(ctx context.Context, patientID int64) (*domain.BookingDraft, error) {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	draft := domain.BookingDraft{
		Token:     uuid.New().String(),
		PatientID: &patient.ID,
		ExpiresAt: now.Add(s.defaults.BookingDraftTTL),
		CreatedAt: now,
	}

	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}

	return &draft, nil
}

func (s *BookingServiceImpl) Get(ctx context.Context, token string) (*domain.BookingDraft, error) {
	return s.activeDraft(ctx, token)
}

func (s *BookingServiceImpl) SetSpecialization(ctx context.Context, token string, dto domain.BookingSpecializationDTO) (*domain.BookingDraft, error) {
	draft, err := s.activeDraft(ctx, token)
	if err != nil {
		return nil, err
	}

	draft.SpecializationID = &dto.SpecializationID
	// Смена специализации сбрасывает зависимые шаги.
	draft.DoctorID = nil
	draft.ServiceID = nil
	draft.Date = nil
	draft.Time = nil

	if err := s.drafts.Update(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *BookingServiceImpl) SetDoctor(ctx context.Context, token string, dto domain.BookingDoctorDTO) (*domain.BookingDraft, error) {
	draft, err := s.activeDraft(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft.SpecializationID == nil && draft.ServiceID == nil {
		return nil, domain.ErrDraftIncomplete
	}

	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsActive {
		return nil, errors.New("врач не ведёт приём")
	}
	if draft.SpecializationID != nil && doctor.SpecializationID != *draft.SpecializationID {
		return nil, errors.New("врач не относится к выбранной специализации")
	}
	if draft.ServiceID != nil {
		doctorIDs, err := s.serviceRepo.GetDoctorIDs(ctx, *draft.ServiceID)
		if err != nil {
			return nil, err
		}
		if len(doctorIDs) > 0 && !containsID(doctorIDs, doctor.ID) {
			return nil, errors.New("врач не оказывает выбранную услугу")
		}
	}

	draft.DoctorID = &doctor.ID
	draft.Date = nil
	draft.Time = nil

	if err := s.drafts.Update(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetService принимает услугу и как первый шаг мастера: тогда врач
// выбирается позже из списка врачей, оказывающих услугу.
func (s *BookingServiceImpl) SetService(ctx context.Context, token string, dto domain.BookingServiceDTO) (*domain.BookingDraft, error) {
	draft, err := s.activeDraft(ctx, token)
	if err != nil {
		return nil, err
	}

	svc, err := s.serviceRepo.GetByID(ctx, dto.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, errors.New("услуга недоступна")
	}

	if draft.DoctorID != nil {
		doctorIDs, err := s.serviceRepo.GetDoctorIDs(ctx, svc.ID)
		if err != nil {
			return nil, err
		}
		if len(doctorIDs) > 0 && !containsID(doctorIDs, *draft.DoctorID) {
			return nil, errors.New("врач не оказывает выбранную услугу")
		}
	}

	draft.ServiceID = &svc.ID

	if err := s.drafts.Update(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *BookingServiceImpl) SetSlot(ctx context.Context, token string, dto domain.BookingSlotDTO) (*domain.BookingDraft, error) {
	draft, err := s.activeDraft(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft.DoctorID == nil {
		return nil, domain.ErrDraftIncomplete
	}

	slots, err := s.schedules.FreeSlots(ctx, *draft.DoctorID, dto.Date)
	if err != nil {
		return nil, err
	}
	if !containsString(slots, dto.Time) {
		return nil, domain.ErrSlotUnavailable
	}

	draft.Date = &dto.Date
	draft.Time = &dto.Time

	if err := s.drafts.Update(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *BookingServiceImpl) Confirm(ctx context.Context, token string, patientID int64, dto domain.BookingConfirmDTO) (*domain.Appointment, error) {
	draft, err := s.activeDraft(ctx, token)
	if err != nil {
		return nil, err
	}

	if draft.PatientID == nil || *draft.PatientID != patientID {
		return nil, domain.ErrForbidden
	}
	if draft.Step() != 4 {
		return nil, domain.ErrDraftIncomplete
	}

	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	// Без выбранной услуги запись оформляется как обычная консультация врача.
	appointment, err := s.appointments.Create(ctx, patient.UserID, domain.CreateAppointmentDTO{
		PatientID: patientID,
		DoctorID:  *draft.DoctorID,
		ServiceID: draft.ServiceID,
		Date:      *draft.Date,
		Time:      *draft.Time,
		Symptoms:  dto.Symptoms,
	})
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, token); err != nil {
		s.logger.Warn("не удалось удалить черновик после подтверждения",
			zap.String("token", token), zap.Error(err))
	}

	return appointment, nil
}

func (s *BookingServiceImpl) activeDraft(ctx context.Context, token string) (*domain.BookingDraft, error) {
	draft, err := s.drafts.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft.Expired(time.Now()) {
		s.drafts.Delete(ctx, token)
		return nil, domain.ErrDraftExpired
	}
	return draft, nil
}

func containsID(ids []int64, want int64) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
