package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/internal/scheduling"
)

type AppointmentServiceImpl struct {
	repo         repository.AppointmentRepository
	scheduleRepo repository.ScheduleRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	reviewRepo   repository.ReviewRepository
	schedules    ScheduleService
	logger       *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	scheduleRepo repository.ScheduleRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	reviewRepo repository.ReviewRepository,
	schedules ScheduleService,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		reviewRepo:   reviewRepo,
		schedules:    schedules,
		logger:       logger,
	}
}

// Create проверяет слот и создаёт запись в статусе pending. Проверка и
// вставка не атомарны, поэтому гонку закрывает уникальный индекс по
// (врач, время) в репозитории: конкурентный дубль вернётся как
// ErrSlotTaken.
func (s *AppointmentServiceImpl) Create(ctx context.Context, createdBy int64, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	patient, err := s.patientRepo.GetByID(ctx, dto.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsActive {
		return nil, errors.New("врач не ведёт приём")
	}

	appointmentTime, err := parseSlotTime(dto.Date, dto.Time)
	if err != nil {
		return nil, err
	}

	schedule, err := s.schedules.EnsureSchedule(ctx, dto.DoctorID, appointmentTime)
	if err != nil {
		return nil, err
	}

	appts, err := s.repo.ListForDay(ctx, dto.DoctorID, appointmentTime, domain.ActiveStatuses)
	if err != nil {
		return nil, err
	}

	if !scheduling.IsBookable(*schedule, appts, appointmentTime, time.Now()) {
		return nil, domain.ErrSlotUnavailable
	}

	appointment := domain.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		ServiceID:       dto.ServiceID,
		ScheduleID:      &schedule.ID,
		AppointmentTime: appointmentTime,
		Duration:        schedule.SlotDuration,
		Status:          domain.AppointmentStatusPending,
		Symptoms:        dto.Symptoms,
		CreatedBy:       createdBy,
	}

	id, number, err := s.repo.Create(ctx, appointment)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			// Для пользователя это тот же случай, что и занятый слот.
			return nil, domain.ErrSlotTaken
		}
		s.logger.Error("ошибка создания записи", zap.Error(err))
		return nil, errors.New("ошибка при создании записи")
	}

	s.logger.Info("создана запись на приём",
		zap.Int64("appointmentId", id),
		zap.String("number", number),
		zap.Int64("doctorId", doctor.ID),
		zap.Time("time", appointmentTime),
	)

	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	return s.repo.Update(ctx, id, dto)
}

// ChangeStatus применяет переход машины статусов. Пациенту разрешена
// только отмена; остальные переходы делает врач или администратор.
func (s *AppointmentServiceImpl) ChangeStatus(ctx context.Context, id int64, status domain.AppointmentStatus, actorRole domain.UserRole) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanTransition(appointment.Status, status) {
		return domain.ErrInvalidStatusChange
	}

	if actorRole == domain.UserRolePatient && status != domain.AppointmentStatusCancelled {
		return domain.ErrForbidden
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("изменён статус записи",
		zap.Int64("appointmentId", id),
		zap.String("from", string(appointment.Status)),
		zap.String("to", string(status)),
	)

	return nil
}

func (s *AppointmentServiceImpl) CancelByPatient(ctx context.Context, id, patientID int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.PatientMayCancel(appointment, patientID, time.Now()) {
		return domain.ErrForbidden
	}

	return s.repo.UpdateStatus(ctx, id, domain.AppointmentStatusCancelled)
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// Statistics агрегирует приёмы врача за последние 30 дней.
func (s *AppointmentServiceImpl) Statistics(ctx context.Context, doctorID int64) (*domain.DoctorStatistics, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	stats := &domain.DoctorStatistics{
		ByStatus: make(map[domain.AppointmentStatus]int),
	}

	statuses := []domain.AppointmentStatus{
		domain.AppointmentStatusPending,
		domain.AppointmentStatusConfirmed,
		domain.AppointmentStatusCancelled,
		domain.AppointmentStatusCompleted,
		domain.AppointmentStatusNoShow,
	}
	for _, status := range statuses {
		st := status
		count, err := s.repo.CountByFilter(ctx, domain.AppointmentFilter{
			DoctorID: &doctorID,
			Status:   &st,
			DateFrom: &from,
			DateTo:   &to,
		})
		if err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}

	morning, day, evening, err := s.repo.CountByTimeOfDay(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	stats.Morning, stats.Day, stats.Evening = morning, day, evening

	popular, err := s.repo.PopularServices(ctx, doctorID, from, to, 5)
	if err != nil {
		return nil, err
	}
	stats.PopularService = popular

	rating, err := s.reviewRepo.AverageRating(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	stats.AverageRating = rating

	return stats, nil
}

// parseSlotTime собирает дату и время слота в time.Time (UTC).
func parseSlotTime(date, clock string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректные дата или время: %w", err)
	}
	return t, nil
}
