package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/internal/scheduling"
)

type ScheduleServiceImpl struct {
	repo       repository.ScheduleRepository
	doctorRepo repository.DoctorRepository
	apptRepo   repository.AppointmentRepository
	defaults   config.ClinicConfig
	logger     *zap.Logger
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	doctorRepo repository.DoctorRepository,
	apptRepo repository.AppointmentRepository,
	defaults config.ClinicConfig,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		apptRepo:   apptRepo,
		defaults:   defaults,
		logger:     logger,
	}
}

func (s *ScheduleServiceImpl) Create(ctx context.Context, doctorID int64, dto domain.CreateScheduleDTO) (int64, error) {
	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: некорректная дата %q", domain.ErrInvalidSchedule, dto.Date)
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	slotDuration := dto.SlotDuration
	if slotDuration == 0 {
		slotDuration = doctor.ConsultationDuration
	}

	isWorkingDay := true
	if dto.IsWorkingDay != nil {
		isWorkingDay = *dto.IsWorkingDay
	}

	schedule := domain.Schedule{
		DoctorID:     doctorID,
		Date:         date,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		SlotDuration: slotDuration,
		BreakStart:   dto.BreakStart,
		BreakEnd:     dto.BreakEnd,
		IsAvailable:  true,
		IsWorkingDay: isWorkingDay,
		Room:         dto.Room,
		Notes:        dto.Notes,
	}

	if err := scheduling.ValidateSchedule(schedule); err != nil {
		return 0, err
	}

	return s.repo.Create(ctx, schedule)
}

func (s *ScheduleServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ScheduleServiceImpl) GetByDoctorAndDate(ctx context.Context, doctorID int64, date string) (*domain.Schedule, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("некорректная дата %q", date)
	}
	return s.repo.GetByDoctorAndDate(ctx, doctorID, day)
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateScheduleDTO) error {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if dto.StartTime != nil {
		schedule.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		schedule.EndTime = *dto.EndTime
	}
	if dto.SlotDuration != nil {
		schedule.SlotDuration = *dto.SlotDuration
	}
	if dto.BreakStart != nil {
		schedule.BreakStart = dto.BreakStart
	}
	if dto.BreakEnd != nil {
		schedule.BreakEnd = dto.BreakEnd
	}
	if dto.IsAvailable != nil {
		schedule.IsAvailable = *dto.IsAvailable
	}
	if dto.IsWorkingDay != nil {
		schedule.IsWorkingDay = *dto.IsWorkingDay
	}
	if dto.Room != nil {
		schedule.Room = *dto.Room
	}
	if dto.Notes != nil {
		schedule.Notes = *dto.Notes
	}

	if err := scheduling.ValidateSchedule(*schedule); err != nil {
		return err
	}

	return s.repo.Update(ctx, *schedule)
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ScheduleServiceImpl) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 31
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *ScheduleServiceImpl) ToggleAvailability(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule.IsAvailable = !schedule.IsAvailable
	if err := s.repo.Update(ctx, *schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// EnsureSchedule возвращает существующее расписание или создаёт день по
// умолчанию: стандартное окно клиники, длительность консультации врача,
// доступно и рабочий день.
func (s *ScheduleServiceImpl) EnsureSchedule(ctx context.Context, doctorID int64, date time.Time) (*domain.Schedule, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	schedule, err := s.repo.GetByDoctorAndDate(ctx, doctorID, day)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slotDuration := doctor.ConsultationDuration
	if slotDuration <= 0 {
		slotDuration = s.defaults.DefaultSlotDuration
	}

	created := domain.Schedule{
		DoctorID:     doctorID,
		Date:         day,
		StartTime:    s.defaults.DefaultDayStart,
		EndTime:      s.defaults.DefaultDayEnd,
		SlotDuration: slotDuration,
		IsAvailable:  true,
		IsWorkingDay: true,
	}

	id, err := s.repo.Create(ctx, created)
	if err != nil {
		// Конкурентное создание на ту же дату: перечитываем.
		if errors.Is(err, domain.ErrScheduleExists) {
			return s.repo.GetByDoctorAndDate(ctx, doctorID, day)
		}
		return nil, err
	}

	s.logger.Info("создано расписание по умолчанию",
		zap.Int64("doctorId", doctorID),
		zap.String("date", day.Format("2006-01-02")),
	)

	created.ID = id
	return &created, nil
}

// FreeSlots возвращает свободные слоты на дату. Отсутствие расписания не
// ошибка: список пуст.
func (s *ScheduleServiceImpl) FreeSlots(ctx context.Context, doctorID int64, date string) ([]string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("некорректная дата %q", date)
	}

	schedule, err := s.repo.GetByDoctorAndDate(ctx, doctorID, day)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if !schedule.IsAvailable || !schedule.IsWorkingDay {
		return []string{}, nil
	}

	appts, err := s.apptRepo.ListForDay(ctx, doctorID, day, domain.ActiveStatuses)
	if err != nil {
		return nil, err
	}

	return scheduling.FreeSlots(*schedule, appts), nil
}

// AvailableDays собирает календарь {дата, слоты} на days дней вперёд.
// Дни без расписания отдаются с пустым списком слотов.
func (s *ScheduleServiceImpl) AvailableDays(ctx context.Context, doctorID int64, from time.Time, days int) ([]domain.DayAvailability, error) {
	if days <= 0 {
		days = s.defaults.AvailabilityDays
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days-1)

	schedules, err := s.repo.ListRange(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]domain.Schedule, len(schedules))
	for _, sch := range schedules {
		byDate[sch.Date.Format("2006-01-02")] = sch
	}

	result := make([]domain.DayAvailability, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")

		availability := domain.DayAvailability{Date: key, Slots: []string{}}

		if sch, ok := byDate[key]; ok && sch.IsAvailable && sch.IsWorkingDay {
			appts, err := s.apptRepo.ListForDay(ctx, doctorID, day, domain.ActiveStatuses)
			if err != nil {
				return nil, err
			}
			availability.Slots = scheduling.FreeSlots(sch, appts)
		}

		result = append(result, availability)
	}

	return result, nil
}
