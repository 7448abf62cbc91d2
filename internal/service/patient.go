package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/pkg/validator"
)

type PatientServiceImpl struct {
	repo     repository.PatientRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewPatientService(repo repository.PatientRepository, userRepo repository.UserRepository, logger *zap.Logger) *PatientServiceImpl {
	return &PatientServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *PatientServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreatePatientDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.Role != domain.UserRolePatient {
		return 0, errors.New("пользователь не имеет роли пациента")
	}

	if !validator.ValidateInsurancePolicy(dto.InsurancePolicy) {
		return 0, errors.New("некорректный номер полиса ОМС")
	}
	if !validator.ValidatePhone(dto.Phone) {
		return 0, errors.New("некорректный номер телефона")
	}

	if existing, err := s.repo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return 0, errors.New("профиль пациента уже существует")
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		if errors.Is(err, domain.ErrPolicyTaken) {
			return 0, err
		}
		s.logger.Error("ошибка при создании пациента", zap.Error(err))
		return 0, errors.New("ошибка при создании профиля пациента")
	}

	return id, nil
}

func (s *PatientServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Patient, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *PatientServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	if dto.InsurancePolicy != nil && !validator.ValidateInsurancePolicy(*dto.InsurancePolicy) {
		return errors.New("некорректный номер полиса ОМС")
	}
	if dto.Phone != nil && !validator.ValidatePhone(*dto.Phone) {
		return errors.New("некорректный номер телефона")
	}
	return s.repo.Update(ctx, id, dto)
}

func (s *PatientServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
