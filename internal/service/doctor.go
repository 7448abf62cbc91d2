package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/internal/storage"
)

type DoctorServiceImpl struct {
	repo        repository.DoctorRepository
	userRepo    repository.UserRepository
	specRepo    repository.SpecializationRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewDoctorService(
	repo repository.DoctorRepository,
	userRepo repository.UserRepository,
	specRepo repository.SpecializationRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:        repo,
		userRepo:    userRepo,
		specRepo:    specRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.Role != domain.UserRoleDoctor {
		return 0, errors.New("пользователь не имеет роли врача")
	}

	if _, err := s.specRepo.GetByID(ctx, dto.SpecializationID); err != nil {
		return 0, errors.New("специализация не найдена")
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		s.logger.Error("ошибка при создании врача", zap.Error(err))
		return 0, errors.New("ошибка при создании врача")
	}

	return id, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *DoctorServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	if dto.SpecializationID != nil {
		if _, err := s.specRepo.GetByID(ctx, *dto.SpecializationID); err != nil {
			return errors.New("специализация не найдена")
		}
	}
	return s.repo.Update(ctx, id, dto)
}

func (s *DoctorServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *DoctorServiceImpl) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	doctors, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return doctors, total, nil
}

func (s *DoctorServiceImpl) UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error {
	if s.fileStorage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, storage.PrefixDoctors, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото врача", zap.Int64("doctorId", id), zap.Error(err))
		return errors.New("ошибка загрузки фото")
	}

	if doctor.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, doctor.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить старое фото", zap.String("url", doctor.PhotoURL), zap.Error(err))
		}
	}

	return s.repo.UpdatePhoto(ctx, id, url)
}

func (s *DoctorServiceImpl) DeletePhoto(ctx context.Context, id int64) error {
	if s.fileStorage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doctor.PhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, doctor.PhotoURL); err != nil {
		s.logger.Warn("не удалось удалить фото", zap.String("url", doctor.PhotoURL), zap.Error(err))
	}

	return s.repo.UpdatePhoto(ctx, id, "")
}
