package service

import (
	"context"

	"go.uber.org/zap"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

// CatalogServiceImpl обслуживает справочники: специализации, отделения и
// медицинские услуги.
type CatalogServiceImpl struct {
	specRepo    repository.SpecializationRepository
	deptRepo    repository.DepartmentRepository
	serviceRepo repository.ServiceRepository
	logger      *zap.Logger
}

func NewCatalogService(
	specRepo repository.SpecializationRepository,
	deptRepo repository.DepartmentRepository,
	serviceRepo repository.ServiceRepository,
	logger *zap.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		specRepo:    specRepo,
		deptRepo:    deptRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

func (s *CatalogServiceImpl) CreateSpecialization(ctx context.Context, dto domain.CreateSpecializationDTO) (int64, error) {
	return s.specRepo.Create(ctx, dto)
}

func (s *CatalogServiceImpl) GetSpecialization(ctx context.Context, id int64) (*domain.Specialization, error) {
	return s.specRepo.GetByID(ctx, id)
}

func (s *CatalogServiceImpl) UpdateSpecialization(ctx context.Context, id int64, dto domain.UpdateSpecializationDTO) error {
	return s.specRepo.Update(ctx, id, dto)
}

func (s *CatalogServiceImpl) DeleteSpecialization(ctx context.Context, id int64) error {
	return s.specRepo.Delete(ctx, id)
}

func (s *CatalogServiceImpl) ListSpecializations(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := s.specRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.specRepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *CatalogServiceImpl) CreateDepartment(ctx context.Context, dto domain.CreateDepartmentDTO) (int64, error) {
	return s.deptRepo.Create(ctx, dto)
}

func (s *CatalogServiceImpl) GetDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	return s.deptRepo.GetByID(ctx, id)
}

func (s *CatalogServiceImpl) UpdateDepartment(ctx context.Context, id int64, dto domain.UpdateDepartmentDTO) error {
	return s.deptRepo.Update(ctx, id, dto)
}

func (s *CatalogServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	return s.deptRepo.Delete(ctx, id)
}

func (s *CatalogServiceImpl) ListDepartments(ctx context.Context, limit, offset int) ([]domain.Department, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.deptRepo.List(ctx, limit, offset)
}

func (s *CatalogServiceImpl) CreateService(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	return s.serviceRepo.Create(ctx, dto)
}

func (s *CatalogServiceImpl) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}

func (s *CatalogServiceImpl) UpdateService(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	return s.serviceRepo.Update(ctx, id, dto)
}

func (s *CatalogServiceImpl) DeleteService(ctx context.Context, id int64) error {
	return s.serviceRepo.Delete(ctx, id)
}

func (s *CatalogServiceImpl) ListServices(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.serviceRepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *CatalogServiceImpl) SetServiceDoctors(ctx context.Context, serviceID int64, doctorIDs []int64) error {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return err
	}
	return s.serviceRepo.SetDoctors(ctx, serviceID, doctorIDs)
}
