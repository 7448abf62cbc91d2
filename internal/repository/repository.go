package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type Repositories struct {
	User           UserRepository
	Auth           AuthRepository
	Specialization SpecializationRepository
	Department     DepartmentRepository
	Doctor         DoctorRepository
	Service        ServiceRepository
	Patient        PatientRepository
	Schedule       ScheduleRepository
	Appointment    AppointmentRepository
	Review         ReviewRepository
	News           NewsRepository
	Contact        ContactRepository
	Slider         SliderRepository
	BookingDraft   BookingDraftRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:           NewUserRepository(db),
		Auth:           NewAuthRepository(db),
		Specialization: NewSpecializationRepository(db),
		Department:     NewDepartmentRepository(db),
		Doctor:         NewDoctorRepository(db),
		Service:        NewServiceRepository(db),
		Patient:        NewPatientRepository(db),
		Schedule:       NewScheduleRepository(db),
		Appointment:    NewAppointmentRepository(db),
		Review:         NewReviewRepository(db),
		News:           NewNewsRepository(db),
		Contact:        NewContactRepository(db),
		Slider:         NewSliderRepository(db),
		BookingDraft:   NewBookingDraftRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, dto domain.CreateUserDTO, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type SpecializationRepository interface {
	Create(ctx context.Context, dto domain.CreateSpecializationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialization, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSpecializationDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, error)
	CountByFilter(ctx context.Context, filter domain.SpecializationFilter) (int, error)
}

type DepartmentRepository interface {
	Create(ctx context.Context, dto domain.CreateDepartmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDepartmentDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Department, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	UpdatePhoto(ctx context.Context, id int64, photoURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error)
	CountByFilter(ctx context.Context, filter domain.DoctorFilter) (int, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, error)
	CountByFilter(ctx context.Context, filter domain.ServiceFilter) (int, error)

	SetDoctors(ctx context.Context, serviceID int64, doctorIDs []int64) error
	GetDoctorIDs(ctx context.Context, serviceID int64) ([]int64, error)
}

type PatientRepository interface {
	Create(ctx context.Context, userID int64, dto domain.CreatePatientDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Patient, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Patient, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule domain.Schedule) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (*domain.Schedule, error)
	Update(ctx context.Context, schedule domain.Schedule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error)
	ListRange(ctx context.Context, doctorID int64, from, to time.Time) ([]domain.Schedule, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment domain.Appointment) (int64, string, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	ListForDay(ctx context.Context, doctorID int64, date time.Time, statuses []domain.AppointmentStatus) ([]domain.Appointment, error)
	CountByTimeOfDay(ctx context.Context, doctorID int64, from, to time.Time) (morning, day, evening int, err error)
	PopularServices(ctx context.Context, doctorID int64, from, to time.Time, limit int) ([]domain.ServiceCount, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, patientID int64, dto domain.CreateReviewDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	SetPublished(ctx context.Context, id int64, published bool) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	AverageRating(ctx context.Context, doctorID int64) (float64, error)
}

type NewsRepository interface {
	Create(ctx context.Context, authorID int64, dto domain.CreateNewsDTO, slug string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.News, error)
	GetBySlug(ctx context.Context, slug string) (*domain.News, error)
	Update(ctx context.Context, id int64, dto domain.UpdateNewsDTO, publishedAt *time.Time) error
	UpdateImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.NewsFilter) ([]domain.News, error)
	CountByFilter(ctx context.Context, filter domain.NewsFilter) (int, error)
}

type ContactRepository interface {
	Create(ctx context.Context, dto domain.CreateContactDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	Update(ctx context.Context, id int64, dto domain.UpdateContactDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, onlyActive bool) ([]domain.Contact, error)
}

type SliderRepository interface {
	Create(ctx context.Context, dto domain.CreateSlideDTO, imageURL string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Slide, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSlideDTO) error
	UpdateImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, onlyActive bool) ([]domain.Slide, error)
}

type BookingDraftRepository interface {
	Create(ctx context.Context, draft domain.BookingDraft) error
	GetByToken(ctx context.Context, token string) (*domain.BookingDraft, error)
	Update(ctx context.Context, draft domain.BookingDraft) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
