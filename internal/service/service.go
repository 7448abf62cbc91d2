package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	Auth        AuthService
	User        UserService
	Doctor      DoctorService
	Patient     PatientService
	Schedule    ScheduleService
	Appointment AppointmentService
	Booking     BookingService
	Catalog     CatalogService
	Content     ContentService
}

func NewServices(deps Deps) *Services {
	schedule := NewScheduleService(deps.Repos.Schedule, deps.Repos.Doctor, deps.Repos.Appointment, deps.Config.Clinic, deps.Logger)
	appointment := NewAppointmentService(deps.Repos.Appointment, deps.Repos.Schedule, deps.Repos.Doctor, deps.Repos.Patient, deps.Repos.Review, schedule, deps.Logger)

	return &Services{
		Auth:        NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		User:        NewUserService(deps.Repos.User, deps.Logger),
		Doctor:      NewDoctorService(deps.Repos.Doctor, deps.Repos.User, deps.Repos.Specialization, deps.FileStorage, deps.Logger),
		Patient:     NewPatientService(deps.Repos.Patient, deps.Repos.User, deps.Logger),
		Schedule:    schedule,
		Appointment: appointment,
		Booking:     NewBookingService(deps.Repos.BookingDraft, deps.Repos.Doctor, deps.Repos.Service, deps.Repos.Patient, appointment, schedule, deps.Config.Clinic, deps.Logger),
		Catalog:     NewCatalogService(deps.Repos.Specialization, deps.Repos.Department, deps.Repos.Service, deps.Logger),
		Content:     NewContentService(deps.Repos.News, deps.Repos.Contact, deps.Repos.Slider, deps.Repos.Review, deps.FileStorage, deps.Logger),
	}
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type DoctorService interface {
	Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error)
	UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error
	DeletePhoto(ctx context.Context, id int64) error
}

type PatientService interface {
	Create(ctx context.Context, userID int64, dto domain.CreatePatientDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Patient, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error
	List(ctx context.Context, limit, offset int) ([]domain.Patient, error)
}

type ScheduleService interface {
	Create(ctx context.Context, doctorID int64, dto domain.CreateScheduleDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetByDoctorAndDate(ctx context.Context, doctorID int64, date string) (*domain.Schedule, error)
	Update(ctx context.Context, id int64, dto domain.UpdateScheduleDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error)
	ToggleAvailability(ctx context.Context, id int64) (*domain.Schedule, error)

	// EnsureSchedule возвращает расписание врача на дату, создавая его с
	// параметрами по умолчанию, если врач день не настраивал.
	EnsureSchedule(ctx context.Context, doctorID int64, date time.Time) (*domain.Schedule, error)

	FreeSlots(ctx context.Context, doctorID int64, date string) ([]string, error)
	AvailableDays(ctx context.Context, doctorID int64, from time.Time, days int) ([]domain.DayAvailability, error)
}

type AppointmentService interface {
	Create(ctx context.Context, createdBy int64, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	ChangeStatus(ctx context.Context, id int64, status domain.AppointmentStatus, actorRole domain.UserRole) error
	CancelByPatient(ctx context.Context, id, patientID int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	Statistics(ctx context.Context, doctorID int64) (*domain.DoctorStatistics, error)
}

type BookingService interface {
	Start(ctx context.Context, patientID int64) (*domain.BookingDraft, error)
	SetSpecialization(ctx context.Context, token string, dto domain.BookingSpecializationDTO) (*domain.BookingDraft, error)
	SetDoctor(ctx context.Context, token string, dto domain.BookingDoctorDTO) (*domain.BookingDraft, error)
	SetService(ctx context.Context, token string, dto domain.BookingServiceDTO) (*domain.BookingDraft, error)
	SetSlot(ctx context.Context, token string, dto domain.BookingSlotDTO) (*domain.BookingDraft, error)
	Confirm(ctx context.Context, token string, patientID int64, dto domain.BookingConfirmDTO) (*domain.Appointment, error)
	Get(ctx context.Context, token string) (*domain.BookingDraft, error)
}

type CatalogService interface {
	CreateSpecialization(ctx context.Context, dto domain.CreateSpecializationDTO) (int64, error)
	GetSpecialization(ctx context.Context, id int64) (*domain.Specialization, error)
	UpdateSpecialization(ctx context.Context, id int64, dto domain.UpdateSpecializationDTO) error
	DeleteSpecialization(ctx context.Context, id int64) error
	ListSpecializations(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, int, error)

	CreateDepartment(ctx context.Context, dto domain.CreateDepartmentDTO) (int64, error)
	GetDepartment(ctx context.Context, id int64) (*domain.Department, error)
	UpdateDepartment(ctx context.Context, id int64, dto domain.UpdateDepartmentDTO) error
	DeleteDepartment(ctx context.Context, id int64) error
	ListDepartments(ctx context.Context, limit, offset int) ([]domain.Department, error)

	CreateService(ctx context.Context, dto domain.CreateServiceDTO) (int64, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	UpdateService(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	DeleteService(ctx context.Context, id int64) error
	ListServices(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error)
	SetServiceDoctors(ctx context.Context, serviceID int64, doctorIDs []int64) error
}

type ContentService interface {
	CreateNews(ctx context.Context, authorID int64, dto domain.CreateNewsDTO) (int64, error)
	GetNews(ctx context.Context, id int64) (*domain.News, error)
	GetNewsBySlug(ctx context.Context, slug string) (*domain.News, error)
	UpdateNews(ctx context.Context, id int64, dto domain.UpdateNewsDTO) error
	UploadNewsImage(ctx context.Context, id int64, image []byte, filename string) error
	DeleteNews(ctx context.Context, id int64) error
	ListNews(ctx context.Context, filter domain.NewsFilter) ([]domain.News, int, error)

	CreateContact(ctx context.Context, dto domain.CreateContactDTO) (int64, error)
	UpdateContact(ctx context.Context, id int64, dto domain.UpdateContactDTO) error
	DeleteContact(ctx context.Context, id int64) error
	ListContacts(ctx context.Context, onlyActive bool) ([]domain.Contact, error)

	CreateSlide(ctx context.Context, dto domain.CreateSlideDTO, image []byte, filename string) (int64, error)
	UpdateSlide(ctx context.Context, id int64, dto domain.UpdateSlideDTO) error
	DeleteSlide(ctx context.Context, id int64) error
	ListSlides(ctx context.Context, onlyActive bool) ([]domain.Slide, error)

	CreateReview(ctx context.Context, patientID int64, dto domain.CreateReviewDTO) (int64, error)
	PublishReview(ctx context.Context, id int64, published bool) error
	DeleteReview(ctx context.Context, id int64) error
	ListReviews(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
}
