package service

import (
	"context"
	"fmt"
	"time"

	"clinic/internal/domain"
	"clinic/internal/scheduling"
)

// In-memory реализации репозиториев для тестов сервисного слоя.

type fakeDoctorRepo struct {
	doctors map[int64]*domain.Doctor
}

func newFakeDoctorRepo(doctors ...*domain.Doctor) *fakeDoctorRepo {
	m := make(map[int64]*domain.Doctor)
	for _, d := range doctors {
		m[d.ID] = d
	}
	return &fakeDoctorRepo{doctors: m}
}

func (f *fakeDoctorRepo) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	return 0, nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	return nil
}

func (f *fakeDoctorRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error { return nil }
func (f *fakeDoctorRepo) Delete(ctx context.Context, id int64) error                      { return nil }

func (f *fakeDoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) CountByFilter(ctx context.Context, filter domain.DoctorFilter) (int, error) {
	return 0, nil
}

type fakeScheduleRepo struct {
	nextID    int64
	schedules map[int64]*domain.Schedule
}

func newFakeScheduleRepo(schedules ...*domain.Schedule) *fakeScheduleRepo {
	f := &fakeScheduleRepo{schedules: make(map[int64]*domain.Schedule)}
	for _, s := range schedules {
		f.nextID++
		cp := *s
		cp.ID = f.nextID
		f.schedules[cp.ID] = &cp
	}
	return f
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	for _, s := range f.schedules {
		if s.DoctorID == schedule.DoctorID && s.Date.Equal(schedule.Date) {
			return 0, domain.ErrScheduleExists
		}
	}
	f.nextID++
	schedule.ID = f.nextID
	f.schedules[schedule.ID] = &schedule
	return schedule.ID, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) GetByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.DoctorID == doctorID && s.Date.Equal(date) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) Update(ctx context.Context, schedule domain.Schedule) error {
	if _, ok := f.schedules[schedule.ID]; !ok {
		return domain.ErrNotFound
	}
	f.schedules[schedule.ID] = &schedule
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.schedules[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.schedules, id)
	return nil
}

func (f *fakeScheduleRepo) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	return nil, 0, nil
}

func (f *fakeScheduleRepo) ListRange(ctx context.Context, doctorID int64, from, to time.Time) ([]domain.Schedule, error) {
	result := make([]domain.Schedule, 0)
	for _, s := range f.schedules {
		if s.DoctorID == doctorID && !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, *s)
		}
	}
	return result, nil
}

type fakeAppointmentRepo struct {
	nextID int64
	appts  map[int64]*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[int64]*domain.Appointment)}
}

// Create воспроизводит поведение уникальных индексов базы: активный дубль
// по врачу и времени отклоняется как занятый слот.
func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment domain.Appointment) (int64, string, error) {
	seq := 0
	for _, a := range f.appts {
		if a.Status.IsActive() && a.DoctorID == appointment.DoctorID && a.AppointmentTime.Equal(appointment.AppointmentTime) {
			return 0, "", domain.ErrSlotTaken
		}
		if a.AppointmentTime.Format("20060102") == appointment.AppointmentTime.Format("20060102") {
			seq++
		}
	}

	f.nextID++
	appointment.ID = f.nextID
	appointment.Number = scheduling.AppointmentNumber(appointment.AppointmentTime, seq+1)
	f.appts[appointment.ID] = &appointment
	return appointment.ID, appointment.Number, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := f.appts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := f.appts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	count := 0
	for _, a := range f.appts {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeAppointmentRepo) ListForDay(ctx context.Context, doctorID int64, date time.Time, statuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	result := make([]domain.Appointment, 0)
	for _, a := range f.appts {
		if a.DoctorID != doctorID {
			continue
		}
		if a.AppointmentTime.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if a.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) CountByTimeOfDay(ctx context.Context, doctorID int64, from, to time.Time) (int, int, int, error) {
	return 0, 0, 0, nil
}

func (f *fakeAppointmentRepo) PopularServices(ctx context.Context, doctorID int64, from, to time.Time, limit int) ([]domain.ServiceCount, error) {
	return nil, nil
}

type fakePatientRepo struct {
	patients map[int64]*domain.Patient
}

func newFakePatientRepo(patients ...*domain.Patient) *fakePatientRepo {
	m := make(map[int64]*domain.Patient)
	for _, p := range patients {
		m[p.ID] = p
	}
	return &fakePatientRepo{patients: m}
}

func (f *fakePatientRepo) Create(ctx context.Context, userID int64, dto domain.CreatePatientDTO) (int64, error) {
	return 0, nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePatientRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Patient, error) {
	for _, p := range f.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePatientRepo) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakePatientRepo) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	return nil, nil
}

type fakeReviewRepo struct {
	rating float64
}

func (f *fakeReviewRepo) Create(ctx context.Context, patientID int64, dto domain.CreateReviewDTO) (int64, error) {
	return 0, nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeReviewRepo) SetPublished(ctx context.Context, id int64, published bool) error {
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) AverageRating(ctx context.Context, doctorID int64) (float64, error) {
	return f.rating, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
	doctors  map[int64][]int64
}

func newFakeServiceRepo(services ...*domain.Service) *fakeServiceRepo {
	m := make(map[int64]*domain.Service)
	for _, s := range services {
		m[s.ID] = s
	}
	return &fakeServiceRepo{services: m, doctors: make(map[int64][]int64)}
}

func (f *fakeServiceRepo) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	return 0, nil
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeServiceRepo) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, error) {
	return nil, nil
}

func (f *fakeServiceRepo) CountByFilter(ctx context.Context, filter domain.ServiceFilter) (int, error) {
	return 0, nil
}

func (f *fakeServiceRepo) SetDoctors(ctx context.Context, serviceID int64, doctorIDs []int64) error {
	f.doctors[serviceID] = doctorIDs
	return nil
}

func (f *fakeServiceRepo) GetDoctorIDs(ctx context.Context, serviceID int64) ([]int64, error) {
	return f.doctors[serviceID], nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	m := make(map[int64]*domain.User)
	var maxID int64
	for _, u := range users {
		m[u.ID] = u
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return &fakeUserRepo{nextID: maxID, users: m}
}

func (f *fakeUserRepo) Create(ctx context.Context, dto domain.CreateUserDTO, passwordHash string) (int64, error) {
	for _, u := range f.users {
		if u.Email == dto.Email {
			return 0, domain.ErrEmailTaken
		}
	}
	f.nextID++
	f.users[f.nextID] = &domain.User{
		ID:         f.nextID,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		MiddleName: dto.MiddleName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Role:       dto.Role,
		IsActive:   true,
	}
	return f.nextID, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return nil, nil
}

type fakeDraftRepo struct {
	drafts map[string]*domain.BookingDraft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*domain.BookingDraft)}
}

func (f *fakeDraftRepo) Create(ctx context.Context, draft domain.BookingDraft) error {
	if _, ok := f.drafts[draft.Token]; ok {
		return fmt.Errorf("черновик %s уже существует", draft.Token)
	}
	f.drafts[draft.Token] = &draft
	return nil
}

func (f *fakeDraftRepo) GetByToken(ctx context.Context, token string) (*domain.BookingDraft, error) {
	if d, ok := f.drafts[token]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDraftRepo) Update(ctx context.Context, draft domain.BookingDraft) error {
	if _, ok := f.drafts[draft.Token]; !ok {
		return domain.ErrNotFound
	}
	f.drafts[draft.Token] = &draft
	return nil
}

func (f *fakeDraftRepo) Delete(ctx context.Context, token string) error {
	delete(f.drafts, token)
	return nil
}

func (f *fakeDraftRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for token, d := range f.drafts {
		if d.Expired(now) {
			delete(f.drafts, token)
			n++
		}
	}
	return n, nil
}
